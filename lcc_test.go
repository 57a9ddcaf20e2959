/*
Copyright © 2024 the geodesy authors.
This file is part of geodesy.

geodesy is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geodesy is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geodesy.  If not, see <http://www.gnu.org/licenses/>.
*/

package geodesy

import (
	"math"
	"testing"
)

func TestLCCTwoStandardParallelsRoundTrip(t *testing.T) {
	ctx := NewContext()
	// Roughly the Lambert Conformal Conic setup used for the contiguous US
	// (NAD83), here against GRS80 for simplicity.
	h, err := ctx.Operation("lcc ellps:GRS80 lat_1:33 lat_2:45 lat_0:23 lon_0:-96")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	original := Coor4D{DegToRad(-100), DegToRad(40), 0, 0}
	working := Coor4DSlice{original}

	if _, err := ctx.Forward(h, working); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if working[0] == original {
		t.Fatalf("expected the projected coordinate to differ from the geographic input")
	}
	if _, err := ctx.Inverse(h, working); err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if math.Abs(working[0][0]-original[0]) > 1e-9 || math.Abs(working[0][1]-original[1]) > 1e-9 {
		t.Fatalf("round trip mismatch: got %v, want %v", working[0], original)
	}
}

func TestLCCOneStandardParallelFallback(t *testing.T) {
	ctx := NewContext()
	h, err := ctx.Operation("lcc ellps:GRS80 lat_0:45 lon_0:10")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	original := Coor4D{DegToRad(11), DegToRad(46), 0, 0}
	working := Coor4DSlice{original}

	if _, err := ctx.Forward(h, working); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if _, err := ctx.Inverse(h, working); err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if math.Abs(working[0][0]-original[0]) > 1e-9 || math.Abs(working[0][1]-original[1]) > 1e-9 {
		t.Fatalf("round trip mismatch: got %v, want %v", working[0], original)
	}
}

func TestLCCOriginMapsToFalseOrigin(t *testing.T) {
	ctx := NewContext()
	h, err := ctx.Operation("lcc ellps:GRS80 lat_1:30 lat_2:50 lat_0:40 lon_0:10 x_0:500000 y_0:100000")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	coords := Coor4DSlice{{DegToRad(10), DegToRad(40), 0, 0}}
	if _, err := ctx.Forward(h, coords); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if math.Abs(coords[0][0]-500000) > 1e-6 || math.Abs(coords[0][1]-100000) > 1e-6 {
		t.Fatalf("expected the projection's own origin to land on (x_0, y_0), got %v", coords[0])
	}
}
