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

func TestMercatorRoundTrip(t *testing.T) {
	ctx := NewContext()
	h, err := ctx.Operation("merc ellps:GRS80 lon_0:12")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	original := Coor4DSlice{{DegToRad(12.5), DegToRad(55.7), 0, 0}}
	working := Coor4DSlice{original[0]}

	if _, err := ctx.Forward(h, working); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if working[0] == original[0] {
		t.Fatalf("expected projected coordinates to differ from geographic input")
	}
	if _, err := ctx.Inverse(h, working); err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if math.Abs(working[0][0]-original[0][0]) > 1e-9 || math.Abs(working[0][1]-original[0][1]) > 1e-9 {
		t.Fatalf("round trip mismatch: got %v, want %v", working[0], original[0])
	}
}

func TestMercatorOriginMapsToOrigin(t *testing.T) {
	ctx := NewContext()
	h, err := ctx.Operation("merc ellps:sphere")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	coords := Coor4DSlice{{0, 0, 0, 0}}
	if _, err := ctx.Forward(h, coords); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if coords[0][0] != 0 || coords[0][1] != 0 {
		t.Fatalf("expected the origin to map to the origin, got %v", coords[0])
	}
}

func TestPipelineInversionReversesOrderAndDirection(t *testing.T) {
	ctx := NewContext()
	h, err := ctx.Operation("cart ellps:GRS80 | helmert x:100 y:50 z:-20 | cart ellps:GRS80 inv")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	original := Coor4D{DegToRad(10), DegToRad(50), 100, 0}
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
