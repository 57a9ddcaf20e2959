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

package grid

import (
	"math"
	"strings"
	"testing"
)

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func TestLoadGravsoftAndInterpolateAtNode(t *testing.T) {
	// A tiny 3x3 grid, lat 0..2, lon 0..2, step 1 degree, all-zero samples.
	src := "0 2 0 2 1 1\n" + strings.Repeat("0 ", 9) + "\n"
	g, err := LoadGravsoft(strings.NewReader(src), toRadians)
	if err != nil {
		t.Fatalf("LoadGravsoft: %v", err)
	}
	if g.Rows != 3 || g.Cols != 3 {
		t.Fatalf("expected a 3x3 grid, got %dx%d", g.Rows, g.Cols)
	}
	out := g.Interpolate(toRadians(1), toRadians(1))
	if out[0] != 0 {
		t.Fatalf("expected zero interpolation on an all-zero grid, got %v", out[0])
	}
}

func TestInterpolateExactAtInteriorNode(t *testing.T) {
	// rows: lat1(north)=2 .. lat0(south)=0, step 1; 3 rows, 3 cols.
	// Row-major, north to south, west to east.
	samples := []float64{
		0, 0, 0,
		0, 5, 0,
		0, 0, 0,
	}
	g := &Grid{
		Lat0: 0, Lat1: 2, Lon0: 0, Lon1: 2,
		DLat: 1, DLon: 1, Rows: 3, Cols: 3, Bands: 1,
		Samples: samples,
	}
	out := g.Interpolate(1, 1)
	if math.Abs(out[0]-5) > 1e-9 {
		t.Fatalf("expected the center node's exact value 5, got %v", out[0])
	}
}

func TestContainsRespectsPadding(t *testing.T) {
	// DLon: 1 so that a padding of 1.0 cells equals 1.0 radians here.
	g := &Grid{Lat0: 0, Lat1: 1, Lon0: 0, Lon1: 1, DLat: 1, DLon: 1}
	if g.Contains(1.5, 0.5, 0) {
		t.Fatalf("expected 1.5 to fall outside with no padding")
	}
	if !g.Contains(1.5, 0.5, 1.0) {
		t.Fatalf("expected 1.5 to fall inside with padding 1.0 cells")
	}
}
