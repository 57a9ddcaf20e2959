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

	"github.com/spatialmodel/geodesy/grid"
)

// fakeAssetSource is a map-backed stand-in for reference.Provider, used to
// exercise Context.LoadGrid and the gridshift operator without touching
// the filesystem.
type fakeAssetSource struct {
	grids  map[string]*grid.Grid
	macros map[string]string
}

func (f *fakeAssetSource) Macro(name string) (string, error) {
	if raw, ok := f.macros[name]; ok {
		return raw, nil
	}
	return "", NewNotFoundError(name)
}

func (f *fakeAssetSource) Grid(name string) (*grid.Grid, error) {
	if g, ok := f.grids[name]; ok {
		return g, nil
	}
	return nil, NewNotFoundError(name)
}

func uniformShiftGrid(dlat, dlon float64) *grid.Grid {
	return &grid.Grid{
		Lat0: DegToRad(-10), Lat1: DegToRad(10),
		Lon0: DegToRad(-10), Lon1: DegToRad(10),
		DLat: DegToRad(10), DLon: DegToRad(10),
		Rows: 3, Cols: 3, Bands: 2,
		Samples: repeatPair(dlat, dlon, 9),
	}
}

func repeatPair(a, b float64, n int) []float64 {
	out := make([]float64, 0, n*2)
	for i := 0; i < n; i++ {
		out = append(out, a, b)
	}
	return out
}

func TestGridshiftAppliesUniformCorrection(t *testing.T) {
	ctx := NewContext()
	ctx.SetAssetSource(&fakeAssetSource{
		grids: map[string]*grid.Grid{"shift": uniformShiftGrid(1e-6, 2e-6)},
	})
	h, err := ctx.Operation("gridshift grids:shift")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	coords := Coor4DSlice{{0, 0, 0, 0}}
	if _, err := ctx.Forward(h, coords); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if math.Abs(coords[0][0]-2e-6) > 1e-12 || math.Abs(coords[0][1]-1e-6) > 1e-12 {
		t.Fatalf("unexpected shifted coordinate: %v", coords[0])
	}
}

func TestGridshiftNullSentinelIsIdentity(t *testing.T) {
	ctx := NewContext()
	ctx.SetAssetSource(&fakeAssetSource{grids: map[string]*grid.Grid{}})
	h, err := ctx.Operation("gridshift grids:missing@null")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	original := Coor4D{DegToRad(5), DegToRad(5), 0, 0}
	coords := Coor4DSlice{original}
	if _, err := ctx.Forward(h, coords); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if coords[0] != original {
		t.Fatalf("expected an identity transform when falling through to @null, got %v", coords[0])
	}
}

func TestGridshiftOutsideAllGridsAndNotOptionalIsNaN(t *testing.T) {
	ctx := NewContext()
	ctx.SetAssetSource(&fakeAssetSource{grids: map[string]*grid.Grid{}})
	h, err := ctx.Operation("gridshift grids:missing")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	coords := Coor4DSlice{{0, 0, 0, 0}}
	if _, err := ctx.Forward(h, coords); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if !math.IsNaN(coords[0][0]) {
		t.Fatalf("expected NaN when no grid covers the point and no @null sentinel is present")
	}
}

func geoidGrid(undulation float64) *grid.Grid {
	return &grid.Grid{
		Lat0: DegToRad(-10), Lat1: DegToRad(10),
		Lon0: DegToRad(-10), Lon1: DegToRad(10),
		DLat: DegToRad(10), DLon: DegToRad(10),
		Rows: 3, Cols: 3, Bands: 1,
		Samples: repeatSingle(undulation, 9),
	}
}

func repeatSingle(a float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func TestGridshiftOneBandGridCorrectsHeightNotPosition(t *testing.T) {
	ctx := NewContext()
	ctx.SetAssetSource(&fakeAssetSource{
		grids: map[string]*grid.Grid{"geoid": geoidGrid(42)},
	})
	h, err := ctx.Operation("gridshift grids:geoid")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	coords := Coor4DSlice{{DegToRad(1), DegToRad(1), 100, 0}}
	if _, err := ctx.Forward(h, coords); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if math.Abs(coords[0][2]-58) > 1e-9 {
		t.Fatalf("expected height 100-42=58, got %v", coords[0][2])
	}
	if math.Abs(coords[0][0]-DegToRad(1)) > 1e-12 || math.Abs(coords[0][1]-DegToRad(1)) > 1e-12 {
		t.Fatalf("expected lon/lat unchanged by a 1-band geoid grid, got %v", coords[0])
	}
	if _, err := ctx.Inverse(h, coords); err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if math.Abs(coords[0][2]-100) > 1e-9 {
		t.Fatalf("expected inverse to restore height 100, got %v", coords[0][2])
	}
}

func TestGridshiftInverseRoundTrip(t *testing.T) {
	ctx := NewContext()
	ctx.SetAssetSource(&fakeAssetSource{
		grids: map[string]*grid.Grid{"shift": uniformShiftGrid(3e-7, -2e-7)},
	})
	h, err := ctx.Operation("gridshift grids:shift")
	if err != nil {
		t.Fatalf("Operation: %v", err)
	}
	original := Coor4D{DegToRad(3), DegToRad(3), 0, 0}
	coords := Coor4DSlice{original}
	if _, err := ctx.Forward(h, coords); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if _, err := ctx.Inverse(h, coords); err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if math.Abs(coords[0][0]-original[0]) > 1e-10 || math.Abs(coords[0][1]-original[1]) > 1e-10 {
		t.Fatalf("round trip mismatch: got %v, want %v", coords[0], original)
	}
}
