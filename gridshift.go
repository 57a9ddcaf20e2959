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
	"strings"

	"github.com/spatialmodel/geodesy/params"
)

const (
	gridshiftMaxIter   = 10
	gridshiftTolerance = 1e-12 // radians, about 0.006 mm at the equator
)

// gridshift applies a correction read from one or more named grids - a
// height correction for a 1-band (geoid) grid, a horizontal shift for a
// 2-band grid, and a horizontal plus vertical shift for a 3-band grid - tried in the order listed and stopping at the first grid
// whose extent contains the query point. A grid name suffixed with "@null"
// is optional: when no other listed grid contains the point either, the
// shift is the identity rather than an error. The inverse direction solves
// the implicit equation shifted = point + shift(point) for point by
// fixed-point iteration, since the grid itself is only ever sampled in the
// direction that looks up a correction FROM the un-shifted coordinate.
func init() {
	RegisterBuiltin(OpDescriptor{
		Name: "gridshift",
		Gamut: []params.OpParameter{
			params.Grids("grids"),
			params.Real("padding", 0.5),
		},
		Forward: gridshiftFactory(true),
		Inverse: gridshiftFactory(false),
	})
}

type gridEntry struct {
	name     string
	optional bool
}

func parseGridList(raw []string) []gridEntry {
	out := make([]gridEntry, 0, len(raw))
	for _, name := range raw {
		entry := gridEntry{name: name}
		if strings.HasSuffix(name, "@null") {
			entry.name = strings.TrimSuffix(name, "@null")
			entry.optional = true
		}
		out = append(out, entry)
	}
	return out
}

func gridshiftFactory(forward bool) func(p *params.ParsedParameters) (InnerFn, error) {
	return func(p *params.ParsedParameters) (InnerFn, error) {
		entries := parseGridList(p.Grids("grids"))
		padding := p.Real("padding")
		return func(ctx *Context, op *Op, c Coor4D) Coor4D {
			if forward {
				shift, ok := gridshiftLookup(ctx, entries, padding, c[0], c[1])
				if !ok {
					return Coor4D{nan(), nan(), nan(), nan()}
				}
				return gridshiftApply(c, shift, 1)
			}
			return gridshiftInverse(ctx, entries, padding, c)
		}, nil
	}
}

// gridshiftLookup scans entries in order, returning the first grid's
// interpolated correction whose extent, expanded by padding grid cells,
// contains (lon, lat). A grid missing from the Context's AssetSource is
// treated the same as one that does not contain the point. When no grid
// applies, the result is a zero (identity) correction if any entry carried
// the "@null" suffix, and a failed lookup otherwise.
func gridshiftLookup(ctx *Context, entries []gridEntry, padding, lon, lat float64) ([]float64, bool) {
	optional := false
	for _, e := range entries {
		if e.optional {
			optional = true
			if e.name == "" {
				continue
			}
		}
		g, err := ctx.LoadGrid(e.name)
		if err != nil {
			continue
		}
		if !g.Contains(lon, lat, padding) {
			continue
		}
		return g.Interpolate(lon, lat), true
	}
	if optional {
		return []float64{0, 0}, true
	}
	return nil, false
}

// gridshiftApply applies an interpolated correction to c. A 1-band grid is
// a geoid: its single value is a height correction subtracted from z on
// the forward direction (added back on the inverse, sign=-1). A 2- or
// 3-band grid is a horizontal datum shift, in (lat, lon) order, with an
// optional third band for a vertical correction alongside it.
func gridshiftApply(c Coor4D, shift []float64, sign float64) Coor4D {
	out := c
	if len(shift) == 1 {
		out[2] = c[2] - sign*shift[0]
		return out
	}
	out[0] = c[0] + sign*shift[1]
	out[1] = c[1] + sign*shift[0]
	if len(shift) > 2 {
		out[2] = c[2] + sign*shift[2]
	}
	return out
}

// gridshiftInverse solves lat,lon = target - shift(lat,lon) for the
// pre-shift coordinate by fixed-point iteration, seeded with the target
// itself (the shift is always small relative to a coordinate's own
// magnitude, so this converges in a handful of iterations).
func gridshiftInverse(ctx *Context, entries []gridEntry, padding float64, target Coor4D) Coor4D {
	approx := target
	for i := 0; i < gridshiftMaxIter; i++ {
		shift, ok := gridshiftLookup(ctx, entries, padding, approx[0], approx[1])
		if !ok {
			return Coor4D{nan(), nan(), nan(), nan()}
		}
		next := gridshiftApply(target, shift, -1)
		delta := math.Hypot(next[0]-approx[0], next[1]-approx[1])
		approx = next
		if delta < gridshiftTolerance {
			break
		}
	}
	return approx
}
