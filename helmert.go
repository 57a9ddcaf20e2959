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

	"github.com/spatialmodel/geodesy/params"
)

// arcsecToRad converts an angle given in arcseconds to radians - the unit
// conventionally used for a Helmert transform's rotation parameters.
const arcsecToRad = math.Pi / (180 * 3600)

// helmert applies a 7-parameter similarity (Helmert) transform to a
// geocentric Cartesian coordinate: a translation (x, y, z, meters), a
// small-angle rotation (rx, ry, rz, arcseconds) and a scale correction (s,
// parts per million). The "convention" parameter selects between the
// position-vector (default) and coordinate-frame rotation sign conventions;
// the two differ only in the sign applied to the rotation terms.
func init() {
	RegisterBuiltin(OpDescriptor{
		Name: "helmert",
		Gamut: []params.OpParameter{
			params.Real("x", 0),
			params.Real("y", 0),
			params.Real("z", 0),
			params.Real("rx", 0),
			params.Real("ry", 0),
			params.Real("rz", 0),
			params.Real("s", 0),
			params.Text("convention", "position_vector"),
		},
		Forward: helmertFactory(true),
		Inverse: helmertFactory(false),
	})
}

type helmertParams struct {
	dx, dy, dz float64
	rx, ry, rz float64
	ds         float64
}

func readHelmert(p *params.ParsedParameters) helmertParams {
	sign := 1.0
	if p.Text("convention") == "coordinate_frame" {
		sign = -1
	}
	return helmertParams{
		dx: p.Real("x"),
		dy: p.Real("y"),
		dz: p.Real("z"),
		rx: sign * p.Real("rx") * arcsecToRad,
		ry: sign * p.Real("ry") * arcsecToRad,
		rz: sign * p.Real("rz") * arcsecToRad,
		ds: p.Real("s") * 1e-6,
	}
}

func helmertFactory(forward bool) func(p *params.ParsedParameters) (InnerFn, error) {
	return func(p *params.ParsedParameters) (InnerFn, error) {
		h := readHelmert(p)
		return func(ctx *Context, op *Op, c Coor4D) Coor4D {
			x, y, z := c[0], c[1], c[2]
			if forward {
				scale := 1 + h.ds
				nx := h.dx + scale*(x-h.rz*y+h.ry*z)
				ny := h.dy + scale*(h.rz*x+y-h.rx*z)
				nz := h.dz + scale*(-h.ry*x+h.rx*y+z)
				return Coor4D{nx, ny, nz, c[3]}
			}
			// The inverse of a small-angle Helmert transform is, to first
			// order, the same transform with every parameter negated -
			// exact to the precision the linearized rotation already
			// assumes.
			scale := 1 - h.ds
			x0, y0, z0 := x-h.dx, y-h.dy, z-h.dz
			nx := scale * (x0 + h.rz*y0 - h.ry*z0)
			ny := scale * (-h.rz*x0 + y0 + h.rx*z0)
			nz := scale * (h.ry*x0 - h.rx*y0 + z0)
			return Coor4D{nx, ny, nz, c[3]}
		}, nil
	}
}
