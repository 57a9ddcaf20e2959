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

import "github.com/spatialmodel/geodesy/params"

// adapt converts a coordinate's horizontal pair between the engine's
// internal representation, radians ("neut_rad"), and the handful of
// external representations a user might reasonably want at the boundary of
// a pipeline. "from" names the representation the incoming coordinate is
// already in (adapt converts it up to neut_rad); "to" names the
// representation the outgoing coordinate should be left in (adapt converts
// it down from neut_rad). A definition naming both from and to is legal and
// chains the two conversions.
func init() {
	RegisterBuiltin(OpDescriptor{
		Name: "adapt",
		Gamut: []params.OpParameter{
			params.Text("from", ""),
			params.Text("to", ""),
		},
		Forward: adaptFactory(true),
		Inverse: adaptFactory(false),
	})
}

func adaptFactory(forward bool) func(p *params.ParsedParameters) (InnerFn, error) {
	return func(p *params.ParsedParameters) (InnerFn, error) {
		from := p.Text("from")
		to := p.Text("to")
		return func(ctx *Context, op *Op, c Coor4D) Coor4D {
			if !forward {
				from, to = to, from
			}
			if from != "" {
				c = adaptInward(from, c)
			}
			if to != "" {
				c = adaptOutward(to, c)
			}
			return c
		}, nil
	}
}

// adaptInward converts c's horizontal pair from the named external
// representation up to the internal neut_rad representation.
func adaptInward(repr string, c Coor4D) Coor4D {
	switch repr {
	case "neut_deg":
		return Coor4D{DegToRad(c[0]), DegToRad(c[1]), c[2], c[3]}
	case "neut_rad", "":
		return c
	default:
		return Coor4D{nan(), nan(), nan(), nan()}
	}
}

// adaptOutward converts c's horizontal pair from the internal neut_rad
// representation down to the named external representation.
func adaptOutward(repr string, c Coor4D) Coor4D {
	switch repr {
	case "neut_deg":
		return Coor4D{RadToDeg(c[0]), RadToDeg(c[1]), c[2], c[3]}
	case "neut_rad", "":
		return c
	default:
		return Coor4D{nan(), nan(), nan(), nan()}
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
