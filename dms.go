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

// dms converts a coordinate's horizontal pair between radians and a
// degrees-and-fractional-minutes encoding packed into a single float as
// DDDMM.MMMMM (the NMEA 0183 ddmm.mmmm convention, seconds folded into the
// fraction of a minute): forward packs radians down into that encoding, inverse
// unpacks it back to radians. Useful as the boundary adapter in front of a
// pipeline consuming NMEA-style sentences.
func init() {
	RegisterBuiltin(OpDescriptor{
		Name:    "dms",
		Gamut:   nil,
		Forward: dmsForward,
		Inverse: dmsInverse,
	})
}

func dmsForward(p *params.ParsedParameters) (InnerFn, error) {
	return func(ctx *Context, op *Op, c Coor4D) Coor4D {
		return Coor4D{radToPacked(c[0]), radToPacked(c[1]), c[2], c[3]}
	}, nil
}

func dmsInverse(p *params.ParsedParameters) (InnerFn, error) {
	return func(ctx *Context, op *Op, c Coor4D) Coor4D {
		return Coor4D{packedToRad(c[0]), packedToRad(c[1]), c[2], c[3]}
	}, nil
}

// radToPacked converts radians to the DDDMM.MMMMM packed encoding.
func radToPacked(rad float64) float64 {
	deg, min, sec := RadToDms(rad)
	sign := 1.0
	if rad < 0 {
		sign = -1
		deg = -deg
	}
	return sign * (deg*100 + min + sec/60)
}

// packedToRad inverts radToPacked.
func packedToRad(packed float64) float64 {
	sign := 1.0
	if packed < 0 {
		sign = -1
		packed = -packed
	}
	deg := float64(int(packed / 100))
	rem := packed - deg*100
	min := float64(int(rem))
	sec := (rem - min) * 60
	return sign * DmsToRad(deg, min, sec)
}
