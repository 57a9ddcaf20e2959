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

import "math"

// Coor2D is a planar or (lon, lat) coordinate pair.
type Coor2D [2]float64

// Coor3D adds a third, usually vertical, component to Coor2D.
type Coor3D [3]float64

// Coor4D is the engine's canonical, widest coordinate tuple: a horizontal
// pair, a vertical component, and a fourth "generalized time" component
// (epoch, GPS time, or simply unused and left at zero). Every operator's
// InnerFn receives and returns Coor4D; narrower containers are padded up to
// and trimmed back down from this shape at the CoordinateSet boundary.
type Coor4D [4]float64

// Coor32 is a single-precision 3D coordinate, used by CoordinateSet
// implementations that interoperate with float32 buffers (image grids,
// graphics pipelines) without forcing a wholesale conversion to float64.
type Coor32 [3]float32

// X, Y, Z and T name Coor4D's components for readability at call sites.
func (c Coor4D) X() float64 { return c[0] }
func (c Coor4D) Y() float64 { return c[1] }
func (c Coor4D) Z() float64 { return c[2] }
func (c Coor4D) T() float64 { return c[3] }

// XY, XYZ truncate a Coor4D down to the narrower tuple types.
func (c Coor4D) XY() Coor2D   { return Coor2D{c[0], c[1]} }
func (c Coor4D) XYZ() Coor3D  { return Coor3D{c[0], c[1], c[2]} }

// Coor4 widens a Coor2D/Coor3D up to Coor4D, padding the missing components
// with zero - the convention used wherever a CoordinateSet narrower than
// Coor4D must be handed to an operator's InnerFn.
func (c Coor2D) Coor4() Coor4D { return Coor4D{c[0], c[1], 0, 0} }
func (c Coor3D) Coor4() Coor4D { return Coor4D{c[0], c[1], c[2], 0} }

// DegToRad and RadToDeg convert between degrees and radians for a single
// value - most operators work internally in radians, and the "adapt"
// operator uses these at the degrees/radians boundary.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// DmsToRad converts a sexagesimal degrees/minutes/seconds triple (seconds
// may carry a fractional part) to radians. The sign of deg determines the
// sign of the whole angle; min and sec are taken as unsigned magnitudes.
func DmsToRad(deg, min, sec float64) float64 {
	sign := 1.0
	if math.Signbit(deg) {
		sign = -1
		deg = -deg
	}
	d := deg + min/60 + sec/3600
	return sign * DegToRad(d)
}

// RadToDms splits a radians value into signed degrees and unsigned minutes
// and seconds, the inverse of DmsToRad.
func RadToDms(rad float64) (deg, min, sec float64) {
	d := RadToDeg(rad)
	sign := 1.0
	if d < 0 {
		sign = -1
		d = -d
	}
	deg = math.Trunc(d) * sign
	rem := (d - math.Trunc(d)) * 60
	min = math.Trunc(rem)
	sec = (rem - min) * 60
	return
}
