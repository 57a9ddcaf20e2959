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

// CoordinateSet is the capability an Op operates over: any container able to
// hand out and accept back Coor4D values by index. Operators never care
// what actually backs the set - a slice of Coor2D, a column-major matrix, a
// memory-mapped buffer - only that it can be read and written through this
// narrow interface. Implementations narrower than 4D pad missing components
// with zero on read and discard them on write.
type CoordinateSet interface {
	// Len returns the number of coordinates in the set.
	Len() int
	// Dimension returns the number of coordinate components this set
	// natively stores (2, 3, or 4).
	Dimension() int
	// Coord returns the coordinate at index i, widened to Coor4D.
	Coord(i int) Coor4D
	// SetCoord writes v back at index i, narrowed to the set's native
	// Dimension.
	SetCoord(i int, v Coor4D)
}

// Coor2DSlice adapts a slice of Coor2D to CoordinateSet. Go cannot attach
// methods to an unnamed slice type such as []Coor2D, hence the named type.
type Coor2DSlice []Coor2D

func (s Coor2DSlice) Len() int            { return len(s) }
func (s Coor2DSlice) Dimension() int      { return 2 }
func (s Coor2DSlice) Coord(i int) Coor4D  { return s[i].Coor4() }
func (s Coor2DSlice) SetCoord(i int, v Coor4D) {
	s[i] = v.XY()
}

// Coor3DSlice adapts a slice of Coor3D to CoordinateSet.
type Coor3DSlice []Coor3D

func (s Coor3DSlice) Len() int           { return len(s) }
func (s Coor3DSlice) Dimension() int     { return 3 }
func (s Coor3DSlice) Coord(i int) Coor4D { return s[i].Coor4() }
func (s Coor3DSlice) SetCoord(i int, v Coor4D) {
	s[i] = v.XYZ()
}

// Coor4DSlice adapts a slice of Coor4D to CoordinateSet directly, with no
// padding or truncation needed.
type Coor4DSlice []Coor4D

func (s Coor4DSlice) Len() int                 { return len(s) }
func (s Coor4DSlice) Dimension() int           { return 4 }
func (s Coor4DSlice) Coord(i int) Coor4D       { return s[i] }
func (s Coor4DSlice) SetCoord(i int, v Coor4D) { s[i] = v }

// Coor32Slice adapts a slice of single-precision Coor32 to CoordinateSet,
// rounding through float64 on the way in and out.
type Coor32Slice []Coor32

func (s Coor32Slice) Len() int       { return len(s) }
func (s Coor32Slice) Dimension() int { return 3 }
func (s Coor32Slice) Coord(i int) Coor4D {
	c := s[i]
	return Coor4D{float64(c[0]), float64(c[1]), float64(c[2]), 0}
}
func (s Coor32Slice) SetCoord(i int, v Coor4D) {
	s[i] = Coor32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// XYAccessor is implemented by CoordinateSets that can hand out their native
// Coor2D values without going through the Coor4D padding round-trip.
// Operators that only ever touch x/y may type-assert for it as a fast path.
type XYAccessor interface {
	XY(i int) Coor2D
	SetXY(i int, v Coor2D)
}

func (s Coor2DSlice) XY(i int) Coor2D        { return s[i] }
func (s Coor2DSlice) SetXY(i int, v Coor2D)  { s[i] = v }

// XYZAccessor is the 3D analogue of XYAccessor.
type XYZAccessor interface {
	XYZ(i int) Coor3D
	SetXYZ(i int, v Coor3D)
}

func (s Coor3DSlice) XYZ(i int) Coor3D       { return s[i] }
func (s Coor3DSlice) SetXYZ(i int, v Coor3D) { s[i] = v }
