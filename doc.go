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

// Package geodesy compiles textual descriptions of geodetic coordinate
// operations - a single primitive such as a Mercator projection, or a
// multi-step pipeline such as geographic -> cartesian -> Helmert shift ->
// inverse cartesian -> geographic - into executable Op values, and applies
// them, forward or inverse, to arrays of 2D/3D/4D coordinates.
//
// Its ancestor is the PROJ pipeline model. A Context resolves operator
// names, macros and grid blobs (possibly delegating to an external
// reference.Provider for on-disk assets) and hands out opaque Handles to
// compiled Ops. Operators are immutable once built and are safe to share
// across goroutines; a Context should not be mutated (macros/operators/grids
// registered) concurrently with transformations in flight against it.
package geodesy

// Direction selects which way an Op runs.
type Direction bool

const (
	// Fwd runs an operator, or a two-way function, in the forward direction.
	Fwd Direction = true
	// Inv runs an operator, or a two-way function, in the inverse direction.
	Inv Direction = false
)
