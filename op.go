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

// Handle is an opaque reference to an Op compiled and owned by a Context.
// Callers never hold an *Op directly; they hold a Handle and pass it back
// into the Context's Forward/Inverse methods, so that a Context remains free
// to manage the lifetime and concurrency of its compiled operators.
type Handle int

// InnerFn is the per-coordinate transformation a primitive operator
// performs. It receives a Context (for grid lookups and nested operator
// calls) and a single wide coordinate, and returns the transformed
// coordinate. A point that cannot be transformed (out of a grid's extent, a
// non-convergent iteration) returns a Coor4D with NaN components rather
// than an error - see Operate for how such points are counted.
type InnerFn func(ctx *Context, op *Op, c Coor4D) Coor4D

// OpDescriptor is the static, name-and-signature part of an operator,
// registered once per builtin via RegisterBuiltin. The Factory uses Gamut to
// validate and default a definition's arguments before invoking Forward and
// Inverse to build the runtime InnerFn pair.
type OpDescriptor struct {
	Name  string
	Gamut []params.OpParameter
	// Forward builds the forward InnerFn for this operator, given its
	// parsed parameters.
	Forward func(p *params.ParsedParameters) (InnerFn, error)
	// Inverse builds the inverse InnerFn. Operators that cannot be
	// inverted leave this nil.
	Inverse func(p *params.ParsedParameters) (InnerFn, error)
}

// Op is a single compiled step - primitive or pipeline - in an operation.
// Steps is non-empty only for a compiled pipeline, in which case fwd/inv
// walk Steps rather than calling fwd/inv directly.
type Op struct {
	Descriptor OpDescriptor
	Params     *params.ParsedParameters
	Steps      []*Op

	// Inverted records the top-level "inv" flag this Op was constructed
	// with. It is XORed with the requested direction on every call to
	// decide which of fwd/inv (or, for a pipeline, which step order and
	// direction) runs; it is never propagated to Steps - a pipeline's
	// own "inv" does not change its children's own Inverted flags.
	Inverted bool

	fwd InnerFn
	inv InnerFn
}

// Invertible reports whether this Op (and, for a pipeline, every one of its
// steps) has an inverse InnerFn available.
func (o *Op) Invertible() bool {
	if len(o.Steps) > 0 {
		for _, step := range o.Steps {
			if !step.Invertible() {
				return false
			}
		}
		return true
	}
	return o.inv != nil
}

// apply runs this Op's own InnerFn pair - not its Steps, which Operate
// handles separately - in the given direction, XORed with the Inverted flag
// fixed at construction time.
func (o *Op) apply(ctx *Context, c Coor4D, forward bool) (Coor4D, error) {
	useForward := forward != o.Inverted
	if useForward {
		if o.fwd == nil {
			return Coor4D{}, NewOperatorError(o.Descriptor.Name, "operator has no forward direction")
		}
		return o.fwd(ctx, o, c), nil
	}
	if o.inv == nil {
		return Coor4D{}, NewOperatorError(o.Descriptor.Name, "operator has no inverse direction")
	}
	return o.inv(ctx, o, c), nil
}

// Operate runs o - primitive or pipeline - over every coordinate in coords,
// in the requested direction, and returns the number of coordinates that
// transformed without producing a NaN. Operate itself never returns an
// error for a per-point failure; it returns one only when the direction
// requested is structurally unavailable (see apply).
func (o *Op) Operate(ctx *Context, coords CoordinateSet, direction Direction) (int, error) {
	forward := bool(direction)
	ok := 0
	for i := 0; i < coords.Len(); i++ {
		c := coords.Coord(i)
		out, err := o.step(ctx, c, forward)
		if err != nil {
			return ok, err
		}
		coords.SetCoord(i, out)
		if !hasNaN(out) {
			ok++
		}
	}
	return ok, nil
}

// step dispatches a single coordinate through o: a pipeline walks Steps in
// the order dictated by direction, a primitive calls its own InnerFn pair.
func (o *Op) step(ctx *Context, c Coor4D, forward bool) (Coor4D, error) {
	if len(o.Steps) == 0 {
		return o.apply(ctx, c, forward)
	}
	useForward := forward != o.Inverted
	steps := o.Steps
	if !useForward {
		steps = reversedSteps(steps)
	}
	cur := c
	for _, step := range steps {
		out, err := step.step(ctx, cur, useForward)
		if err != nil {
			return Coor4D{}, err
		}
		if hasNaN(out) {
			return out, nil
		}
		cur = out
	}
	return cur, nil
}

func reversedSteps(steps []*Op) []*Op {
	out := make([]*Op, len(steps))
	for i, s := range steps {
		out[len(steps)-1-i] = s
	}
	return out
}

func hasNaN(c Coor4D) bool {
	for _, v := range c {
		if v != v {
			return true
		}
	}
	return false
}
