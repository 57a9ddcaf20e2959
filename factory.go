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
	"strconv"
	"strings"
	"sync"

	"github.com/spatialmodel/geodesy/params"
	"github.com/spatialmodel/geodesy/parser"
)

// maxRecursionDepth bounds how deeply a chain of macros may expand into one
// another before the factory gives up and reports KindRecursion - it guards
// against a macro that (directly or through a chain of others) invokes
// itself.
const maxRecursionDepth = 100

var (
	builtinsMu sync.RWMutex
	builtins   = map[string]OpDescriptor{}
)

// RegisterBuiltin installs a builtin operator's descriptor under its name.
// Each primitive operator file calls this from an init() function; the
// prefix "builtin_" is reserved and must never be passed as name itself -
// it is a caller-side convention (see the factory's name resolution) for
// bypassing any macro or user operator that shadows a builtin's bare name.
func RegisterBuiltin(desc OpDescriptor) {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	builtins[desc.Name] = desc
}

func lookupBuiltin(name string) (OpDescriptor, bool) {
	builtinsMu.RLock()
	defer builtinsMu.RUnlock()
	d, ok := builtins[name]
	return d, ok
}

// compile turns a parsed Definition into a runnable *Op, recursively
// expanding macros and descending into pipeline steps. Name resolution for
// a single (non-pipeline) step proceeds, in order:
//
//  1. a macro registered directly on the Context (RegisterMacro), or
//     reachable through its AssetSource;
//  2. an operator constructor registered directly on the Context
//     (RegisterOperator);
//  3. a builtin operator, unless name carries the "builtin_" prefix, in
//     which case resolution starts and ends here, bypassing 1 and 2 even
//     when they would otherwise have matched the unprefixed name.
func (c *Context) compile(def parser.Definition, depth int) (*Op, error) {
	if depth > maxRecursionDepth {
		return nil, NewRecursionError(def.Name)
	}

	if def.IsPipeline() {
		return c.compilePipeline(def, depth)
	}

	name := def.Name
	forceBuiltin := strings.HasPrefix(name, "builtin_")
	if forceBuiltin {
		name = strings.TrimPrefix(name, "builtin_")
		desc, ok := lookupBuiltin(name)
		if !ok {
			return nil, NewNotFoundError(def.Name)
		}
		return c.compilePrimitive(def, desc)
	}

	if raw, ok := c.lookupMacro(name); ok {
		return c.compileMacro(def, raw, depth)
	}
	if ctor, ok := c.lookupUserOperator(name); ok {
		return c.compileUserOperator(def, ctor)
	}
	if desc, ok := lookupBuiltin(name); ok {
		return c.compilePrimitive(def, desc)
	}
	return nil, NewNotFoundError(def.Name)
}

func (c *Context) compilePipeline(def parser.Definition, depth int) (*Op, error) {
	steps := make([]*Op, 0, len(def.Steps))
	for _, stepDef := range def.Steps {
		step, err := c.compile(stepDef, depth+1)
		if err != nil {
			return nil, err
		}
		if isNoop(stepDef) {
			continue
		}
		steps = append(steps, step)
	}
	return &Op{
		Descriptor: OpDescriptor{Name: "pipeline"},
		Steps:      steps,
		Inverted:   invFlag(def),
	}, nil
}

func isNoop(def parser.Definition) bool {
	return def.Name == "noop" || def.Name == "builtin_noop"
}

func (c *Context) compileMacro(def parser.Definition, raw string, depth int) (*Op, error) {
	macroDef, err := parser.Parse(raw)
	if err != nil {
		return nil, NewError(KindSyntax, def.Name+": "+err.Error())
	}
	resolved, err := parser.Resolve(macroDef, def.ArgMap())
	if err != nil {
		return nil, NewError(KindSyntax, def.Name+": "+err.Error())
	}
	return c.compile(resolved, depth+1)
}

func (c *Context) compilePrimitive(def parser.Definition, desc OpDescriptor) (*Op, error) {
	args := def.ArgMap()
	// "inv" is consumed directly by invFlag below, from the definition
	// itself rather than from the operator's own gamut - no primitive
	// declares it as a parameter, so it must not reach params.New.
	delete(args, "inv")
	pp, err := params.New(desc.Gamut, params.RawArgs(args))
	if err != nil {
		return nil, NewOperatorError(desc.Name, err.Error())
	}
	op := &Op{Descriptor: desc, Params: pp, Inverted: invFlag(def)}
	if desc.Forward != nil {
		fwd, err := desc.Forward(pp)
		if err != nil {
			return nil, NewOperatorError(desc.Name, err.Error())
		}
		op.fwd = fwd
	}
	if desc.Inverse != nil {
		inv, err := desc.Inverse(pp)
		if err != nil {
			return nil, NewOperatorError(desc.Name, err.Error())
		}
		op.inv = inv
	}
	return op, nil
}

func (c *Context) compileUserOperator(def parser.Definition, ctor OperatorConstructor) (*Op, error) {
	fwd, inv, err := ctor(def.ArgMap())
	if err != nil {
		return nil, NewOperatorError(def.Name, err.Error())
	}
	return &Op{
		Descriptor: OpDescriptor{Name: def.Name},
		Inverted:   invFlag(def),
		fwd:        fwd,
		inv:        inv,
	}, nil
}

// invFlag reads a definition's own "inv" argument, defaulting to false. It
// is read once, at compile time, and baked into the resulting Op's
// Inverted field - a pipeline's "inv" never trickles down into its already
//-compiled Steps.
func invFlag(def parser.Definition) bool {
	v, ok := def.Arg("inv")
	if !ok {
		return false
	}
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return b
}
