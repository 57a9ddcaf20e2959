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
	"sync"

	"github.com/golang/glog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/spatialmodel/geodesy/grid"
	"github.com/spatialmodel/geodesy/parser"
)

// AssetSource resolves the named resources a Context cannot synthesize
// itself: macro definition files and grid files. reference.Provider is the
// production implementation; tests may supply a map-backed stand-in.
type AssetSource interface {
	// Macro returns the raw textual definition of the named macro, or an
	// error if it cannot be found.
	Macro(name string) (string, error)
	// Grid loads and returns the named grid file.
	Grid(name string) (*grid.Grid, error)
}

// OperatorConstructor is a user-registered operator factory: given a
// definition's already-parsed parameters, it builds the forward and inverse
// InnerFn pair, exactly like a builtin OpDescriptor's Forward/Inverse pair.
type OperatorConstructor = func(p interface{}) (InnerFn, InnerFn, error)

// Context is the engine's runtime service: it resolves operator and macro
// names, compiles textual definitions into Ops, caches loaded grids, and
// hands out opaque Handles that Forward/Inverse consume. A single Context
// may be shared by any number of goroutines concurrently calling Forward or
// Inverse; it is not safe to call RegisterMacro, RegisterOperator or
// SetAssetSource concurrently with any in-flight transformation.
type Context struct {
	mu sync.RWMutex

	ops     []*Op
	macros  map[string]string
	userOps map[string]OperatorConstructor
	asset   AssetSource

	gridsMu sync.RWMutex
	grids   map[string]*grid.Grid
}

// NewContext returns an empty, ready-to-use Context with no registered
// macros, user operators, or asset source.
func NewContext() *Context {
	return &Context{
		macros:  make(map[string]string),
		userOps: make(map[string]OperatorConstructor),
		grids:   make(map[string]*grid.Grid),
	}
}

// SetAssetSource installs the AssetSource used to resolve macro and grid
// names not already known to the Context directly.
func (c *Context) SetAssetSource(src AssetSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.asset = src
}

// RegisterMacro installs or replaces a named macro's raw textual
// definition, taking precedence over any resource-backed macro of the same
// name reachable through the Context's AssetSource.
func (c *Context) RegisterMacro(name, definition string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.macros[name] = definition
}

// RegisterOperator installs a user-supplied operator constructor, taking
// precedence over a builtin of the same name but yielding to any macro of
// that name, whether registered locally or reachable through the
// AssetSource.
func (c *Context) RegisterOperator(name string, ctor OperatorConstructor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userOps[name] = ctor
}

// Operation parses and compiles definition, returning a Handle for later
// Forward/Inverse calls.
func (c *Context) Operation(definition string) (Handle, error) {
	def, err := parser.Parse(definition)
	if err != nil {
		return -1, NewError(KindSyntax, err.Error())
	}
	op, err := c.compile(def, 0)
	if err != nil {
		return -1, err
	}
	c.mu.Lock()
	c.ops = append(c.ops, op)
	h := Handle(len(c.ops) - 1)
	c.mu.Unlock()
	glog.V(2).Infof("compiled operation %q as handle %d", definition, h)
	return h, nil
}

// Op returns the compiled *Op behind a Handle, and whether it was found.
func (c *Context) Op(h Handle) (*Op, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if h < 0 || int(h) >= len(c.ops) {
		return nil, false
	}
	return c.ops[h], true
}

// Forward runs the operation behind h over coords in the forward direction.
func (c *Context) Forward(h Handle, coords CoordinateSet) (int, error) {
	op, ok := c.Op(h)
	if !ok {
		return 0, NewNotFoundError("operation handle")
	}
	return op.Operate(c, coords, Fwd)
}

// Inverse runs the operation behind h over coords in the inverse direction.
func (c *Context) Inverse(h Handle, coords CoordinateSet) (int, error) {
	op, ok := c.Op(h)
	if !ok {
		return 0, NewNotFoundError("operation handle")
	}
	return op.Operate(c, coords, Inv)
}

// LoadGrid resolves and returns the named grid, consulting an in-memory
// cache before falling back to the installed AssetSource. Concurrent
// callers requesting the same uncached name may each pay the load cost
// once; the cache only ever grows.
func (c *Context) LoadGrid(name string) (*grid.Grid, error) {
	c.gridsMu.RLock()
	g, ok := c.grids[name]
	c.gridsMu.RUnlock()
	if ok {
		return g, nil
	}
	c.mu.RLock()
	asset := c.asset
	c.mu.RUnlock()
	if asset == nil {
		return nil, NewNotFoundError(name)
	}
	g, err := asset.Grid(name)
	if err != nil {
		return nil, err
	}
	c.gridsMu.Lock()
	c.grids[name] = g
	c.gridsMu.Unlock()
	return g, nil
}

// lookupMacro resolves a macro's raw textual definition in the order: a
// locally-registered macro, then the AssetSource.
func (c *Context) lookupMacro(name string) (string, bool) {
	c.mu.RLock()
	local, ok := c.macros[name]
	asset := c.asset
	c.mu.RUnlock()
	if ok {
		return local, true
	}
	if asset == nil {
		return "", false
	}
	raw, err := asset.Macro(name)
	if err != nil {
		return "", false
	}
	return raw, true
}

// lookupUserOperator resolves a user-registered operator constructor.
func (c *Context) lookupUserOperator(name string) (OperatorConstructor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ctor, ok := c.userOps[name]
	return ctor, ok
}

// MacroNames returns the names of every macro registered directly on this
// Context (not those only reachable through its AssetSource), sorted for
// reproducible display.
func (c *Context) MacroNames() []string {
	c.mu.RLock()
	names := maps.Keys(c.macros)
	c.mu.RUnlock()
	slices.Sort(names)
	return names
}
