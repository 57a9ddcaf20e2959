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

func init() {
	RegisterBuiltin(OpDescriptor{
		Name:    "noop",
		Gamut:   nil,
		Forward: noopFactory,
		Inverse: noopFactory,
	})
}

func noopFactory(p *params.ParsedParameters) (InnerFn, error) {
	return func(ctx *Context, op *Op, c Coor4D) Coor4D { return c }, nil
}
