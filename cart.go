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
	"fmt"
	"math"

	"github.com/spatialmodel/geodesy/params"
)

// cart converts between geographic coordinates (longitude, latitude,
// ellipsoidal height, all in radians/meters) and geocentric Cartesian
// coordinates (X, Y, Z, meters) on the named ellipsoid. Forward is
// geographic-to-Cartesian; inverse is Cartesian-to-geographic, via Bowring's
// closed-form approximation, with no further iteration.
func init() {
	RegisterBuiltin(OpDescriptor{
		Name: "cart",
		Gamut: []params.OpParameter{
			params.Text("ellps", "GRS80"),
		},
		Forward: cartForward,
		Inverse: cartInverse,
	})
}

func cartEllipsoid(p *params.ParsedParameters) (Ellipsoid, error) {
	e, ok := LookupEllipsoid(p.Text("ellps"))
	if !ok {
		return Ellipsoid{}, fmt.Errorf("unknown ellipsoid %q", p.Text("ellps"))
	}
	return e, nil
}

func cartForward(p *params.ParsedParameters) (InnerFn, error) {
	e, err := cartEllipsoid(p)
	if err != nil {
		return nil, err
	}
	return func(ctx *Context, op *Op, c Coor4D) Coor4D {
		lon, lat, h := c[0], c[1], c[2]
		n := e.PrimeVerticalRadius(lat)
		sinLat, cosLat := math.Sin(lat), math.Cos(lat)
		sinLon, cosLon := math.Sin(lon), math.Cos(lon)
		x := (n + h) * cosLat * cosLon
		y := (n + h) * cosLat * sinLon
		z := (n*(1-e.Eccentricity2()) + h) * sinLat
		return Coor4D{x, y, z, c[3]}
	}, nil
}

func cartInverse(p *params.ParsedParameters) (InnerFn, error) {
	e, err := cartEllipsoid(p)
	if err != nil {
		return nil, err
	}
	return func(ctx *Context, op *Op, c Coor4D) Coor4D {
		x, y, z := c[0], c[1], c[2]
		lon := math.Atan2(y, x)

		radial := math.Hypot(x, y)
		if radial == 0 {
			// On the polar axis, longitude is undefined and latitude is
			// exactly +/-90 degrees.
			lat := math.Pi / 2
			if z < 0 {
				lat = -lat
			}
			return Coor4D{lon, lat, math.Abs(z) - e.B(), c[3]}
		}

		// Bowring's closed form: the parametric (reduced) latitude theta
		// gives the geographic latitude directly, without iteration.
		theta := math.Atan2(z*e.A, radial*e.B())
		es2 := e.SecondEccentricity2()
		e2 := e.Eccentricity2()
		num := z + es2*e.B()*math.Pow(math.Sin(theta), 3)
		den := radial - e2*e.A*math.Pow(math.Cos(theta), 3)
		lat := math.Atan2(num, den)

		n := e.PrimeVerticalRadius(lat)
		var h float64
		if math.Abs(lat) < math.Pi/4 {
			h = radial/math.Cos(lat) - n
		} else {
			h = z/math.Sin(lat) - n*(1-e2)
		}
		return Coor4D{lon, lat, h, c[3]}
	}, nil
}
