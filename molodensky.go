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
	"math"

	"github.com/spatialmodel/geodesy/params"
)

// molodensky approximates a datum shift directly on geographic coordinates
// (longitude, latitude, ellipsoidal height), without the cart/helmert/cart
// round trip, given a 3-parameter translation (dx, dy, dz) and the
// difference between the source and target ellipsoids (da, df). With
// "abridged" set, the cheaper abridged form is used, dropping the height
// term from the latitude and longitude corrections.
func init() {
	RegisterBuiltin(OpDescriptor{
		Name: "molodensky",
		Gamut: []params.OpParameter{
			params.Text("ellps", "GRS80"),
			params.Real("dx", 0),
			params.Real("dy", 0),
			params.Real("dz", 0),
			params.Real("da", 0),
			params.Real("df", 0),
			params.Flag("abridged"),
		},
		Forward: molodenskyFactory(true),
		Inverse: molodenskyFactory(false),
	})
}

type molodenskySetup struct {
	e          Ellipsoid
	dx, dy, dz float64
	da, df     float64
	abridged   bool
}

func molodenskyReadSetup(p *params.ParsedParameters) (molodenskySetup, error) {
	e, ok := LookupEllipsoid(p.Text("ellps"))
	if !ok {
		return molodenskySetup{}, NewOperatorError("molodensky", "unknown ellipsoid "+p.Text("ellps"))
	}
	return molodenskySetup{
		e: e, dx: p.Real("dx"), dy: p.Real("dy"), dz: p.Real("dz"),
		da: p.Real("da"), df: p.Real("df"), abridged: p.Flag("abridged"),
	}, nil
}

func molodenskyFactory(forward bool) func(p *params.ParsedParameters) (InnerFn, error) {
	return func(p *params.ParsedParameters) (InnerFn, error) {
		s, err := molodenskyReadSetup(p)
		if err != nil {
			return nil, err
		}
		sign := 1.0
		if !forward {
			sign = -1
		}
		return func(ctx *Context, op *Op, c Coor4D) Coor4D {
			lon, lat, h := c[0], c[1], c[2]
			dlat, dlon, dh := molodenskyShift(s.e, lat, lon, h, sign*s.dx, sign*s.dy, sign*s.dz,
				sign*s.da, sign*s.df, s.abridged)
			return Coor4D{lon + dlon, lat + dlat, h + dh, c[3]}
		}, nil
	}
}

// molodenskyShift computes the (dlat, dlon, dh) correction at (lat, lon, h)
// on ellipsoid e, for a target ellipsoid differing by (da, df) and a
// geocentric translation (dx, dy, dz).
func molodenskyShift(e Ellipsoid, lat, lon, h, dx, dy, dz, da, df float64, abridged bool) (dlat, dlon, dh float64) {
	a := e.A
	f := e.F
	e2 := e.Eccentricity2()
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	m := e.MeridionalRadius(lat)
	n := e.PrimeVerticalRadius(lat)

	adb := 1 / (1 - f) // a/b
	dfTerm := df * f * (2 - f)

	if abridged {
		dlat = (-dx*sinLat*cosLon - dy*sinLat*sinLon + dz*cosLat +
			da*(n*e2*sinLat*cosLat/a) +
			df*(m*adb+n/adb)*sinLat*cosLat) / m
		dlon = (-dx*sinLon + dy*cosLon) / (n * cosLat)
		dh = dx*cosLat*cosLon + dy*cosLat*sinLon + dz*sinLat -
			da*(a/n) + df*(adb)*n*sinLat*sinLat
		return dlat, dlon, dh
	}

	dh = dx*cosLat*cosLon + dy*cosLat*sinLon + dz*sinLat +
		da*(n*math.Cos(lat)*math.Cos(lat))/a -
		dfTerm*n*sinLat*sinLat

	dlat = (-dx*sinLat*cosLon-dy*sinLat*sinLon+dz*cosLat)/(m+h) +
		(da*(n*e2*sinLat*cosLat/a)+dfTerm*(m/(1-f)+n*(1-f))*sinLat*cosLat)/(m+h)

	dlon = (-dx*sinLon + dy*cosLon) / ((n + h) * cosLat)

	return dlat, dlon, dh
}
