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

// lcc is the Lambert Conformal Conic projection with two standard
// parallels (lat_1, lat_2), falling back to the one-standard-parallel form
// when the two are left equal.
func init() {
	RegisterBuiltin(OpDescriptor{
		Name: "lcc",
		Gamut: []params.OpParameter{
			params.Text("ellps", "GRS80"),
			params.Real("lon_0", 0),
			params.Real("lat_0", 0),
			params.Real("lat_1", 0),
			params.Real("lat_2", 0),
			params.Real("x_0", 0),
			params.Real("y_0", 0),
		},
		Forward: lccFactory(true),
		Inverse: lccFactory(false),
	})
}

type lccSetup struct {
	e          Ellipsoid
	lon0       float64
	n          float64
	f          float64
	rho0       float64
	x0, y0     float64
}

func lccConformalLat(e Ellipsoid, phi float64) float64 {
	ecc := math.Sqrt(e.Eccentricity2())
	sinPhi := math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) *
		math.Pow((1+ecc*sinPhi)/(1-ecc*sinPhi), ecc/2)
}

func lccM(e Ellipsoid, phi float64) float64 {
	sinPhi := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-e.Eccentricity2()*sinPhi*sinPhi)
}

func lccReadSetup(p *params.ParsedParameters) (lccSetup, error) {
	e, ok := LookupEllipsoid(p.Text("ellps"))
	if !ok {
		return lccSetup{}, NewOperatorError("lcc", "unknown ellipsoid "+p.Text("ellps"))
	}
	lat0 := DegToRad(p.Real("lat_0"))
	lat1 := DegToRad(p.Real("lat_1"))
	lat2 := DegToRad(p.Real("lat_2"))
	if lat1 == 0 && lat2 == 0 {
		lat1, lat2 = lat0, lat0
	}

	m1 := lccM(e, lat1)
	m2 := lccM(e, lat2)
	t0 := lccConformalLat(e, lat0)
	t1 := lccConformalLat(e, lat1)
	t2 := lccConformalLat(e, lat2)

	var n float64
	if math.Abs(lat1-lat2) < 1e-12 {
		n = math.Sin(lat1)
	} else {
		n = (math.Log(m1) - math.Log(m2)) / (math.Log(t1) - math.Log(t2))
	}
	f := m1 / (n * math.Pow(t1, n))
	rho0 := e.A * f * math.Pow(t0, n)

	return lccSetup{
		e: e, lon0: DegToRad(p.Real("lon_0")), n: n, f: f, rho0: rho0,
		x0: p.Real("x_0"), y0: p.Real("y_0"),
	}, nil
}

func lccFactory(forward bool) func(p *params.ParsedParameters) (InnerFn, error) {
	return func(p *params.ParsedParameters) (InnerFn, error) {
		s, err := lccReadSetup(p)
		if err != nil {
			return nil, err
		}
		if forward {
			return func(ctx *Context, op *Op, c Coor4D) Coor4D {
				lon, lat := c[0], c[1]
				t := lccConformalLat(s.e, lat)
				rho := s.e.A * s.f * math.Pow(t, s.n)
				theta := s.n * (lon - s.lon0)
				x := s.x0 + rho*math.Sin(theta)
				y := s.y0 + s.rho0 - rho*math.Cos(theta)
				return Coor4D{x, y, c[2], c[3]}
			}, nil
		}
		return func(ctx *Context, op *Op, c Coor4D) Coor4D {
			x, y := c[0]-s.x0, c[1]-s.y0
			rho0y := s.rho0 - y
			rho := math.Copysign(math.Hypot(x, rho0y), s.n)
			theta := math.Atan2(x, rho0y)
			lon := theta/s.n + s.lon0
			t := math.Pow(rho/(s.e.A*s.f), 1/s.n)
			lat := lccInvertConformalLat(s.e, t)
			return Coor4D{lon, lat, c[2], c[3]}
		}, nil
	}
}

// lccInvertConformalLat recovers geographic latitude from the conformal
// auxiliary latitude's tangent-half-angle term t, by fixed-point iteration -
// the standard Snyder inversion for any conic or azimuthal conformal
// projection sharing this auxiliary latitude.
func lccInvertConformalLat(e Ellipsoid, t float64) float64 {
	ecc := math.Sqrt(e.Eccentricity2())
	chi := math.Pi/2 - 2*math.Atan(t)
	phi := chi
	for i := 0; i < 15; i++ {
		sinPhi := math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-ecc*sinPhi)/(1+ecc*sinPhi), ecc/2))
		if math.Abs(next-phi) < 1e-14 {
			phi = next
			break
		}
		phi = next
	}
	return phi
}
