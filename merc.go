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

// mercMaxIter bounds the Newton iteration sinhpsiToTanPhi uses to invert
// the isometric latitude; mercRootEps/mercTol/mercTauMax follow Karney 2011
// and the PROJ phi2.cpp implementation this is ported from.
const mercMaxIter = 5

var (
	mercRootEps = math.Sqrt(2.220446049250313e-16) // sqrt(float64 machine epsilon)
	mercTol     = mercRootEps / 10
	mercTauMax  = 2 / mercRootEps
)

// merc is the (normal, ellipsoidal) Mercator projection, centered on a
// configurable central meridian and latitude of origin and, optionally,
// scaled so that k=1 along a chosen standard parallel rather than at the
// equator.
func init() {
	RegisterBuiltin(OpDescriptor{
		Name: "merc",
		Gamut: []params.OpParameter{
			params.Text("ellps", "GRS80"),
			params.Real("lon_0", 0),
			params.Real("lat_0", 0),
			params.Real("lat_ts", 0),
			params.Real("k_0", 1),
			params.Real("x_0", 0),
			params.Real("y_0", 0),
		},
		Forward: mercForward,
		Inverse: mercInverse,
	})
}

func mercSetup(p *params.ParsedParameters) (e Ellipsoid, lon0, lat0, x0, y0, k0 float64, err error) {
	e, ok := LookupEllipsoid(p.Text("ellps"))
	if !ok {
		return Ellipsoid{}, 0, 0, 0, 0, 0, NewOperatorError("merc", "unknown ellipsoid "+p.Text("ellps"))
	}
	lon0 = DegToRad(p.Real("lon_0"))
	lat0 = DegToRad(p.Real("lat_0"))
	x0 = p.Real("x_0")
	y0 = p.Real("y_0")
	k0 = p.Real("k_0")
	if latTS := DegToRad(p.Real("lat_ts")); latTS != 0 {
		e2 := e.Eccentricity2()
		sinTS := math.Sin(latTS)
		k0 = math.Cos(latTS) / math.Sqrt(1-e2*sinTS*sinTS)
	}
	return e, lon0, lat0, x0, y0, k0, nil
}

func mercForward(p *params.ParsedParameters) (InnerFn, error) {
	e, lon0, lat0, x0, y0, k0, err := mercSetup(p)
	if err != nil {
		return nil, err
	}
	ecc := math.Sqrt(e.Eccentricity2())
	a := e.A
	return func(ctx *Context, op *Op, c Coor4D) Coor4D {
		lon, lat := c[0], c[1]
		x := a*k0*(lon-lon0) - x0
		latp := lat + lat0
		sinLat := math.Sin(latp)
		isometric := math.Log(math.Tan(math.Pi/4+latp/2)) - ecc*math.Atanh(ecc*sinLat)
		y := a*k0*isometric - y0
		return Coor4D{x, y, c[2], c[3]}
	}, nil
}

func mercInverse(p *params.ParsedParameters) (InnerFn, error) {
	e, lon0, lat0, x0, y0, k0, err := mercSetup(p)
	if err != nil {
		return nil, err
	}
	ecc := math.Sqrt(e.Eccentricity2())
	a := e.A
	return func(ctx *Context, op *Op, c Coor4D) Coor4D {
		x := c[0] + x0
		lon := x/(a*k0) + lon0
		y := c[1] + y0
		psi := y / (a * k0)
		tau := sinhpsiToTanPhi(math.Sinh(psi), ecc)
		lat := math.Atan(tau) - lat0
		return Coor4D{lon, lat, c[2], c[3]}
	}, nil
}

// sinhpsiToTanPhi inverts the isometric latitude, given as taup=sinh(psi),
// to tan(phi) by Newton's method, following Karney 2011 and the PROJ
// implementation at phi2.cpp. It passes +/-Inf, NaN and the large-argument
// limit through unchanged, and returns NaN if mercMaxIter iterations do not
// converge to within mercTol of taup - non-convergence is never silently
// accepted as the last iterate.
func sinhpsiToTanPhi(taup, ecc float64) float64 {
	e2m := 1 - ecc*ecc
	stol := mercTol * math.Max(math.Abs(taup), 1)

	var tau float64
	if math.Abs(taup) > 70 {
		tau = taup * math.Exp(ecc*math.Atanh(ecc))
	} else {
		tau = taup / e2m
	}

	if math.Abs(tau) >= mercTauMax || math.IsNaN(tau) {
		return tau
	}

	for i := 0; i < mercMaxIter; i++ {
		tau1 := math.Sqrt(1 + tau*tau)
		sig := math.Sinh(ecc * math.Atanh(ecc*tau/tau1))
		taupa := math.Sqrt(1+sig*sig)*tau - sig*tau1
		dtau := (taup - taupa) * (1 + e2m*tau*tau) / (e2m * tau1 * math.Sqrt(1+taupa*taupa))
		tau += dtau
		if math.Abs(dtau) < stol || math.IsNaN(tau) {
			return tau
		}
	}
	return math.NaN()
}
