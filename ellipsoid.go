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

import "math"

// Ellipsoid describes a reference ellipsoid by its semi-major axis and
// flattening, and caches the handful of derived quantities that every
// projection and datum operator needs repeatedly.
type Ellipsoid struct {
	Name string
	A    float64 // semi-major axis, meters
	F    float64 // flattening

	b    float64 // semi-minor axis
	e2   float64 // first eccentricity squared
	es2  float64 // second eccentricity squared
	n    float64 // third flattening, n = f / (2 - f)
}

// NewEllipsoid builds an Ellipsoid from its semi-major axis and flattening,
// precomputing the derived quantities used by the projection formulas.
func NewEllipsoid(name string, a, f float64) Ellipsoid {
	b := a * (1 - f)
	e2 := f * (2 - f)
	var es2 float64
	if b != 0 {
		es2 = e2 * a * a / (b * b)
	}
	n := f / (2 - f)
	return Ellipsoid{Name: name, A: a, F: f, b: b, e2: e2, es2: es2, n: n}
}

// NamedEllipsoids is the small built-in table of commonly used reference
// ellipsoids, indexed by the shorthand name used in operator arguments
// (ellps:GRS80, for instance).
var NamedEllipsoids = map[string]Ellipsoid{
	"GRS80":  NewEllipsoid("GRS80", 6378137.0, 1/298.257222101),
	"WGS84":  NewEllipsoid("WGS84", 6378137.0, 1/298.257223563),
	"intl":   NewEllipsoid("intl", 6378388.0, 1/297.0),
	"clrk66": NewEllipsoid("clrk66", 6378206.4, 1/294.9786982),
	"bessel": NewEllipsoid("bessel", 6377397.155, 1/299.1528128),
	"sphere": NewEllipsoid("sphere", 6371008.7714, 0),
}

// LookupEllipsoid resolves a named ellipsoid, falling back to GRS80 when
// name is empty (the common default for a bare ellps: argument).
func LookupEllipsoid(name string) (Ellipsoid, bool) {
	if name == "" {
		return NamedEllipsoids["GRS80"], true
	}
	e, ok := NamedEllipsoids[name]
	return e, ok
}

// B returns the semi-minor axis.
func (e Ellipsoid) B() float64 { return e.b }

// Eccentricity2 returns the first eccentricity squared, e^2.
func (e Ellipsoid) Eccentricity2() float64 { return e.e2 }

// SecondEccentricity2 returns the second eccentricity squared, e'^2.
func (e Ellipsoid) SecondEccentricity2() float64 { return e.es2 }

// ThirdFlattening returns n = f / (2 - f), the series expansion parameter
// used by the meridional-distance and footpoint-latitude formulas.
func (e Ellipsoid) ThirdFlattening() float64 { return e.n }

// PrimeVerticalRadius returns N(phi), the radius of curvature in the prime
// vertical at geographic latitude phi (radians).
func (e Ellipsoid) PrimeVerticalRadius(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return e.A / math.Sqrt(1-e.e2*sinPhi*sinPhi)
}

// MeridionalRadius returns M(phi), the radius of curvature in the meridian
// at geographic latitude phi (radians).
func (e Ellipsoid) MeridionalRadius(phi float64) float64 {
	sinPhi := math.Sin(phi)
	num := e.A * (1 - e.e2)
	den := math.Pow(1-e.e2*sinPhi*sinPhi, 1.5)
	return num / den
}

// meridional series coefficients in terms of n = f/(2-f), following the
// Redfearn/Snyder expansion used by both the meridian-arc-length formula
// and its footpoint-latitude inverse.
func (e Ellipsoid) meridianCoefficients() (a0, a2, a4, a6, a8 float64) {
	n := e.n
	n2 := n * n
	n3 := n2 * n
	n4 := n3 * n
	a0 = 1 + n2/4 + n4/64
	a2 = 1.5 * (n - n3/8)
	a4 = 15.0 / 16 * (n2 - n4/4)
	a6 = 35.0 / 48 * n3
	a8 = 315.0 / 512 * n4
	return
}

// MeridionalDistance returns the arc length M along the meridian from the
// equator to geographic latitude phi (radians), via the series expansion in
// the third flattening n.
func (e Ellipsoid) MeridionalDistance(phi float64) float64 {
	a0, a2, a4, a6, a8 := e.meridianCoefficients()
	rectifying := e.A / (1 + e.n)
	return rectifying * (a0*phi - a2*math.Sin(2*phi) + a4*math.Sin(4*phi) -
		a6*math.Sin(6*phi) + a8*math.Sin(8*phi))
}

// FootpointLatitude inverts MeridionalDistance: given an arc length m along
// the meridian, it returns the latitude phi (radians) at which that arc
// length is attained. Used by the inverse transverse Mercator formulas to
// recover a first-approximation latitude from the northing.
func (e Ellipsoid) FootpointLatitude(m float64) float64 {
	n := e.n
	n2 := n * n
	n3 := n2 * n
	n4 := n3 * n
	rectifying := e.A / (1 + n)
	mu := m / (rectifying * (1 + n2/4 + n4/64))

	b2 := 1.5*n - 27.0/32*n3
	b4 := 21.0/16*n2 - 55.0/32*n4
	b6 := 151.0 / 96 * n3
	b8 := 1097.0 / 512 * n4

	return mu + b2*math.Sin(2*mu) + b4*math.Sin(4*mu) + b6*math.Sin(6*mu) + b8*math.Sin(8*mu)
}
