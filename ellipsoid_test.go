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
	"testing"
)

func TestFootpointLatitudeInvertsMeridionalDistance(t *testing.T) {
	e := NamedEllipsoids["GRS80"]
	for _, degLat := range []float64{0, 15, 30, 45, 60, 75, 89} {
		lat := DegToRad(degLat)
		m := e.MeridionalDistance(lat)
		got := e.FootpointLatitude(m)
		if math.Abs(got-lat) > 1e-10 {
			t.Errorf("lat=%v: FootpointLatitude(M(lat))=%v, want %v", degLat, got, lat)
		}
	}
}

func TestPrimeVerticalRadiusAtEquatorIsSemiMajorAxis(t *testing.T) {
	e := NamedEllipsoids["WGS84"]
	if got := e.PrimeVerticalRadius(0); math.Abs(got-e.A) > 1e-6 {
		t.Fatalf("N(0)=%v, want %v", got, e.A)
	}
}

func TestLookupEllipsoidDefaultsToGRS80(t *testing.T) {
	e, ok := LookupEllipsoid("")
	if !ok || e.Name != "GRS80" {
		t.Fatalf("expected GRS80 default, got %+v (ok=%v)", e, ok)
	}
}
