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

// Package grid implements the regular-grid correction surfaces (geoid
// undulation, horizontal datum shift) used by the gridshift operator: a
// row-major sample array, addressed by geographic coordinate through
// bilinear interpolation, plus loaders for the line-oriented gravsoft text
// format and, in the ntv2 subpackage, the binary NTv2 format. This package
// is a leaf: it never imports the root geodesy package.
package grid

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Grid is one loaded correction surface: a rows x cols array of Bands
// values per node, covering [Lat0, Lat1] x [Lon0, Lon1] with steps DLat,
// DLon (all in radians). Row 0 is the northernmost row, matching the
// gravsoft and NTv2 on-disk scan order.
type Grid struct {
	Name  string
	Lat0, Lat1 float64
	Lon0, Lon1 float64
	DLat, DLon float64
	Rows, Cols int
	Bands      int
	// Samples is row-major: Samples[row*Cols*Bands + col*Bands + band].
	Samples []float64
}

// Contains reports whether (lon, lat), both radians, falls inside the
// grid's extent expanded outward by paddingCells grid cells on every side -
// paddingCells is converted to radians against DLon and DLat independently,
// since the two axes may have different step sizes.
func (g *Grid) Contains(lon, lat, paddingCells float64) bool {
	padLon := paddingCells * math.Abs(g.DLon)
	padLat := paddingCells * math.Abs(g.DLat)
	return lon >= g.Lon0-padLon && lon <= g.Lon1+padLon &&
		lat >= g.Lat0-padLat && lat <= g.Lat1+padLat
}

// Interpolate returns the bilinearly-interpolated Bands values at (lon,
// lat), both radians. The row and column clamps are deliberately
// asymmetric: row is clamped into [1, Rows-1] and col into [0, Cols-2], so
// that a query exactly on the northernmost row or easternmost column reads
// from the same cell as one just inside the edge, matching the reference
// implementation's indexing rather than a textbook-symmetric clamp.
func (g *Grid) Interpolate(lon, lat float64) []float64 {
	out := make([]float64, g.Bands)

	// Fractional row/col position; row 0 is the north edge so row grows
	// southward as latitude decreases.
	fRow := (g.Lat1 - lat) / g.DLat
	fCol := (lon - g.Lon0) / g.DLon

	row := int(math.Ceil(fRow))
	col := int(fCol)
	if row < 1 {
		row = 1
	}
	if row > g.Rows-1 {
		row = g.Rows - 1
	}
	if col < 0 {
		col = 0
	}
	if col > g.Cols-2 {
		col = g.Cols - 2
	}

	fr := fRow - float64(row-1)
	fc := fCol - float64(col)

	for b := 0; b < g.Bands; b++ {
		v00 := g.at(row-1, col, b)
		v01 := g.at(row-1, col+1, b)
		v10 := g.at(row, col, b)
		v11 := g.at(row, col+1, b)
		top := v00 + fc*(v01-v00)
		bot := v10 + fc*(v11-v10)
		out[b] = top + fr*(bot-top)
	}
	return out
}

func (g *Grid) at(row, col, band int) float64 {
	return g.Samples[row*g.Cols*g.Bands+col*g.Bands+band]
}

// LoadGravsoft reads the line-oriented gravsoft text grid format: a header
// line of "lat0 lat1 lon0 lon1 dlat dlon" (degrees), followed by the
// sample values in row-major order, north-to-south, west-to-east, '#'
// introducing a comment to end of line.
func LoadGravsoft(r io.Reader, degToRad func(float64) float64) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	var header []float64
	var values []float64
	for sc.Scan() {
		line := stripComment(sc.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "gravsoft grid: malformed number %q", tok)
			}
			values = append(values, v)
		}
		if header == nil {
			if len(values) < 6 {
				continue
			}
			header = values[:6]
			values = values[6:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "gravsoft grid")
	}
	if header == nil {
		return nil, fmt.Errorf("gravsoft grid: missing header line")
	}

	lat0, lat1, lon0, lon1, dlat, dlon := header[0], header[1], header[2], header[3], header[4], header[5]
	rows := int((lat1-lat0)/dlat+0.5) + 1
	cols := int((lon1-lon0)/dlon+0.5) + 1
	if rows*cols != len(values) {
		return nil, fmt.Errorf("gravsoft grid: expected %d samples (%dx%d), found %d", rows*cols, rows, cols, len(values))
	}

	g := &Grid{
		Lat0: degToRad(lat0), Lat1: degToRad(lat1),
		Lon0: degToRad(lon0), Lon1: degToRad(lon1),
		DLat: degToRad(dlat), DLon: degToRad(dlon),
		Rows: rows, Cols: cols, Bands: 1,
		Samples: values,
	}
	return g, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}
