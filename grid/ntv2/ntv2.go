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

// Package ntv2 reads the binary NTv2 grid shift format (.gsb), as used by
// national horizontal datum transformation grids (NAD27-to-NAD83,
// ED50-to-ETRS89, and similar). A file may carry several sub-grids; this
// reader flattens them into the parent grid package's row-major Grid shape,
// one per sub-grid, returned in a map keyed by sub-grid name; the map
// carries no ordering by resolution or nesting.
package ntv2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/spatialmodel/geodesy/grid"
)

const (
	recordSize = 16
	secToRad   = 1.0 / 3600 * (math.Pi / 180)
)

// record is one 16-byte NTv2 header record: an 8-byte field name followed
// by either an 8-byte double or an 8-byte (4+4) int/char pair, the layout
// NTv2 inherited from its origin as a flat record format with no explicit
// type tags.
type record struct {
	name  [8]byte
	value [8]byte
}

// Load parses the full contents of an NTv2 (.gsb) file into one *grid.Grid
// per sub-grid, keyed by sub-grid name. Endianness is auto-detected: the
// overview header's NUM_OREC field, stored as a 4-byte integer, sits at
// byte offset 8; if that byte, read as little-endian, is 11 (NTv2's
// overview header always has exactly 11 records) the file is
// little-endian, otherwise big-endian is assumed.
func Load(data []byte) (map[string]*grid.Grid, error) {
	if len(data) < recordSize*11 {
		return nil, errors.New("ntv2: file too short for overview header")
	}
	order := detectByteOrder(data)

	overview, rest, err := readRecords(data, 11)
	if err != nil {
		return nil, errors.Wrap(err, "ntv2: overview header")
	}
	numSubgrids := int(int32FieldOf(overview, order, "NUM_FILE"))
	if numSubgrids <= 0 {
		numSubgrids = 1
	}

	result := make(map[string]*grid.Grid, numSubgrids)
	buf := rest
	for i := 0; i < numSubgrids; i++ {
		sub, afterHeader, err := readRecords(buf, 11)
		if err != nil {
			return nil, errors.Wrapf(err, "ntv2: sub-grid %d header", i)
		}
		gsCount := int(int32FieldOf(sub, order, "GS_COUNT"))
		name := textFieldOf(sub, "SUB_NAME")

		sampleBytes := gsCount * 16
		if len(afterHeader) < sampleBytes {
			return nil, fmt.Errorf("ntv2: sub-grid %q truncated: need %d sample bytes, have %d", name, sampleBytes, len(afterHeader))
		}

		nLat := doubleFieldOf(sub, order, "LAT_INC")
		nLon := doubleFieldOf(sub, order, "LONG_INC")
		latMin := doubleFieldOf(sub, order, "S_LAT")
		latMax := doubleFieldOf(sub, order, "N_LAT")
		// NTv2 stores longitude growing westward; the parent grid package
		// expects the conventional east-positive sense.
		lonMin := -doubleFieldOf(sub, order, "W_LONG")
		lonMax := -doubleFieldOf(sub, order, "E_LONG")

		numRows := int((latMax-latMin)/nLat+0.5) + 1
		numCols := int((lonMax-lonMin)/nLon+0.5) + 1
		if numRows*numCols != gsCount {
			return nil, fmt.Errorf("ntv2: sub-grid %q: GS_COUNT %d does not match %dx%d extent", name, gsCount, numRows, numCols)
		}

		samples := make([]float64, numRows*numCols*2)
		cursor := afterHeader
		// NTv2 node records run south-to-north, west-to-east; the parent
		// Grid expects row 0 to be the north edge, so rows are reversed on
		// the way in. Each 16-byte record is (lat shift, lon shift, lat
		// accuracy, lon accuracy), each a 4-byte float, shifts in
		// arcseconds.
		for r := 0; r < numRows; r++ {
			destRow := numRows - 1 - r
			for col := 0; col < numCols; col++ {
				latShift := float32FromBits(order.Uint32(cursor[0:4]))
				lonShift := float32FromBits(order.Uint32(cursor[4:8]))
				cursor = cursor[16:]
				idx := (destRow*numCols + col) * 2
				samples[idx] = float64(latShift) * secToRad
				samples[idx+1] = float64(lonShift) * secToRad
			}
		}

		result[name] = &grid.Grid{
			Name: name,
			Lat0: latMin * secToRad, Lat1: latMax * secToRad,
			Lon0: lonMin * secToRad, Lon1: lonMax * secToRad,
			DLat: nLat * secToRad, DLon: nLon * secToRad,
			Rows: numRows, Cols: numCols, Bands: 2,
			Samples: samples,
		}
		buf = afterHeader[sampleBytes:]
	}
	return result, nil
}

func detectByteOrder(data []byte) binary.ByteOrder {
	if len(data) > 11 && data[8] == 11 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func readRecords(data []byte, n int) ([]record, []byte, error) {
	if len(data) < n*recordSize {
		return nil, nil, fmt.Errorf("need %d records, have %d bytes", n, len(data))
	}
	recs := make([]record, n)
	for i := 0; i < n; i++ {
		off := i * recordSize
		copy(recs[i].name[:], data[off:off+8])
		copy(recs[i].value[:], data[off+8:off+16])
	}
	return recs, data[n*recordSize:], nil
}

func fieldName(r record) string {
	return string(bytes.TrimRight(r.name[:], " \x00"))
}

func findField(recs []record, name string) (record, bool) {
	for _, r := range recs {
		if fieldName(r) == name {
			return r, true
		}
	}
	return record{}, false
}

func int32FieldOf(recs []record, order binary.ByteOrder, name string) int32 {
	r, ok := findField(recs, name)
	if !ok {
		return 0
	}
	return int32(order.Uint32(r.value[0:4]))
}

func doubleFieldOf(recs []record, order binary.ByteOrder, name string) float64 {
	r, ok := findField(recs, name)
	if !ok {
		return 0
	}
	bits := order.Uint64(r.value[:])
	return math.Float64frombits(bits)
}

func textFieldOf(recs []record, name string) string {
	r, ok := findField(recs, name)
	if !ok {
		return ""
	}
	return string(bytes.TrimRight(r.value[:], " \x00"))
}

func float32FromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}
