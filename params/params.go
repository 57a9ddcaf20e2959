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

// Package params implements the typed parameter schema ("gamut") that every
// primitive operator declares, and the parsing of raw textual key/value
// pairs against that schema into ParsedParameters.
package params

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the declared type of a single operator parameter.
type Kind int

const (
	// KindFlag is a boolean switch: true if the key is present without a
	// value, the parsed value if one is given (so "key=false" is false),
	// and false if the key is absent.
	KindFlag Kind = iota
	// KindText is an arbitrary string value, e.g. an ellipsoid name.
	KindText
	// KindReal is a floating point value.
	KindReal
	// KindNatural is a non-negative integer value.
	KindNatural
	// KindSeries is a comma-separated list of floating point values.
	KindSeries
	// KindGrids is a comma-separated list of grid names, each optionally
	// suffixed with "@null" to mark it as optional.
	KindGrids
)

// OpParameter is a single entry in an operator's gamut: its key, kind, and
// default (if any). A parameter with no default is required.
type OpParameter struct {
	Key      string
	Kind     Kind
	Default  string
	Required bool
}

// Flag declares an optional boolean parameter, false unless present.
func Flag(key string) OpParameter { return OpParameter{Key: key, Kind: KindFlag, Default: "false"} }

// Text declares an optional text parameter with the given default.
func Text(key, def string) OpParameter { return OpParameter{Key: key, Kind: KindText, Default: def} }

// TextRequired declares a text parameter with no default.
func TextRequired(key string) OpParameter {
	return OpParameter{Key: key, Kind: KindText, Required: true}
}

// Real declares an optional real-valued parameter with the given default.
func Real(key string, def float64) OpParameter {
	return OpParameter{Key: key, Kind: KindReal, Default: formatReal(def)}
}

// RealRequired declares a real-valued parameter with no default.
func RealRequired(key string) OpParameter {
	return OpParameter{Key: key, Kind: KindReal, Required: true}
}

// Natural declares an optional non-negative integer parameter.
func Natural(key string, def int) OpParameter {
	return OpParameter{Key: key, Kind: KindNatural, Default: strconv.Itoa(def)}
}

// NaturalRequired declares a non-negative integer parameter with no
// default, e.g. utm's "zone".
func NaturalRequired(key string) OpParameter {
	return OpParameter{Key: key, Kind: KindNatural, Required: true}
}

// Series declares an optional comma-separated list of reals.
func Series(key string) OpParameter { return OpParameter{Key: key, Kind: KindSeries, Default: ""} }

// Grids declares the (normally required) comma-separated list of grid names
// consumed by the gridshift operator.
func Grids(key string) OpParameter {
	return OpParameter{Key: key, Kind: KindGrids, Required: true}
}

func formatReal(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// RawArgs is the textual key/value pairs a step resolves to, after macro
// argument substitution and global/local scope merge, but before gamut
// validation.
type RawArgs map[string]string

// ParsedParameters is a gamut paired with the values parsed out of a set of
// RawArgs. Every gamut entry is, after parsing, either defaulted or
// explicitly set - there are no partially-initialized parameters.
type ParsedParameters struct {
	gamut   []OpParameter
	text    map[string]string
	real    map[string]float64
	natural map[string]int
	flag    map[string]bool
	series  map[string][]float64
	grids   map[string][]string
}

// New validates raw against gamut and returns the typed ParsedParameters.
// Unknown keys in raw (not present in gamut) are errors, as are missing
// required parameters and malformed numeric values.
func New(gamut []OpParameter, raw RawArgs) (*ParsedParameters, error) {
	known := make(map[string]OpParameter, len(gamut))
	for _, p := range gamut {
		known[p.Key] = p
	}
	for key := range raw {
		if _, ok := known[key]; !ok {
			return nil, fmt.Errorf("unknown parameter %q", key)
		}
	}

	pp := &ParsedParameters{
		gamut:   gamut,
		text:    map[string]string{},
		real:    map[string]float64{},
		natural: map[string]int{},
		flag:    map[string]bool{},
		series:  map[string][]float64{},
		grids:   map[string][]string{},
	}

	for _, p := range gamut {
		raw, present := raw[p.Key]
		if !present {
			if p.Kind == KindFlag {
				pp.flag[p.Key] = false
				continue
			}
			if p.Required {
				return nil, fmt.Errorf("missing required parameter %q", p.Key)
			}
			raw = p.Default
		}
		if err := pp.set(p, raw, present); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Key, err)
		}
	}
	return pp, nil
}

func (pp *ParsedParameters) set(p OpParameter, raw string, present bool) error {
	switch p.Kind {
	case KindFlag:
		if !present {
			pp.flag[p.Key] = false
			return nil
		}
		if raw == "" || strings.EqualFold(raw, "true") {
			pp.flag[p.Key] = true
			return nil
		}
		if strings.EqualFold(raw, "false") {
			pp.flag[p.Key] = false
			return nil
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("malformed flag value %q", raw)
		}
		pp.flag[p.Key] = v
	case KindText:
		pp.text[p.Key] = raw
	case KindReal:
		if raw == "" {
			pp.real[p.Key] = 0
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("malformed number %q", raw)
		}
		pp.real[p.Key] = v
	case KindNatural:
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return fmt.Errorf("malformed natural number %q", raw)
		}
		pp.natural[p.Key] = v
	case KindSeries:
		pp.series[p.Key] = parseSeries(raw)
	case KindGrids:
		pp.grids[p.Key] = parseList(raw)
	default:
		return fmt.Errorf("unknown parameter kind for %q", p.Key)
	}
	return nil
}

func parseSeries(raw string) []float64 {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Text returns the string value of a KindText parameter.
func (pp *ParsedParameters) Text(key string) string { return pp.text[key] }

// Real returns the value of a KindReal parameter.
func (pp *ParsedParameters) Real(key string) float64 { return pp.real[key] }

// Natural returns the value of a KindNatural parameter.
func (pp *ParsedParameters) Natural(key string) int { return pp.natural[key] }

// Flag returns the value of a KindFlag parameter.
func (pp *ParsedParameters) Flag(key string) bool { return pp.flag[key] }

// Series returns the values of a KindSeries parameter.
func (pp *ParsedParameters) Series(key string) []float64 { return pp.series[key] }

// Grids returns the grid names of a KindGrids parameter, in declaration
// order, preserving any "@null" suffix on an entry.
func (pp *ParsedParameters) Grids(key string) []string { return pp.grids[key] }

// Gamut returns the schema this instance was parsed against.
func (pp *ParsedParameters) Gamut() []OpParameter { return pp.gamut }
