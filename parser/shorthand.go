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

package parser

import (
	"fmt"
	"strings"
)

// ParseShorthand parses the terse, single-line, pipe-separated syntax:
//
//	head | step | step | ...
//
// Each step is "name k1:v1 k2:v2 flag" - a bare identifier among a step's
// tokens is a flag, taken to mean "true". A single-step shorthand (no pipe)
// yields that one operator's Definition directly, matching the factory's
// "a pipeline of one step is just that step" rule; two or more steps yield a
// synthetic "pipeline" Definition with one child Definition per step.
func ParseShorthand(src string) (Definition, error) {
	rawSteps := strings.Split(src, "|")
	defs := make([]Definition, 0, len(rawSteps))
	for _, raw := range rawSteps {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		d, err := parseShorthandStep(raw)
		if err != nil {
			return Definition{}, err
		}
		defs = append(defs, d)
	}
	if len(defs) == 0 {
		return Definition{}, fmt.Errorf("shorthand syntax: empty definition")
	}
	if len(defs) == 1 {
		return defs[0], nil
	}
	return Definition{Name: "pipeline", Steps: defs}, nil
}

func parseShorthandStep(raw string) (Definition, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Definition{}, fmt.Errorf("shorthand syntax: empty step")
	}
	name := tokens[0]
	var args []KV
	for _, tok := range tokens[1:] {
		if idx := strings.Index(tok, ":"); idx >= 0 {
			args = append(args, KV{Key: tok[:idx], Value: tok[idx+1:]})
			continue
		}
		// A bare identifier is a flag, treated as the boolean true.
		args = append(args, KV{Key: tok, Value: "true"})
	}
	return expandSugar(name, args), nil
}

// expandSugar resolves a shorthand head that names a sugar alias rather than
// a real operator or macro. Currently "geo" is the only alias: it stands in
// for the common "adapt" boundary step between degree-valued external
// coordinates and the engine's internal radians, in either direction
// depending on whether the alias itself carries the "inv" flag.
func expandSugar(name string, args []KV) Definition {
	if name != "geo" {
		return Definition{Name: name, Args: args}
	}
	inverted := false
	filtered := make([]KV, 0, len(args))
	for _, kv := range args {
		if kv.Key == "inv" {
			inverted = true
			continue
		}
		filtered = append(filtered, kv)
	}
	direction := "from"
	if inverted {
		direction = "to"
	}
	filtered = append(filtered, KV{Key: direction, Value: "neut_deg"})
	return Definition{Name: "adapt", Args: filtered}
}
