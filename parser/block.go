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
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseBlock parses the long-form block syntax:
//
//	name: { key: value, steps: [ step1, step2, ... ], ... }
//
// using a YAML decode of the whole string - block syntax is, by design, a
// restricted dialect of YAML flow mappings. Whitespace is insensitive and
// nested definitions are allowed.
func ParseBlock(src string) (Definition, error) {
	var root map[string]interface{}
	if err := yaml.Unmarshal([]byte(src), &root); err != nil {
		return Definition{}, fmt.Errorf("block syntax: %w", err)
	}
	if len(root) != 1 {
		return Definition{}, fmt.Errorf("block definition must have exactly one top-level key, found %d", len(root))
	}
	var name string
	var body interface{}
	for k, v := range root {
		name, body = k, v
	}
	return definitionFromNode(name, body)
}

func definitionFromNode(name string, body interface{}) (Definition, error) {
	def := Definition{Name: name}
	if body == nil {
		return def, nil
	}
	m, ok := body.(map[string]interface{})
	if !ok {
		return def, fmt.Errorf("%s: expected a mapping body, found %T", name, body)
	}

	var stepsRaw []interface{}
	var globalsRaw map[string]interface{}
	haveGlobals := false

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := m[k]
		switch k {
		case "steps":
			list, ok := v.([]interface{})
			if !ok {
				return def, fmt.Errorf("%s: steps must be a list", name)
			}
			stepsRaw = list
		case "globals":
			gm, ok := v.(map[string]interface{})
			if !ok {
				return def, fmt.Errorf("%s: globals must be a mapping", name)
			}
			globalsRaw = gm
			haveGlobals = true
		default:
			def.Args = append(def.Args, KV{Key: k, Value: scalarString(v)})
		}
	}

	if haveGlobals {
		gkeys := make([]string, 0, len(globalsRaw))
		for k := range globalsRaw {
			gkeys = append(gkeys, k)
		}
		sort.Strings(gkeys)
		for _, k := range gkeys {
			def.Globals = append(def.Globals, KV{Key: k, Value: scalarString(globalsRaw[k])})
		}
	}

	for _, step := range stepsRaw {
		sm, ok := step.(map[string]interface{})
		if !ok || len(sm) != 1 {
			return def, fmt.Errorf("%s: each step must be a single-key mapping", name)
		}
		var sname string
		var sbody interface{}
		for k, v := range sm {
			sname, sbody = k, v
		}
		child, err := definitionFromNode(sname, sbody)
		if err != nil {
			return def, err
		}
		def.Steps = append(def.Steps, child)
	}
	return def, nil
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
