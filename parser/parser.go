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

// Parse accepts either surface syntax and returns the normalized
// Definition tree: block-form globals are merged into every step (local
// keys shadowing), ready for the registry's factory to compile.
func Parse(src string) (Definition, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return Definition{}, fmt.Errorf("empty definition")
	}
	var def Definition
	var err error
	if strings.ContainsRune(trimmed, '{') {
		def, err = ParseBlock(trimmed)
	} else {
		def, err = ParseShorthand(trimmed)
	}
	if err != nil {
		return Definition{}, err
	}
	return Normalize(def), nil
}

// Normalize merges a pipeline's globals into each of its steps, local keys
// shadowing globals, recursively. A definition's globals are whatever was
// declared under an explicit "globals:" mapping, or - the common case - the
// definition's own non-"steps" arguments.
func Normalize(def Definition) Definition {
	if !def.IsPipeline() {
		return def
	}
	globals := def.Globals
	if globals == nil {
		globals = def.Args
	}
	merged := make([]Definition, len(def.Steps))
	for i, step := range def.Steps {
		merged[i] = Normalize(mergeScope(step, globals))
	}
	out := def
	out.Steps = merged
	out.Globals = globals
	return out
}

// mergeScope merges globals into step's local Args, local keys shadowing,
// and drops the globals ("inv", "name", "steps") that pertain to the
// pipeline itself rather than to its constituent steps.
func mergeScope(step Definition, globals []KV) Definition {
	seen := make(map[string]bool, len(step.Args))
	args := make([]KV, 0, len(globals)+len(step.Args))
	for _, kv := range step.Args {
		args = append(args, kv)
		seen[kv.Key] = true
	}
	for _, kv := range globals {
		switch kv.Key {
		case "inv", "name", "steps":
			continue
		}
		if seen[kv.Key] {
			continue
		}
		args = append(args, kv)
	}
	step.Args = args
	return step
}

// Resolve substitutes "^x" placeholders found in def's Args, Globals and
// nested Steps with values bound in env. This is how a macro body accepts
// arguments: rather than a textual replace, each scope looks its "^x"
// references up in the caller-supplied environment, so an undefined
// argument is reported against the specific key that needed it.
func Resolve(def Definition, env map[string]string) (Definition, error) {
	out := def
	out.Args = nil
	for _, kv := range def.Args {
		v, err := resolveValue(kv.Value, env)
		if err != nil {
			return Definition{}, fmt.Errorf("%s: %w", def.Name, err)
		}
		out.Args = append(out.Args, KV{Key: kv.Key, Value: v})
	}
	out.Globals = nil
	for _, kv := range def.Globals {
		v, err := resolveValue(kv.Value, env)
		if err != nil {
			return Definition{}, fmt.Errorf("%s: %w", def.Name, err)
		}
		out.Globals = append(out.Globals, KV{Key: kv.Key, Value: v})
	}
	out.Steps = nil
	for _, step := range def.Steps {
		child, err := Resolve(step, env)
		if err != nil {
			return Definition{}, err
		}
		out.Steps = append(out.Steps, child)
	}
	return out, nil
}

func resolveValue(v string, env map[string]string) (string, error) {
	if !strings.HasPrefix(v, "^") {
		return v, nil
	}
	key := v[1:]
	bound, ok := env[key]
	if !ok {
		return "", fmt.Errorf("undefined macro argument %q", key)
	}
	return bound, nil
}
