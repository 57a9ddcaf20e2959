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

import "testing"

func TestShorthandSingleStep(t *testing.T) {
	def, err := Parse("merc ellps:GRS80 lon_0:12")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Name != "merc" {
		t.Fatalf("expected name merc, got %q", def.Name)
	}
	if v, ok := def.Arg("lon_0"); !ok || v != "12" {
		t.Fatalf("expected lon_0=12, got %q (ok=%v)", v, ok)
	}
}

func TestShorthandPipelineSteps(t *testing.T) {
	def, err := Parse("cart ellps:intl | helmert x:1 | cart ellps:intl inv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !def.IsPipeline() {
		t.Fatalf("expected a pipeline")
	}
	if len(def.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(def.Steps))
	}
	if v, _ := def.Steps[0].Arg("ellps"); v != "intl" {
		t.Fatalf("expected first step ellps:intl, got %q", v)
	}
	helmert := def.Steps[1]
	if v, _ := helmert.Arg("x"); v != "1" {
		t.Fatalf("expected local x:1 preserved, got %q", v)
	}
}

func TestBlockPipelineGlobalsMerge(t *testing.T) {
	block := `pipeline: { ellps: intl, steps: [ { cart: {} }, { helmert: { x: 1 } }, { cart: { inv: true } } ] }`
	def, err := Parse(block)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, step := range def.Steps {
		if v, ok := step.Arg("ellps"); !ok || v != "intl" {
			t.Fatalf("step %d: expected global ellps:intl merged in, got %q (ok=%v)", i, v, ok)
		}
	}
	if v, _ := def.Steps[1].Arg("x"); v != "1" {
		t.Fatalf("expected local x:1 preserved on helmert step, got %q", v)
	}
	if v, _ := def.Steps[2].Arg("inv"); v != "true" {
		t.Fatalf("expected local inv:true preserved on last cart step, got %q", v)
	}
}

func TestBlockAndShorthandEquivalence(t *testing.T) {
	block := `pipeline: { steps: [ { cart: { ellps: GRS80 } }, { helmert: { x: 1, y: 2, z: 3 } } ] }`
	shorthand := "cart ellps:GRS80 | helmert x:1 y:2 z:3"

	bd, err := Parse(block)
	if err != nil {
		t.Fatalf("Parse(block): %v", err)
	}
	sd, err := Parse(shorthand)
	if err != nil {
		t.Fatalf("Parse(shorthand): %v", err)
	}
	if len(bd.Steps) != len(sd.Steps) {
		t.Fatalf("step count differs: block=%d shorthand=%d", len(bd.Steps), len(sd.Steps))
	}
	for i := range bd.Steps {
		if bd.Steps[i].Name != sd.Steps[i].Name {
			t.Fatalf("step %d name differs: block=%q shorthand=%q", i, bd.Steps[i].Name, sd.Steps[i].Name)
		}
		bm, sm := bd.Steps[i].ArgMap(), sd.Steps[i].ArgMap()
		for k, v := range sm {
			if bm[k] != v {
				t.Fatalf("step %d arg %q differs: block=%q shorthand=%q", i, k, bm[k], v)
			}
		}
	}
}

func TestGeoSugarExpandsToAdapt(t *testing.T) {
	fwd, err := Parse("geo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if fwd.Name != "adapt" {
		t.Fatalf("expected adapt, got %q", fwd.Name)
	}
	if v, ok := fwd.Arg("from"); !ok || v != "neut_deg" {
		t.Fatalf("expected from:neut_deg, got %q (ok=%v)", v, ok)
	}

	inv, err := Parse("geo inv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, ok := inv.Arg("to"); !ok || v != "neut_deg" {
		t.Fatalf("expected to:neut_deg, got %q (ok=%v)", v, ok)
	}
}

func TestResolveMacroArgument(t *testing.T) {
	def := Definition{Name: "merc", Args: []KV{{Key: "lon_0", Value: "^meridian"}}}
	resolved, err := Resolve(def, map[string]string{"meridian": "9"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if v, _ := resolved.Arg("lon_0"); v != "9" {
		t.Fatalf("expected lon_0=9, got %q", v)
	}

	if _, err := Resolve(def, map[string]string{}); err == nil {
		t.Fatalf("expected an error for an undefined macro argument")
	}
}
