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

package reference

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestProviderMacroSearchesRootsInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	if err := os.WriteFile(filepath.Join(second, "mymacro.gys"), []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(first, "mymacro.yml"), []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p := &Provider{Roots: []string{first, second}}
	raw, err := p.Macro("mymacro")
	if err != nil {
		t.Fatalf("Macro: %v", err)
	}
	if raw != "first" {
		t.Fatalf("Macro() = %q, want %q (first root should win)", raw, "first")
	}
}

func TestProviderMacroNotFound(t *testing.T) {
	p := &Provider{Roots: []string{t.TempDir()}}
	if _, err := p.Macro("absent"); err == nil {
		t.Fatalf("expected an error for a missing macro")
	}
}

func TestProviderGridLoadsGravsoftText(t *testing.T) {
	root := t.TempDir()
	datumDir := filepath.Join(root, "datum")
	if err := os.MkdirAll(datumDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "0 10 0 10 10 10\n1 2\n3 4\n"
	if err := os.WriteFile(filepath.Join(datumDir, "test.gri"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p := &Provider{Roots: []string{root}}
	g, err := p.Grid("test")
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if g.Rows != 2 || g.Cols != 2 {
		t.Fatalf("unexpected grid shape: %d x %d", g.Rows, g.Cols)
	}
}

func TestProviderMacroFromZipArchive(t *testing.T) {
	root := t.TempDir()
	archivePath := filepath.Join(root, "bundle.zip")
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("zipped.gys")
	if err != nil {
		t.Fatalf("zip Create: %v", err)
	}
	if _, err := w.Write([]byte("helmert x:1")); err != nil {
		t.Fatalf("zip Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p := &Provider{Roots: []string{archivePath}}
	raw, err := p.Macro("zipped")
	if err != nil {
		t.Fatalf("Macro: %v", err)
	}
	if raw != "helmert x:1" {
		t.Fatalf("Macro() = %q", raw)
	}
}
