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

// Package reference locates and loads the external assets a geodesy.Context
// cannot synthesize on its own: macro definition files (.gys, .yml) and
// datum/geoid grid files, either loose on disk or packed into a zip
// archive. It implements geodesy.AssetSource.
package reference

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spatialmodel/geodesy"
	"github.com/spatialmodel/geodesy/grid"
	"github.com/spatialmodel/geodesy/grid/ntv2"
)

// Provider searches a fixed, ordered list of roots for a requested macro or
// grid: the current working directory first, then a user configuration
// directory, then a system-wide share directory - the same precedence a
// shell would apply to a PATH lookup, closest binding wins. Any root may
// instead be a zip archive, searched by its internal paths rather than the
// filesystem.
type Provider struct {
	Roots []string
}

// DefaultProvider builds a Provider over the conventional search path: cwd,
// then the user's config directory, then the machine-wide share directory,
// each under a "geodesy" subdirectory.
func DefaultProvider() *Provider {
	var roots []string
	if wd, err := os.Getwd(); err == nil {
		roots = append(roots, wd)
	}
	if cfg, err := os.UserConfigDir(); err == nil {
		roots = append(roots, filepath.Join(cfg, "geodesy"))
	}
	roots = append(roots, filepath.Join(string(filepath.Separator), "usr", "share", "geodesy"))
	return &Provider{Roots: roots}
}

var macroExtensions = []string{".yml", ".yaml", ".gys"}

// Macro implements geodesy.AssetSource: it searches each root in order for
// <name>.yml, <name>.yaml or <name>.gys and returns the first match's raw
// contents.
func (p *Provider) Macro(name string) (string, error) {
	for _, root := range p.Roots {
		for _, ext := range macroExtensions {
			rel := name + ext
			data, err := p.read(root, rel)
			if err == nil {
				glog.V(2).Infof("resolved macro %q from %s", name, filepath.Join(root, rel))
				return string(data), nil
			}
		}
	}
	return "", geodesy.NewNotFoundError(name)
}

// Grid implements geodesy.AssetSource: it searches each root for
// datum/<name>.gsb (NTv2 binary), datum/<name>.ntv2, datum/<name>.gri or
// datum/<name>.txt (gravsoft text), in that order. For an NTv2 file holding
// several sub-grids, only one of them is returned, and which one is not
// defined.
func (p *Provider) Grid(name string) (*grid.Grid, error) {
	candidates := []string{
		filepath.Join("datum", name+".gsb"),
		filepath.Join("datum", name+".ntv2"),
	}
	for _, root := range p.Roots {
		for _, rel := range candidates {
			data, err := p.read(root, rel)
			if err != nil {
				continue
			}
			grids, err := ntv2.Load(data)
			if err != nil {
				return nil, errors.Wrapf(err, "grid %q", name)
			}
			return firstGrid(grids)
		}
		for _, ext := range []string{".gri", ".txt"} {
			rel := filepath.Join("datum", name+ext)
			data, err := p.read(root, rel)
			if err != nil {
				continue
			}
			return grid.LoadGravsoft(bytes.NewReader(data), geodesy.DegToRad)
		}
	}
	return nil, geodesy.NewNotFoundError(name)
}

func firstGrid(grids map[string]*grid.Grid) (*grid.Grid, error) {
	for _, g := range grids {
		return g, nil
	}
	return nil, fmt.Errorf("ntv2 file contained no sub-grids")
}

// read resolves rel against root, which may be a plain directory or a .zip
// archive, returning the named entry's raw bytes.
func (p *Provider) read(root, rel string) ([]byte, error) {
	if strings.HasSuffix(strings.ToLower(root), ".zip") {
		return readFromZip(root, rel)
	}
	path := filepath.Join(root, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, geodesy.WrapIO(err)
	}
	return data, nil
}

func readFromZip(archivePath, rel string) ([]byte, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, geodesy.WrapIO(err)
	}
	defer zr.Close()

	want := filepath.ToSlash(rel)
	for _, f := range zr.File {
		if f.Name != want {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, geodesy.WrapIO(err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, geodesy.WrapIO(err)
		}
		return data, nil
	}
	return nil, geodesy.NewNotFoundError(rel)
}
