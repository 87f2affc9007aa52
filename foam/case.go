/*
Copyright © 2026 the foamplot authors.
This file is part of foamplot.

foamplot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

foamplot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with foamplot.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package foam reads meshes and fields from OpenFOAM case directories.
package foam

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/foamplot"
)

// DefaultPrecision is the default number of decimal places cell centre
// coordinates are rounded to when they are arranged into a grid.
const DefaultPrecision = 10

// Case is an OpenFOAM case directory whose mesh is a structured grid.
// It implements foamplot.FieldReader.
type Case struct {
	Dir string

	// Precision is the number of decimal places cell centre coordinates
	// are rounded to when they are arranged into a grid.
	Precision int

	Log logrus.FieldLogger

	mu   sync.Mutex
	grid *foamplot.Grid
	perm []int
}

// NewCase returns a reader for the case in dir. Cell centre coordinates
// are rounded to precision decimal places; if precision is not positive
// DefaultPrecision is used.
func NewCase(dir string, precision int) *Case {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return &Case{Dir: dir, Precision: precision}
}

var _ foamplot.FieldReader = (*Case)(nil)

func (c *Case) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// open opens the named file relative to the case directory, falling
// back to a gzipped copy with a ".gz" suffix.
func (c *Case) open(elem ...string) (*file, error) {
	name := filepath.Join(append([]string{c.Dir}, elem...)...)
	f, err := openFile(name)
	if os.IsNotExist(err) {
		if f, err2 := openFile(name + ".gz"); err2 == nil {
			return f, nil
		} else if !os.IsNotExist(err2) {
			return nil, err2
		}
	}
	return f, err
}

func exists(err error) bool { return !os.IsNotExist(err) }

// Grid returns the structured grid formed by the cell centres. The
// centres are read from a C field in the constant or 0 directory if
// there is one, and otherwise computed from constant/polyMesh.
func (c *Case) Grid() (*foamplot.Grid, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grid != nil {
		return c.grid, nil
	}
	cc, err := c.centres()
	if err != nil {
		return nil, err
	}
	prec := c.Precision
	if prec <= 0 {
		prec = DefaultPrecision
	}
	g, perm, err := structure(cc, prec)
	if err != nil {
		return nil, err
	}
	c.logger().WithFields(logrus.Fields{
		"case":  c.Dir,
		"cells": g.Len(),
		"nx":    g.Nx,
		"ny":    g.Ny,
		"nz":    g.Nz,
	}).Info("read mesh")
	c.grid, c.perm = g, perm
	return g, nil
}

func (c *Case) centres() (centres, error) {
	for _, dir := range []string{"constant", "0"} {
		f, err := c.open(dir, "C")
		if err == nil {
			v, err := f.internalField(3, -1)
			if err != nil {
				return nil, err
			}
			c.logger().WithField("file", f.name).Debug("using cell centres from file")
			return centres(v), nil
		} else if exists(err) {
			return nil, err
		}
	}

	read := func(name string) (*file, error) {
		f, err := c.open("constant", "polyMesh", name)
		if err != nil {
			return nil, fmt.Errorf("foam: reading mesh: %w", err)
		}
		return f, nil
	}
	f, err := read("points")
	if err != nil {
		return nil, err
	}
	points, err := f.scalars(3)
	if err != nil {
		return nil, err
	}
	if f, err = read("faces"); err != nil {
		return nil, err
	}
	faces, err := f.faces()
	if err != nil {
		return nil, err
	}
	if f, err = read("owner"); err != nil {
		return nil, err
	}
	owner, err := f.labels()
	if err != nil {
		return nil, err
	}
	if f, err = read("neighbour"); err != nil {
		return nil, err
	}
	neighbour, err := f.labels()
	if err != nil {
		return nil, err
	}
	return polyMesh(points, faces, owner, neighbour)
}

// field reads the internal field with ncomp components at time t and
// arranges it in grid order.
func (c *Case) field(t foamplot.TimeStep, name string, ncomp int) (*foamplot.Grid, [][]float64, error) {
	g, err := c.Grid()
	if err != nil {
		return nil, nil, err
	}
	f, err := c.open(t.Label, name)
	if err != nil {
		return nil, nil, fmt.Errorf("foam: reading field: %w", err)
	}
	v, err := f.internalField(ncomp, g.Len())
	if err != nil {
		return nil, nil, err
	}
	c.mu.Lock()
	perm := c.perm
	c.mu.Unlock()
	return g, reorder(v, ncomp, perm), nil
}

// Vector returns the named vector field at time step t.
func (c *Case) Vector(t foamplot.TimeStep, name string) (*foamplot.VectorField, error) {
	g, d, err := c.field(t, name, 3)
	if err != nil {
		return nil, err
	}
	return &foamplot.VectorField{
		Nx: g.Nx, Ny: g.Ny, Nz: g.Nz,
		Data: [3][]float64{d[0], d[1], d[2]},
	}, nil
}

// Scalar returns the named scalar field at time step t.
func (c *Case) Scalar(t foamplot.TimeStep, name string) (*foamplot.ScalarField, error) {
	g, d, err := c.field(t, name, 1)
	if err != nil {
		return nil, err
	}
	return &foamplot.ScalarField{
		Nx: g.Nx, Ny: g.Ny, Nz: g.Nz,
		Data: d[0],
	}, nil
}
