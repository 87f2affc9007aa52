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

package foamplot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// FieldReader reads mesh and field data from a simulation case.
// Fields are returned in the same point order as the grid.
type FieldReader interface {
	// Grid returns the coordinates of the case's structured grid.
	Grid() (*Grid, error)

	// Vector returns the named vector field at the given time step.
	Vector(t TimeStep, name string) (*VectorField, error)

	// Scalar returns the named scalar field at the given time step.
	Scalar(t TimeStep, name string) (*ScalarField, error)
}

// Grid holds the coordinates of an Nx × Ny × Nz structured grid.
// Point (i, j, k) is stored at index i + Nx*(j + Ny*k).
type Grid struct {
	Nx, Ny, Nz int
	X, Y, Z    []float64
}

// Index returns the flat index of point (i, j, k).
func (g *Grid) Index(i, j, k int) int { return i + g.Nx*(j+g.Ny*k) }

// Len returns the number of points in the grid.
func (g *Grid) Len() int { return g.Nx * g.Ny * g.Nz }

// MidPlane returns the depth index of the mid-plane, Nz/2.
func (g *Grid) MidPlane() int { return g.Nz / 2 }

// VectorField is a three-component field on a Grid.
type VectorField struct {
	Nx, Ny, Nz int
	Data       [3][]float64
}

// ScalarField is a scalar field on a Grid.
type ScalarField struct {
	Nx, Ny, Nz int
	Data       []float64
}

// Slice is a two-dimensional array of values on one depth plane of a
// grid. Point (i, j) is stored at index i + Nx*j. Slice satisfies
// the gonum.org/v1/plot/plotter.GridXYZ interface.
type Slice struct {
	Nx, Ny int

	// Xs and Ys are the point coordinates and Q the values.
	Xs, Ys, Q []float64
}

// Dims returns the number of columns and rows of the slice.
func (s *Slice) Dims() (c, r int) { return s.Nx, s.Ny }

// Z returns the value at column c and row r.
func (s *Slice) Z(c, r int) float64 { return s.Q[c+s.Nx*r] }

// X returns the x coordinate of column c.
func (s *Slice) X(c int) float64 { return s.Xs[c] }

// Y returns the y coordinate of row r.
func (s *Slice) Y(r int) float64 { return s.Ys[r*s.Nx] }

// Range returns the minimum and maximum of the slice values.
func (s *Slice) Range() (min, max float64) { return floats.Min(s.Q), floats.Max(s.Q) }

func checkDepth(nz, k int) error {
	if k < 0 || k >= nz {
		return fmt.Errorf("foamplot: depth index %d out of range [0, %d)", k, nz)
	}
	return nil
}

// Slice returns the coordinates of depth plane k. The values of the
// returned slice are all zero.
func (g *Grid) Slice(k int) (*Slice, error) {
	if err := checkDepth(g.Nz, k); err != nil {
		return nil, err
	}
	n := g.Nx * g.Ny
	s := &Slice{
		Nx: g.Nx,
		Ny: g.Ny,
		Xs: make([]float64, n),
		Ys: make([]float64, n),
		Q:  make([]float64, n),
	}
	copy(s.Xs, g.X[k*n:(k+1)*n])
	copy(s.Ys, g.Y[k*n:(k+1)*n])
	return s, nil
}

func (v *VectorField) check(g *Grid) error {
	if v.Nx != g.Nx || v.Ny != g.Ny || v.Nz != g.Nz {
		return fmt.Errorf("foamplot: field dimensions %dx%dx%d do not match grid %dx%dx%d",
			v.Nx, v.Ny, v.Nz, g.Nx, g.Ny, g.Nz)
	}
	return nil
}

// Components returns the three components of depth plane k, each
// as a slice of g.
func (v *VectorField) Components(g *Grid, k int) ([3]*Slice, error) {
	var o [3]*Slice
	if err := v.check(g); err != nil {
		return o, err
	}
	n := g.Nx * g.Ny
	for c := range o {
		s, err := g.Slice(k)
		if err != nil {
			return o, err
		}
		copy(s.Q, v.Data[c][k*n:(k+1)*n])
		o[c] = s
	}
	return o, nil
}

// Derive returns depth plane k of g with values computed from the
// vector components at each point by q.
func (v *VectorField) Derive(g *Grid, k int, q Quantity) (*Slice, error) {
	if err := v.check(g); err != nil {
		return nil, err
	}
	s, err := g.Slice(k)
	if err != nil {
		return nil, err
	}
	off := k * g.Nx * g.Ny
	for i := range s.Q {
		p := off + i
		s.Q[i], err = q(v.Data[0][p], v.Data[1][p], v.Data[2][p])
		if err != nil {
			return nil, fmt.Errorf("foamplot: computing quantity at point %d: %w", p, err)
		}
	}
	return s, nil
}

// Magnitude returns the Euclidean norm of the vector at every point of
// depth plane k.
func (v *VectorField) Magnitude(g *Grid, k int) (*Slice, error) {
	return v.Derive(g, k, Magnitude)
}

// Slice returns depth plane k of the scalar field.
func (f *ScalarField) Slice(g *Grid, k int) (*Slice, error) {
	if f.Nx != g.Nx || f.Ny != g.Ny || f.Nz != g.Nz {
		return nil, fmt.Errorf("foamplot: field dimensions %dx%dx%d do not match grid %dx%dx%d",
			f.Nx, f.Ny, f.Nz, g.Nx, g.Ny, g.Nz)
	}
	s, err := g.Slice(k)
	if err != nil {
		return nil, err
	}
	n := g.Nx * g.Ny
	copy(s.Q, f.Data[k*n:(k+1)*n])
	return s, nil
}

// Magnitude is the Quantity that returns the Euclidean norm of a vector.
func Magnitude(ux, uy, uz float64) (float64, error) {
	return math.Sqrt(ux*ux + uy*uy + uz*uz), nil
}
