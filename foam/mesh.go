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

package foam

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spatialmodel/foamplot"
)

// ErrNotStructured is returned when the cell centres of a mesh do not
// form a complete rectilinear grid.
var ErrNotStructured = errors.New("foam: mesh is not a structured grid")

// centres holds cell centre coordinates, interleaved as x, y, z.
type centres []float64

func (c centres) len() int { return len(c) / 3 }

// polyMesh computes the centre of each cell of the mesh described by
// points, faces, owner, and neighbour as the mean of the cell's unique
// vertices.
func polyMesh(points []float64, faces [][]int, owner, neighbour []int) (centres, error) {
	if len(owner) != len(faces) {
		return nil, fmt.Errorf("foam: %d faces but %d owners", len(faces), len(owner))
	}
	if len(neighbour) > len(faces) {
		return nil, fmt.Errorf("foam: %d faces but %d neighbours", len(faces), len(neighbour))
	}
	ncells := 0
	for _, o := range owner {
		if o+1 > ncells {
			ncells = o + 1
		}
	}
	for _, n := range neighbour {
		if n+1 > ncells {
			ncells = n + 1
		}
	}
	npoints := len(points) / 3
	verts := make([]map[int]struct{}, ncells)
	add := func(cell int, face []int) error {
		if cell < 0 {
			return fmt.Errorf("foam: negative cell index %d", cell)
		}
		if verts[cell] == nil {
			verts[cell] = make(map[int]struct{})
		}
		for _, p := range face {
			if p < 0 || p >= npoints {
				return fmt.Errorf("foam: point index %d out of range [0, %d)", p, npoints)
			}
			verts[cell][p] = struct{}{}
		}
		return nil
	}
	for i, f := range faces {
		if err := add(owner[i], f); err != nil {
			return nil, err
		}
		if i < len(neighbour) && neighbour[i] >= 0 {
			if err := add(neighbour[i], f); err != nil {
				return nil, err
			}
		}
	}
	c := make(centres, 3*ncells)
	for i, v := range verts {
		if len(v) == 0 {
			return nil, fmt.Errorf("foam: cell %d has no faces", i)
		}
		for p := range v {
			for d := 0; d < 3; d++ {
				c[3*i+d] += points[3*p+d]
			}
		}
		for d := 0; d < 3; d++ {
			c[3*i+d] /= float64(len(v))
		}
	}
	return c, nil
}

func round(v float64, precision int) float64 {
	p := math.Pow10(precision)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // Avoid distinguishing -0.
	}
	return r
}

// structure orders cell centres into a structured grid. Coordinates
// are compared after rounding to precision decimal places. The returned
// permutation gives, for each grid point, the index of the cell it
// came from.
func structure(c centres, precision int) (*foamplot.Grid, []int, error) {
	n := c.len()
	if n == 0 {
		return nil, nil, fmt.Errorf("foam: mesh has no cells")
	}
	r := make([][3]float64, n)
	uniq := [3]map[float64]struct{}{{}, {}, {}}
	for i := range r {
		for d := 0; d < 3; d++ {
			r[i][d] = round(c[3*i+d], precision)
			uniq[d][r[i][d]] = struct{}{}
		}
	}
	nx, ny, nz := len(uniq[0]), len(uniq[1]), len(uniq[2])
	if nx*ny*nz != n {
		return nil, nil, fmt.Errorf("%w: %d cells but %d x %d x %d unique coordinates",
			ErrNotStructured, n, nx, ny, nz)
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		pa, pb := r[perm[a]], r[perm[b]]
		if pa[2] != pb[2] {
			return pa[2] < pb[2]
		}
		if pa[1] != pb[1] {
			return pa[1] < pb[1]
		}
		return pa[0] < pb[0]
	})
	g := &foamplot.Grid{
		Nx: nx, Ny: ny, Nz: nz,
		X: make([]float64, n),
		Y: make([]float64, n),
		Z: make([]float64, n),
	}
	for i, p := range perm {
		g.X[i], g.Y[i], g.Z[i] = c[3*p], c[3*p+1], c[3*p+2]
	}
	// n distinct triples drawn from nx*ny*nz possibilities cover them all.
	for i := 1; i < n; i++ {
		if r[perm[i]] == r[perm[i-1]] {
			p := r[perm[i]]
			return nil, nil, fmt.Errorf("%w: repeated cell centre (%g, %g, %g)",
				ErrNotStructured, p[0], p[1], p[2])
		}
	}
	return g, perm, nil
}

// reorder returns the interleaved values in cell order arranged into
// grid order, split by component.
func reorder(vals []float64, ncomp int, perm []int) [][]float64 {
	o := make([][]float64, ncomp)
	for c := range o {
		o[c] = make([]float64, len(perm))
		for i, p := range perm {
			o[c][i] = vals[p*ncomp+c]
		}
	}
	return o
}
