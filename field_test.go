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
	"reflect"
	"testing"
)

// testGrid returns an nx × ny × nz grid with unit spacing.
func testGrid(nx, ny, nz int) *Grid {
	g := &Grid{Nx: nx, Ny: ny, Nz: nz}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				g.X = append(g.X, float64(i))
				g.Y = append(g.Y, float64(j))
				g.Z = append(g.Z, float64(k))
			}
		}
	}
	return g
}

// testField returns a vector field on g whose components at point p
// are (p, 2p, 3p) scaled by f.
func testField(g *Grid, f float64) *VectorField {
	v := &VectorField{Nx: g.Nx, Ny: g.Ny, Nz: g.Nz}
	for c := range v.Data {
		v.Data[c] = make([]float64, g.Len())
		for p := range v.Data[c] {
			v.Data[c][p] = f * float64(p*(c+1))
		}
	}
	return v
}

func TestGridSlice(t *testing.T) {
	g := testGrid(3, 2, 4)
	if g.MidPlane() != 2 {
		t.Errorf("mid-plane %d", g.MidPlane())
	}
	s, err := g.Slice(1)
	if err != nil {
		t.Fatal(err)
	}
	c, r := s.Dims()
	if c != 3 || r != 2 {
		t.Errorf("dims %d, %d", c, r)
	}
	if s.X(2) != 2 || s.Y(1) != 1 {
		t.Errorf("coordinates X(2)=%g, Y(1)=%g", s.X(2), s.Y(1))
	}
	if _, err := g.Slice(4); err == nil {
		t.Error("expected an error for an out of range depth")
	}
	if _, err := g.Slice(-1); err == nil {
		t.Error("expected an error for a negative depth")
	}
}

func TestMagnitudeSlice(t *testing.T) {
	g := testGrid(2, 2, 3)
	v := testField(g, 1)
	s, err := v.Magnitude(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, q := range s.Q {
		p := float64(4 + i)
		want := math.Sqrt(p*p + 4*p*p + 9*p*p)
		if math.Abs(q-want) > 1e-12 {
			t.Errorf("point %d: have %g, want %g", i, q, want)
		}
	}
	if s.Z(1, 1) != s.Q[3] {
		t.Error("Z does not index the values by column and row")
	}
}

func TestMagnitudeZero(t *testing.T) {
	m, err := Magnitude(0, 0, 0)
	if err != nil || m != 0 {
		t.Errorf("have %g, %v", m, err)
	}
	m, _ = Magnitude(3, 4, 0)
	if m != 5 {
		t.Errorf("have %g, want 5", m)
	}
}

func TestComponents(t *testing.T) {
	g := testGrid(2, 1, 2)
	v := testField(g, 1)
	c, err := v.Components(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{2, 3}, {4, 6}, {6, 9}}
	for i := range c {
		if !reflect.DeepEqual(c[i].Q, want[i]) {
			t.Errorf("component %d: have %v, want %v", i, c[i].Q, want[i])
		}
	}
}

func TestFieldGridMismatch(t *testing.T) {
	v := testField(testGrid(2, 2, 1), 1)
	if _, err := v.Magnitude(testGrid(3, 2, 1), 0); err == nil {
		t.Error("expected an error for mismatched dimensions")
	}
}

func TestScalarSlice(t *testing.T) {
	g := testGrid(2, 2, 2)
	f := &ScalarField{Nx: 2, Ny: 2, Nz: 2, Data: []float64{0, 1, 2, 3, 4, 5, 6, 7}}
	s, err := f.Slice(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Q, []float64{4, 5, 6, 7}) {
		t.Errorf("have %v", s.Q)
	}
	min, max := s.Range()
	if min != 4 || max != 7 {
		t.Errorf("range %g, %g", min, max)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{expr: "", want: 13},
		{expr: "magnitude", want: 13},
		{expr: "Ux", want: 3},
		{expr: "Uy", want: 4},
		{expr: "Uz", want: 12},
		{expr: "sqrt(Ux*Ux + Uy*Uy)", want: 5},
		{expr: "abs(Ux - Uz)", want: 9},
		{expr: "mag(Ux, Uy, Uz) / 13", want: 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%q", test.expr), func(t *testing.T) {
			q, err := ParseQuantity(test.expr)
			if err != nil {
				t.Fatal(err)
			}
			have, err := q(3, 4, 12)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(have-test.want) > 1e-12 {
				t.Errorf("have %g, want %g", have, test.want)
			}
		})
	}
}

func TestParseQuantityErrors(t *testing.T) {
	for _, expr := range []string{"Ux + p", "sqrt(", "Ux > 1", "sqrt(Ux > 0)", "abs(Ux == Uy)", "mag(Ux, Uy, Uz > 1)"} {
		q, err := ParseQuantity(expr)
		if err == nil {
			_, err = q(1, 2, 3)
		}
		if err == nil {
			t.Errorf("%q: expected an error", expr)
		}
	}
	q, err := ParseQuantity("sqrt(Ux, Uy)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := q(1, 2, 3); err == nil {
		t.Error("expected an error for the wrong number of arguments")
	}
}
