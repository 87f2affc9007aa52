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
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
)

// ContourLevels returns n values spaced linearly between the minimum
// and maximum of q, inclusive. If all values of q are equal, so are
// all of the levels.
func ContourLevels(q []float64, n int) ([]float64, error) {
	if len(q) == 0 {
		return nil, fmt.Errorf("foamplot: no data to compute contour levels from")
	}
	if floats.HasNaN(q) {
		return nil, fmt.Errorf("foamplot: data contains NaN")
	}
	return spanLevels(floats.Min(q), floats.Max(q), n)
}

func spanLevels(min, max float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("foamplot: number of contour levels must be at least 1, but is %d", n)
	}
	if math.IsNaN(min) || math.IsNaN(max) {
		return nil, fmt.Errorf("foamplot: data range contains NaN")
	}
	if n == 1 {
		return []float64{min}, nil
	}
	return floats.Span(make([]float64, n), min, max), nil
}

// levels returns the contour levels for s according to cfg.
func (c *PlotConfig) levels(s *Slice) ([]float64, error) {
	if c.Max > c.Min {
		return spanLevels(c.Min, c.Max, c.Levels)
	}
	return ContourLevels(s.Q, c.Levels)
}

// band returns the index of the interval of levels that v falls in,
// clamped to the first and last intervals.
func band(levels []float64, v float64) int {
	k := sort.Search(len(levels), func(i int) bool { return levels[i] > v }) - 1
	if last := len(levels) - 2; k > last {
		k = last
	}
	if k < 0 {
		k = 0
	}
	return k
}

// bands replaces the values of a slice with the index of the contour
// band they fall in, so that a heat map of it is a filled contour plot.
type bands struct {
	*Slice
	levels []float64
}

func (b bands) Z(c, r int) float64 {
	v := b.Slice.Z(c, r)
	if math.IsNaN(v) {
		return v
	}
	return float64(band(b.levels, v))
}

// colors returns a palette of n colors.
func colors(n int) palette.Palette {
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(0)
	cm.SetMax(1)
	if n < 2 {
		return fixedPalette(cm.Palette(2).Colors()[:1])
	}
	return cm.Palette(n)
}

type fixedPalette []color.Color

func (p fixedPalette) Colors() []color.Color { return p }

// degenerate reports whether all levels coincide.
func degenerate(levels []float64) bool {
	return levels[0] == levels[len(levels)-1]
}

// addContour draws a filled or line contour plot of s on the figure.
func (f *Figure) addContour(s *Slice, cfg *PlotConfig) error {
	levels, err := cfg.levels(s)
	if err != nil {
		return err
	}
	if cfg.Filled {
		nb := len(levels) - 1
		if nb < 1 {
			nb = 1
		}
		h := plotter.NewHeatMap(bands{Slice: s, levels: levels}, colors(nb))
		h.Min, h.Max = 0, math.Max(float64(nb-1), 1)
		f.Add(h)
		return nil
	}
	if degenerate(levels) {
		f.log.WithField("level", levels[0]).Warn("all contour levels are equal; no contour lines drawn")
		f.X.Min, f.X.Max = s.X(0), s.X(s.Nx-1)
		f.Y.Min, f.Y.Max = s.Y(0), s.Y(s.Ny-1)
		return nil
	}
	f.Add(plotter.NewContour(s, levels, colors(len(levels))))
	return nil
}

// PlotContour makes a contour plot of s. The plot is filled if
// cfg.Filled is true and otherwise drawn as contour lines, using
// cfg.Levels levels between the minimum and maximum of s. It is saved
// to cfg.File if that is set and shown if cfg.Show is true.
func PlotContour(s *Slice, cfg PlotConfig) error {
	f := NewFigure(&cfg)
	defer f.Close()
	if err := f.addContour(s, &cfg); err != nil {
		return err
	}
	return f.finish(&cfg, cfg.Show)
}

// vectorSlice presents two slices as the x and y components of a
// vector field.
type vectorSlice struct{ u, v *Slice }

func (f vectorSlice) Dims() (c, r int) { return f.u.Dims() }
func (f vectorSlice) X(c int) float64  { return f.u.X(c) }
func (f vectorSlice) Y(r int) float64  { return f.u.Y(r) }
func (f vectorSlice) Vector(c, r int) plotter.XY {
	return plotter.XY{X: f.u.Z(c, r), Y: f.v.Z(c, r)}
}

// PlotVelocityVectors plots depth plane k of vel as arrows over a
// filled contour plot of its y component. The plot is always shown,
// and is saved to cfg.File if that is set.
func PlotVelocityVectors(g *Grid, vel *VectorField, k int, cfg PlotConfig) error {
	c, err := vel.Components(g, k)
	if err != nil {
		return err
	}
	cfg.Filled = true
	f := NewFigure(&cfg)
	defer f.Close()
	if err := f.addContour(c[1], &cfg); err != nil {
		return err
	}
	f.Add(plotter.NewField(vectorSlice{u: c[0], v: c[1]}))
	return f.finish(&cfg, true)
}
