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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// PlotConfig holds the settings shared by the plotting functions.
type PlotConfig struct {
	// Levels is the number of contour levels.
	Levels int

	// Filled selects a filled contour plot rather than contour lines.
	Filled bool

	// File is where the plot is saved. The format is chosen from the
	// extension. If File is empty the plot is not saved.
	File string

	// Show displays the plot with Viewer.
	Show bool

	// Width and Height are the size of the figure.
	Width, Height vg.Length

	// Min and Max, if Max > Min, override the range the contour levels
	// are computed over.
	Min, Max float64

	// Viewer displays an image file and returns once it is done with
	// it. If nil, the file is opened with the system's default viewer,
	// which may read it after returning, so the file is left in place.
	Viewer func(path string) error

	Log logrus.FieldLogger
}

// DefaultPlotConfig returns a configuration for a filled 12-level
// contour plot.
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Levels: 12,
		Filled: true,
		Width:  6 * vg.Inch,
		Height: 4.5 * vg.Inch,
	}
}

func (c *PlotConfig) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// Figure is a single plot being drawn. Each Figure owns its plot, so
// figures never share state. A Figure must be closed after use.
type Figure struct {
	*plot.Plot
	width, height vg.Length
	viewer        func(string) error
	keepShown     bool
	log           logrus.FieldLogger
}

// NewFigure creates a figure with axis labels "x (m)" and "y (m)".
func NewFigure(cfg *PlotConfig) *Figure {
	p := plot.New()
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	f := &Figure{
		Plot:   p,
		width:  cfg.Width,
		height: cfg.Height,
		viewer: cfg.Viewer,
		log:    cfg.logger(),
	}
	if f.width <= 0 {
		f.width = 6 * vg.Inch
	}
	if f.height <= 0 {
		f.height = 4.5 * vg.Inch
	}
	if f.viewer == nil {
		f.viewer = open.Run
		f.keepShown = true
	}
	return f
}

// Save writes the figure to fname.
func (f *Figure) Save(fname string) error {
	if f.Plot == nil {
		return fmt.Errorf("foamplot: saving closed figure")
	}
	if err := f.Plot.Save(f.width, f.height, fname); err != nil {
		return fmt.Errorf("foamplot: saving figure to %s: %w", fname, err)
	}
	f.log.WithField("file", fname).Debug("saved figure")
	return nil
}

// Show writes the figure to a temporary PNG file and opens it in the
// viewer. The file is removed when the viewer returns, unless the
// system viewer is used.
func (f *Figure) Show() error {
	if f.Plot == nil {
		return fmt.Errorf("foamplot: showing closed figure")
	}
	tmp, err := os.CreateTemp("", "foamplot-*.png")
	if err != nil {
		return fmt.Errorf("foamplot: showing figure: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	if !f.keepShown {
		defer os.Remove(name)
	}
	if err := f.Save(name); err != nil {
		os.Remove(name)
		return err
	}
	if err := f.viewer(name); err != nil {
		return fmt.Errorf("foamplot: showing figure: %w", err)
	}
	return nil
}

// Close releases the figure. It is safe to call more than once.
func (f *Figure) Close() error {
	f.Plot = nil
	return nil
}

// finish saves and shows the figure as requested by cfg, then closes it.
// A saved figure is shown from its file rather than a temporary copy.
func (f *Figure) finish(cfg *PlotConfig, show bool) error {
	defer f.Close()
	if cfg.File != "" {
		if err := f.Save(cfg.File); err != nil {
			return err
		}
	}
	if !show {
		return nil
	}
	if cfg.File != "" {
		if err := f.viewer(cfg.File); err != nil {
			return fmt.Errorf("foamplot: showing figure: %w", err)
		}
		return nil
	}
	return f.Show()
}
