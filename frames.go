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
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ErrTooFewTimeSteps is returned when there are not enough time steps
// to make at least one frame. The first time step is the initial state
// and is never rendered, so at least two are needed.
var ErrTooFewTimeSteps = errors.New("foamplot: at least two time steps are needed to make an animation")

// DefaultFrameLevels is the number of contour levels in a frame when
// none is configured.
const DefaultFrameLevels = 10

// FrameRenderer renders one contour plot per time step.
type FrameRenderer struct {
	Reader FieldReader
	Grid   *Grid

	// Field is the name of the vector field to read, e.g. "U".
	Field string

	// Quantity is computed from the vector field and plotted.
	// If nil, the magnitude is plotted.
	Quantity Quantity

	// Depth is the depth index of the plotted plane. If it is nil
	// the mid-plane is used.
	Depth *int

	// Dir is the directory frames are written to.
	Dir string

	// FixedScale computes the contour levels once, over all frames,
	// rather than separately for each frame.
	FixedScale bool

	// Plot holds the plot settings. Plot.File is ignored, and if
	// Plot.Levels is zero DefaultFrameLevels is used.
	Plot PlotConfig

	Log logrus.FieldLogger
}

// FrameName returns the file name of the frame with the given index.
func FrameName(index int) string { return strconv.Itoa(index) + ".png" }

func (r *FrameRenderer) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

func (r *FrameRenderer) depth() int {
	if r.Depth == nil {
		return r.Grid.MidPlane()
	}
	return *r.Depth
}

// slice reads the field at t and computes the plotted quantity.
func (r *FrameRenderer) slice(t TimeStep) (*Slice, error) {
	vel, err := r.Reader.Vector(t, r.Field)
	if err != nil {
		return nil, fmt.Errorf("foamplot: reading field %s at time %s: %w", r.Field, t.Label, err)
	}
	q := r.Quantity
	if q == nil {
		q = Magnitude
	}
	return vel.Derive(r.Grid, r.depth(), q)
}

// Render skips the first of steps and renders each of the rest to
// a file named by its position, starting at "0.png". It returns the
// paths of the frames in the order they were rendered. If an error
// occurs, the paths written to so far are also returned, including
// one that may be incomplete or missing.
func (r *FrameRenderer) Render(steps []TimeStep) ([]string, error) {
	if len(steps) < 2 {
		return nil, ErrTooFewTimeSteps
	}
	steps = steps[1:]
	log := r.logger()

	var slices []*Slice
	cfg := r.Plot
	cfg.File = ""
	if cfg.Levels == 0 {
		cfg.Levels = DefaultFrameLevels
	}
	if r.FixedScale {
		cfg.Min, cfg.Max = math.Inf(1), math.Inf(-1)
		for _, t := range steps {
			s, err := r.slice(t)
			if err != nil {
				return nil, err
			}
			min, max := s.Range()
			cfg.Min, cfg.Max = math.Min(cfg.Min, min), math.Max(cfg.Max, max)
			slices = append(slices, s)
		}
		log.WithFields(logrus.Fields{"min": cfg.Min, "max": cfg.Max}).Info("computed color scale for all frames")
	}

	var frames []string
	for i, t := range steps {
		var s *Slice
		if slices != nil {
			s = slices[i]
		} else {
			var err error
			if s, err = r.slice(t); err != nil {
				return frames, err
			}
		}
		fc := cfg
		fc.File = filepath.Join(r.Dir, FrameName(i))
		frames = append(frames, fc.File)
		if err := PlotContour(s, fc); err != nil {
			return frames, err
		}
		log.WithFields(logrus.Fields{
			"time":  t.Label,
			"frame": fc.File,
		}).Info("rendered frame")
	}
	return frames, nil
}
