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
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultDelay is the default time each animation frame is shown,
// in hundredths of a second.
const DefaultDelay = 10

// Animator makes an animated GIF showing how a quantity evolves over
// the time steps of a simulation.
type Animator struct {
	// Case is the simulation directory that is searched for time steps.
	Case string

	// FrameRenderer renders the frames. If its Grid is nil, the grid
	// is read with its Reader.
	FrameRenderer

	// Delay is the time each frame is shown, in hundredths of a second.
	Delay int

	// KeepFrames leaves the frame files in place after the animation
	// is made, or after a failure.
	KeepFrames bool

	// Out receives the name of each frame file as it is deleted.
	Out io.Writer
}

// Animate renders a frame for every time step in a.Case after the
// first and assembles them into the file name + ".gif", whose path is
// returned. Unless a.KeepFrames is set, no frame files remain after
// Animate returns, whether or not it succeeded.
func (a *Animator) Animate(name string) (string, error) {
	start := time.Now()
	log := a.logger()

	steps, err := TimeSteps(a.Case)
	if err != nil {
		return "", err
	}
	log.WithField("count", len(steps)).Info("found time steps")
	if len(steps) < 2 {
		return "", ErrTooFewTimeSteps
	}
	if a.Grid == nil {
		if a.Grid, err = a.Reader.Grid(); err != nil {
			return "", fmt.Errorf("foamplot: reading grid: %w", err)
		}
	}
	if a.Dir != "" {
		if err := os.MkdirAll(a.Dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("foamplot: creating frame directory: %w", err)
		}
	}

	frames, err := a.Render(steps)
	if err != nil {
		a.cleanup(frames)
		return "", err
	}

	delay := a.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	path := name + ".gif"
	w, err := NewGIFWriter(path, delay)
	if err != nil {
		a.cleanup(frames)
		return "", err
	}
	if a.KeepFrames {
		err = WriteFrames(w, frames)
	} else {
		err = Assemble(w, frames, a.Out)
	}
	if err != nil {
		a.cleanup(frames)
		return "", err
	}
	log.WithFields(logrus.Fields{
		"file":     path,
		"frames":   len(frames),
		"duration": time.Since(start),
	}).Info("animation complete")
	return path, nil
}

// cleanup removes frames after a failure.
func (a *Animator) cleanup(frames []string) {
	if a.KeepFrames || len(frames) == 0 {
		return
	}
	if err := RemoveFrames(frames, nil); err != nil {
		a.logger().WithError(err).Warn("failed to remove frames")
	}
}
