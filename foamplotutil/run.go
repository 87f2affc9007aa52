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

package foamplotutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/foamplot"
	"github.com/spatialmodel/foamplot/cloud"
)

// PrintTimeSteps writes the labels of the time steps of the configured
// case to w, one per line, in increasing order.
func PrintTimeSteps(cfg *viper.Viper, w io.Writer) error {
	dir, err := caseDir(cfg)
	if err != nil {
		return err
	}
	steps, err := foamplot.TimeSteps(dir)
	if err != nil {
		return err
	}
	for _, t := range steps {
		fmt.Fprintln(w, t.Label)
	}
	return nil
}

// plotOutput prepares the configured plot output, if there is one.
func plotOutput(cfg *viper.Viper, pc *foamplot.PlotConfig) (*cloud.Output, error) {
	loc := os.ExpandEnv(cfg.GetString("Plot.Output"))
	if loc == "" {
		return nil, nil
	}
	o, err := cloud.NewOutput(loc)
	if err != nil {
		return nil, err
	}
	pc.File = o.Local()
	return o, nil
}

// publish uploads o, if it is not nil, and removes any temporary copy.
func publish(ctx context.Context, o *cloud.Output) error {
	if o == nil {
		return nil
	}
	defer o.Close()
	return o.Publish(ctx)
}

// Contour makes a contour plot as specified by cfg.
func Contour(ctx context.Context, cfg *viper.Viper) error {
	c, err := openCase(cfg)
	if err != nil {
		return err
	}
	t, err := timeStep(cfg, c.Dir)
	if err != nil {
		return err
	}
	g, err := c.Grid()
	if err != nil {
		return err
	}
	k, err := depth(cfg, g)
	if err != nil {
		return err
	}
	field := cfg.GetString("field")

	var s *foamplot.Slice
	if cfg.GetBool("scalar") {
		f, err := c.Scalar(t, field)
		if err != nil {
			return err
		}
		if s, err = f.Slice(g, k); err != nil {
			return err
		}
	} else {
		q, err := foamplot.ParseQuantity(cfg.GetString("quantity"))
		if err != nil {
			return err
		}
		v, err := c.Vector(t, field)
		if err != nil {
			return err
		}
		if s, err = v.Derive(g, k, q); err != nil {
			return err
		}
	}

	pc, err := plotConfig(cfg, "Plot.Levels")
	if err != nil {
		return err
	}
	pc.Filled = cfg.GetBool("Plot.Filled")
	pc.Show = cfg.GetBool("Plot.Show")
	o, err := plotOutput(cfg, &pc)
	if err != nil {
		return err
	}
	if pc.File == "" && !pc.Show {
		logrus.Warn("Plot.Output is empty and Plot.Show is false; the plot will not be saved or shown")
	}
	logrus.WithFields(logrus.Fields{
		"time":  t.Label,
		"field": field,
		"slice": k,
	}).Info("plotting contours")
	if err := foamplot.PlotContour(s, pc); err != nil {
		if o != nil {
			o.Close()
		}
		return err
	}
	return publish(ctx, o)
}

// Vectors makes a velocity vector plot as specified by cfg.
func Vectors(ctx context.Context, cfg *viper.Viper) error {
	c, err := openCase(cfg)
	if err != nil {
		return err
	}
	t, err := timeStep(cfg, c.Dir)
	if err != nil {
		return err
	}
	g, err := c.Grid()
	if err != nil {
		return err
	}
	v, err := c.Vector(t, cfg.GetString("field"))
	if err != nil {
		return err
	}
	pc, err := plotConfig(cfg, "Plot.Levels")
	if err != nil {
		return err
	}
	o, err := plotOutput(cfg, &pc)
	if err != nil {
		return err
	}
	k, err := depth(cfg, g)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"time":  t.Label,
		"slice": k,
	}).Info("plotting velocity vectors")
	if err := foamplot.PlotVelocityVectors(g, v, k, pc); err != nil {
		if o != nil {
			o.Close()
		}
		return err
	}
	return publish(ctx, o)
}

// Animate makes an animated GIF as specified by cfg. The names of the
// frame files are written to out as they are removed.
func Animate(ctx context.Context, cfg *viper.Viper, out io.Writer) error {
	c, err := openCase(cfg)
	if err != nil {
		return err
	}
	q, err := foamplot.ParseQuantity(cfg.GetString("quantity"))
	if err != nil {
		return err
	}
	pc, err := plotConfig(cfg, "Animate.Levels")
	if err != nil {
		return err
	}
	pc.Show = cfg.GetBool("Animate.Show")
	var plane *int
	if k, err := getInt(cfg, "slice"); err != nil {
		return err
	} else if k >= 0 {
		plane = &k
	}
	delay, err := getInt(cfg, "Animate.Delay")
	if err != nil {
		return err
	}

	name := os.ExpandEnv(cfg.GetString("Animate.Output"))
	if name == "" {
		return fmt.Errorf("foamplot: Animate.Output is not specified")
	}
	o, err := cloud.NewOutput(strings.TrimSuffix(name, ".gif") + ".gif")
	if err != nil {
		return err
	}
	defer o.Close()

	a := &foamplot.Animator{
		Case: c.Dir,
		FrameRenderer: foamplot.FrameRenderer{
			Reader:     c,
			Field:      cfg.GetString("field"),
			Quantity:   q,
			Depth:      plane,
			Dir:        os.ExpandEnv(cfg.GetString("Animate.FrameDir")),
			FixedScale: cfg.GetBool("Animate.FixedScale"),
			Plot:       pc,
			Log:        logrus.StandardLogger(),
		},
		Delay:      delay,
		KeepFrames: cfg.GetBool("Animate.KeepFrames"),
		Out:        out,
	}
	if _, err := a.Animate(strings.TrimSuffix(o.Local(), ".gif")); err != nil {
		return err
	}
	return o.Publish(ctx)
}
