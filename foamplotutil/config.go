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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/foamplot"
	"github.com/spatialmodel/foamplot/foam"
	"github.com/spf13/cast"
	"gonum.org/v1/plot/vg"
)

// viewer displays plots. If it is nil the system image viewer is used.
var viewer func(path string) error

// getInt returns the named integer option. Unlike viper's GetInt, it
// fails on values such as "ten" rather than returning zero.
func getInt(cfg *viper.Viper, name string) (int, error) {
	i, err := cast.ToIntE(cfg.Get(name))
	if err != nil {
		return 0, fmt.Errorf("foamplot: invalid value for %s: %v", name, err)
	}
	return i, nil
}

// caseDir returns the case directory with environment variables expanded.
func caseDir(cfg *viper.Viper) (string, error) {
	dir := os.ExpandEnv(cfg.GetString("case"))
	if dir == "" {
		return "", fmt.Errorf("foamplot: the case directory is not specified")
	}
	if fi, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("foamplot: opening case: %v", err)
	} else if !fi.IsDir() {
		return "", fmt.Errorf("foamplot: case %s is not a directory", dir)
	}
	return dir, nil
}

// openCase returns a reader for the configured case.
func openCase(cfg *viper.Viper) (*foam.Case, error) {
	dir, err := caseDir(cfg)
	if err != nil {
		return nil, err
	}
	precision, err := getInt(cfg, "Mesh.Precision")
	if err != nil {
		return nil, err
	}
	c := foam.NewCase(dir, precision)
	c.Log = logrus.StandardLogger()
	return c, nil
}

// timeStep returns the configured time step of the case in dir, or the
// latest one if none is configured.
func timeStep(cfg *viper.Viper, dir string) (foamplot.TimeStep, error) {
	steps, err := foamplot.TimeSteps(dir)
	if err != nil {
		return foamplot.TimeStep{}, err
	}
	if label := cfg.GetString("time"); label != "" {
		return foamplot.FindTimeStep(steps, label)
	}
	return foamplot.Latest(steps)
}

// depth returns the configured depth index on g.
func depth(cfg *viper.Viper, g *foamplot.Grid) (int, error) {
	k, err := getInt(cfg, "slice")
	if err != nil {
		return 0, err
	}
	if k < 0 {
		return g.MidPlane(), nil
	}
	return k, nil
}

// plotConfig returns the plot settings shared by all commands, with
// the number of contour levels taken from the named option.
func plotConfig(cfg *viper.Viper, levels string) (foamplot.PlotConfig, error) {
	pc := foamplot.DefaultPlotConfig()
	pc.Viewer = viewer
	pc.Log = logrus.StandardLogger()
	var err error
	if pc.Levels, err = getInt(cfg, levels); err != nil {
		return pc, err
	}
	if pc.Width, err = vg.ParseLength(cfg.GetString("Plot.Width")); err != nil {
		return pc, fmt.Errorf("foamplot: parsing Plot.Width: %v", err)
	}
	if pc.Height, err = vg.ParseLength(cfg.GetString("Plot.Height")); err != nil {
		return pc, fmt.Errorf("foamplot: parsing Plot.Height: %v", err)
	}
	if !(pc.Width > 0 && pc.Height > 0) {
		return pc, fmt.Errorf("foamplot: plot size %s × %s must be positive",
			cfg.GetString("Plot.Width"), cfg.GetString("Plot.Height"))
	}
	return pc, nil
}

// WriteConfig writes the current configuration to w in TOML format.
// Options with names like "Plot.Levels" are written as tables.
func WriteConfig(cfg *viper.Viper, w io.Writer) error {
	c := make(map[string]interface{})
	for _, option := range options {
		if option.name == "config" {
			continue
		}
		parts := strings.Split(option.name, ".")
		m := c
		for _, p := range parts[:len(parts)-1] {
			sub, ok := m[p].(map[string]interface{})
			if !ok {
				sub = make(map[string]interface{})
				m[p] = sub
			}
			m = sub
		}
		m[parts[len(parts)-1]] = cfg.Get(option.name)
	}
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("foamplot: writing configuration: %v", err)
	}
	return nil
}
