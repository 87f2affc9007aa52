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

// Package foamplotutil contains the foamplot command-line interface.
package foamplotutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/foamplot"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})

	// Options are the configuration options available to foamplot.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "case",
			usage: `
              case is the path to the OpenFOAM case directory. It
              can include environment variables.`,
			shorthand:  "c",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages that are
              printed: one of debug, info, warning, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Mesh.Precision",
			usage: `
              Mesh.Precision is the number of decimal places cell centre
              coordinates are rounded to when the mesh is arranged into a
              structured grid.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), vectorsCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "field",
			usage: `
              field is the name of the field to read, e.g. U.`,
			shorthand:  "f",
			defaultVal: "U",
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), vectorsCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "quantity",
			usage: `
              quantity is the scalar computed from the vector field and
              plotted. It can be 'magnitude', 'Ux', 'Uy', 'Uz', or an
              expression in Ux, Uy, and Uz such as 'sqrt(Ux*Ux + Uy*Uy)'.`,
			shorthand:  "q",
			defaultVal: "magnitude",
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "scalar",
			usage: `
              scalar specifies that field is a scalar field, such as p,
              which is plotted directly. quantity is then ignored.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{contourCmd.Flags()},
		},
		{
			name: "time",
			usage: `
              time is the label of the time step directory to plot. If it
              is empty the latest time step is used.`,
			shorthand:  "t",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), vectorsCmd.Flags()},
		},
		{
			name: "slice",
			usage: `
              slice is the depth index of the plotted plane. If it is
              negative the mid-plane is used.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), vectorsCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "Plot.Levels",
			usage: `
              Plot.Levels is the number of contour levels.`,
			defaultVal: 12,
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), vectorsCmd.Flags()},
		},
		{
			name: "Plot.Filled",
			usage: `
              Plot.Filled specifies whether to draw a filled contour plot
              rather than contour lines.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{contourCmd.Flags()},
		},
		{
			name: "Plot.Show",
			usage: `
              Plot.Show specifies whether to open the plot in the system
              image viewer.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{contourCmd.Flags()},
		},
		{
			name: "Plot.Output",
			usage: `
              Plot.Output is the path the plot is saved to. The format is
              chosen from the extension. It can be a blob storage location
              such as gs://bucket/plot.png, and can include environment
              variables. If it is empty the plot is not saved.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), vectorsCmd.Flags()},
		},
		{
			name: "Plot.Width",
			usage: `
              Plot.Width is the width of plots, e.g. 6in or 15cm.`,
			defaultVal: "6in",
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), vectorsCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "Plot.Height",
			usage: `
              Plot.Height is the height of plots, e.g. 4.5in or 11cm.`,
			defaultVal: "4.5in",
			flagsets:   []*pflag.FlagSet{contourCmd.Flags(), vectorsCmd.Flags(), animateCmd.Flags()},
		},
		{
			name: "Animate.Output",
			usage: `
              Animate.Output is the path of the animation, without the .gif
              extension. It can be a blob storage location such as
              s3://bucket/animation, and can include environment variables.`,
			defaultVal: "animation",
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Animate.Levels",
			usage: `
              Animate.Levels is the number of contour levels in each frame.`,
			defaultVal: foamplot.DefaultFrameLevels,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Animate.Delay",
			usage: `
              Animate.Delay is the time each frame is shown, in hundredths
              of a second.`,
			defaultVal: foamplot.DefaultDelay,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Animate.FrameDir",
			usage: `
              Animate.FrameDir is the directory frame images are written
              to before they are assembled. The default is the working
              directory.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Animate.FixedScale",
			usage: `
              Animate.FixedScale specifies whether all frames share one
              color scale, computed from the range of the quantity over
              every frame. Otherwise each frame is scaled to its own range.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Animate.KeepFrames",
			usage: `
              Animate.KeepFrames specifies whether to keep the frame images
              after the animation is made.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
		{
			name: "Animate.Show",
			usage: `
              Animate.Show specifies whether to open each frame in the
              system image viewer as it is rendered. Frames are shown
              from their own files, so no extra files are written.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{animateCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("FOAMPLOT")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(timestepsCmd)
	Root.AddCommand(contourCmd)
	Root.AddCommand(vectorsCmd)
	Root.AddCommand(animateCmd)
	Root.AddCommand(configCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("foamplot: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("foamplot: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "foamplot",
	Short: "Plot and animate OpenFOAM simulation results.",
	Long: `foamplot makes contour plots, velocity vector plots, and animated GIFs
from the results of OpenFOAM simulations on structured meshes.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'FOAMPLOT_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of foamplot.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "foamplot v%s\n", foamplot.Version)
	},
	DisableAutoGenTag: true,
}

var timestepsCmd = &cobra.Command{
	Use:   "timesteps",
	Short: "List the time steps of a case",
	Long: `timesteps prints the labels of the time step directories in the case
directory, in increasing order of time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return PrintTimeSteps(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var contourCmd = &cobra.Command{
	Use:   "contour",
	Short: "Make a contour plot",
	Long: `contour makes a contour plot of a quantity on one plane of the mesh
at one time step. The plot can be shown, saved, or both.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Contour(context.Background(), Cfg)
	},
	DisableAutoGenTag: true,
}

var vectorsCmd = &cobra.Command{
	Use:   "vectors",
	Short: "Make a velocity vector plot",
	Long: `vectors plots the in-plane velocity on one plane of the mesh as arrows
over a filled contour plot of the y velocity component. The plot is always
shown and is also saved if Plot.Output is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Vectors(context.Background(), Cfg)
	},
	DisableAutoGenTag: true,
}

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Make an animated GIF",
	Long: `animate renders a contour plot of a quantity for every time step of the
case after the first and assembles them into an animated GIF. The name of
each frame file is printed as it is removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Animate(context.Background(), Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `config prints the configuration that results from the defaults, the
configuration file, environment variables, and command-line arguments, in
TOML format. The output can be used as a configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return WriteConfig(Cfg, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}
