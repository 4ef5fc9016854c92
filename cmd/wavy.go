/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/notargets/semtools/InputParameters"
	"github.com/notargets/semtools/types"
	"github.com/notargets/semtools/wavy"
)

// WavyCmd represents the wavy command
var WavyCmd = &cobra.Command{
	Use:   "wavy <beta_x> <eps_y> <session>",
	Short: "Generate a session file with elements that are sinusoidally wavy in x",
	Long: `
Generates a session file with elements which are sinusoidally wavy in x, with
a wave amplitude that grows linearly with y, using the rectmesh and mapmesh
utilities. The domain spans one wavelength, 2*pi/beta_x, in x and [0,1] in y.

  <beta_x> ... wavenumber that maps the x locations
  <eps_y>  ... maximum wave amplitude
  session  ... name of the session file that will be created

Also written: session.rect, session_wavy and wave1.geo .. waveN.geo, which the
CURVES section refers to. The SURFACES, BCS and GROUPS sections will likely
need hand editing.

semtools wavy 2.0 0.1 channel`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 3 {
			return types.NewUsage("usage: wavy <beta_x> <eps_y> session")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := NewWavyGenerator(cmd.Flags(), args)
		if err != nil {
			return err
		}
		return g.Run()
	},
}

func init() {
	rootCmd.AddCommand(WavyCmd)
	addWavyFlags(WavyCmd.Flags())
	viper.BindPFlag("wavy.rectmesh", WavyCmd.Flags().Lookup("rectmesh"))
	viper.BindPFlag("wavy.mapmesh", WavyCmd.Flags().Lookup("mapmesh"))
	viper.BindPFlag("wavy.points", WavyCmd.Flags().Lookup("points"))
	viper.BindPFlag("wavy.nx", WavyCmd.Flags().Lookup("nx"))
}

func addWavyFlags(flags *pflag.FlagSet) {
	flags.StringP("params", "P", "", "YAML file with NX, YSamples, CurvePoints, RectMesh and MapMesh")
	flags.String("rectmesh", "rectmesh", "rectmesh executable")
	flags.String("mapmesh", "mapmesh", "mapmesh executable")
	flags.IntP("points", "n", wavy.DefaultCurvePoints, "number of points in each wave profile")
	flags.Int("nx", wavy.DefaultNX, "number of x samples across the wavelength")
	flags.StringP("dir", "d", "", "directory for all output files (default current directory)")
}

// NewWavyGenerator combines the positional arguments, the optional
// parameter file and the flags/config. Flags set on the command line win
// over the parameter file, which wins over the config file.
func NewWavyGenerator(flags *pflag.FlagSet, args []string) (g *wavy.Generator, err error) {
	var (
		betaX, epsY float64
		ip          = &InputParameters.WavyParameters{}
	)
	if betaX, err = strconv.ParseFloat(args[0], 64); err != nil {
		return nil, types.NewUsage("beta_x %q is not a number", args[0])
	}
	if epsY, err = strconv.ParseFloat(args[1], 64); err != nil {
		return nil, types.NewUsage("eps_y %q is not a number", args[1])
	}
	if params, _ := flags.GetString("params"); params != "" {
		if ip, err = InputParameters.ReadWavyParameters(params); err != nil {
			return
		}
		log.WithField("params", params).Debug("read wavy parameters")
		if viper.GetBool("verbose") {
			ip.Print()
		}
	}
	nx := viper.GetInt("wavy.nx")
	if ip.NX != 0 {
		nx = ip.NX
	}
	if flags.Changed("nx") {
		nx, _ = flags.GetInt("nx")
	}
	g = wavy.NewGenerator(betaX, epsY, args[2])
	g.X = wavy.XSamples(betaX, nx)
	if len(ip.YSamples) != 0 {
		g.Y = ip.YSamples
	}
	g.CurvePoints = viper.GetInt("wavy.points")
	if ip.CurvePoints != 0 {
		g.CurvePoints = ip.CurvePoints
	}
	if flags.Changed("points") {
		g.CurvePoints, _ = flags.GetInt("points")
	}
	g.RectMesh = viper.GetString("wavy.rectmesh")
	if ip.RectMesh != "" {
		g.RectMesh = ip.RectMesh
	}
	if flags.Changed("rectmesh") {
		g.RectMesh, _ = flags.GetString("rectmesh")
	}
	g.MapMesh = viper.GetString("wavy.mapmesh")
	if ip.MapMesh != "" {
		g.MapMesh = ip.MapMesh
	}
	if flags.Changed("mapmesh") {
		g.MapMesh, _ = flags.GetString("mapmesh")
	}
	g.Dir, _ = flags.GetString("dir")
	err = g.Validate()
	return
}
