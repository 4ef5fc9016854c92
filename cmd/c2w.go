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
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/semtools/fieldfile"
)

// C2WCmd represents the c2w command
var C2WCmd = &cobra.Command{
	Use:   "c2w <file.fld>",
	Short: "Convert a uvcp field file to uvwp, keeping only the scalar",
	Long: `
Reads a field file holding u v c p, zeroes u, v and p and writes the
concentration c as the w component of a u v w p file, with time and step
reset to zero. Output goes to standard output unless --output is given.

semtools c2w scalar.fld > initial.fld`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return RunC2W(cmd.OutOrStdout(), args[0], output)
	},
}

func init() {
	rootCmd.AddCommand(C2WCmd)
	C2WCmd.Flags().StringP("output", "o", "", "output field file (default standard output)")
}

func RunC2W(stdout io.Writer, path, output string) (err error) {
	var (
		in, result *fieldfile.Fieldfile
	)
	if in, err = fieldfile.Open(path); err != nil {
		return
	}
	if result, err = fieldfile.ConcentrationToVelocity(in); err != nil {
		return
	}
	if output != "" {
		return result.Write(output)
	}
	if _, err = result.WriteTo(stdout); err != nil {
		return
	}
	log.WithField("file", path).Debug("converted to uvwp on standard output")
	return
}
