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
	"bufio"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/semtools/fieldfile"
	"github.com/notargets/semtools/types"
)

// ComposeCmd represents the compose command
var ComposeCmd = &cobra.Command{
	Use:   "compose <file.fld> [anotherfile.fld]",
	Short: "Select, rename and combine fields from one or two field files",
	Long: `
Interactive field file composition. Given one field file, choose (and perhaps
rename) fields to keep. Given two, the files must conform (nr, ns, nz, nel)
and fields may be drawn from either. The result is written as a binary field
file.

Fields are requested as whitespace separated names: "u v p", "uvp", or with
renames such as "c=w" or "uv=ab".

semtools compose file.fld
semtools compose file1.fld file2.fld --fields "u v c=w" --output out.fld`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || len(args) > 2 {
			return types.NewUsage("usage: compose file.fld [anotherfile.fld]")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		co := &ComposeOptions{}
		co.Fields, _ = cmd.Flags().GetString("fields")
		co.Output, _ = cmd.Flags().GetString("output")
		return RunCompose(cmd.InOrStdin(), cmd.OutOrStdout(), args, co)
	},
}

func init() {
	rootCmd.AddCommand(ComposeCmd)
	ComposeCmd.Flags().StringP("fields", "f", "", "fields to keep, skips the field prompt")
	ComposeCmd.Flags().StringP("output", "o", "", "output field file, skips the file name prompt")
}

type ComposeOptions struct {
	Fields string // Answer to the field prompt, asked for when empty
	Output string // Answer to the file name prompt, asked for when empty
}

// RunCompose reads the field files, checks conformance, gets the selection
// and output name (from in when not supplied) and writes the result.
func RunCompose(in io.Reader, out io.Writer, paths []string, co *ComposeOptions) (err error) {
	var (
		files  = make([]*fieldfile.Fieldfile, len(paths))
		reader = bufio.NewReader(in)
		sel    []fieldfile.Selection
		result *fieldfile.Fieldfile
	)
	for i, path := range paths {
		if files[i], err = fieldfile.Open(path); err != nil {
			return
		}
		log.WithField("file", path).Debug(files[i].Header.String())
	}
	if len(files) == 2 {
		if err = fieldfile.CheckConformance(files[0], files[1]); err != nil {
			return
		}
	}
	available := fieldfile.Union(files...)
	answer := co.Fields
	if answer == "" {
		fmt.Fprintln(out, "Input file contains these fields: indicate the ones you want:")
		fmt.Fprintln(out, available)
		if answer, err = readAnswer(reader); err != nil {
			return
		}
	}
	if sel, err = fieldfile.NewSelection(fieldfile.ParseSelection(answer), available); err != nil {
		return
	}
	if result, err = fieldfile.Compose(sel, files...); err != nil {
		return
	}
	outName := co.Output
	if outName == "" {
		fmt.Fprint(out, "type in an output file name: ")
		if outName, err = readAnswer(reader); err != nil {
			return
		}
		if outName = strings.TrimSpace(outName); outName == "" {
			return types.NewUsage("no output file name given")
		}
	}
	if err = result.Write(outName); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"file":   outName,
		"fields": result.Header.Fields,
		"ntot":   result.Header.NTot(),
	}).Info("field file written")
	return
}

func readAnswer(reader *bufio.Reader) (answer string, err error) {
	answer, err = reader.ReadString('\n')
	if err == io.EOF && len(answer) > 0 {
		err = nil
	}
	if err == io.EOF {
		return "", types.NewUsage("no answer given before end of input")
	}
	return strings.TrimRight(answer, "\r\n"), err
}
