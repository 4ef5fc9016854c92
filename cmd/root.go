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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/semtools/types"
	"github.com/notargets/semtools/utils"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "semtools",
	Short: "Field file and session file utilities for spectral element simulations",
	Long: `
Utilities that sit around a spectral element solver:

  compose  select and rename fields from one or two field files
  c2w      move a concentration field into the w slot of a velocity file
  wavy     generate a session file with sinusoidally wavy element rows`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startProfile(viper.GetString("profile"))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfile()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stopProfile()
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints the message, with any details of a typed error logged
// at debug level.
func reportError(w io.Writer, err error) {
	var te *types.Error
	if errors.As(err, &te) && len(te.Details) != 0 {
		log.WithField("kind", te.Kind).Debug(te.DetailString())
	}
	fmt.Fprintf(w, "error: %s\n", err.Error())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.semtools.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log each processing step")
	rootCmd.PersistentFlags().String("profile", "", "write a profile of the run: cpu or mem")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".semtools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".semtools")
	}
	viper.SetEnvPrefix("semtools")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	initLogging(viper.GetBool("verbose"))
	if err == nil {
		log.WithField("config", viper.ConfigFileUsed()).Debug("using config file")
	} else if cfgFile != "" {
		log.WithError(err).Warn("unable to read config file")
	}
}

func initLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func startProfile(kind string) error {
	switch kind {
	case "":
		return nil
	case "cpu":
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	case "mem":
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	default:
		return fmt.Errorf("unknown profile %q, use cpu or mem", kind)
	}
	return nil
}

func stopProfile() {
	if profiler != nil {
		if viper.GetString("profile") == "mem" {
			log.Debug(utils.GetMemUsage())
		}
		profiler.Stop()
		profiler = nil
	}
}
