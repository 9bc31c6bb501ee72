// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmd implements the wpm command line tool
package cmd

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string              // config file given by --config
	stopper interface{ Stop() } // stops the profiler
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wpm",
	Short: "Material point simulations with weak plane (ubiquitous joint) models",
	Long: `wpm runs strain-driven material point simulations with the ubiquitous joint model
(linear elastic matrix with one embedded Coulomb weak plane) and related models.

Simulations are given by .sim files (JSON or YAML) pointing to a materials database
(.mat file) and holding local solver settings and a strain path.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		chk.Verbose = viper.GetBool("verbose")
		io.Verbose = chk.Verbose
		switch viper.GetString("profile") {
		case "":
		case "cpu":
			stopper = profile.Start(profile.CPUProfile, profile.ProfilePath(viper.GetString("profdir")), profile.Quiet)
		case "mem":
			stopper = profile.Start(profile.MemProfile, profile.ProfilePath(viper.GetString("profdir")), profile.Quiet)
		default:
			return chk.Err("profile %q is invalid; options are \"cpu\" and \"mem\"", viper.GetString("profile"))
		}
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if stopper != nil {
			stopper.Stop()
			stopper = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wpm.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "show messages")
	rootCmd.PersistentFlags().String("profile", "", "profile the run: \"cpu\" or \"mem\"")
	rootCmd.PersistentFlags().String("profdir", filepath.Join(os.TempDir(), "wpm", "prof"), "directory for profile files")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("profdir", rootCmd.PersistentFlags().Lookup("profdir"))
}

// initConfig reads in config file and WPM_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(expand(cfgFile))
	} else {
		home, err := homedir.Dir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".wpm")
	}
	viper.SetEnvPrefix("wpm")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil && chk.Verbose {
		io.Pf("using config file: %s\n", viper.ConfigFileUsed())
	}
}

// expand expands ~ in paths; the path is returned unchanged on failure
func expand(path string) string {
	res, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return res
}
