// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	goio "io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mehranqsb/WeaknessPlaneModel/inp"
	"github.com/mehranqsb/WeaknessPlaneModel/msolid"
	"github.com/mehranqsb/WeaknessPlaneModel/out"
)

// runCmd runs a material point simulation
var runCmd = &cobra.Command{
	Use:   "run file.sim",
	Short: "Run a material point simulation",
	Long: `Run reads a .sim file, integrates the material model along the strain path and
saves the results table (key.res) and a summary (key-sum.yaml) to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, drv, err := runSim(args[0], viper.GetString("alias"), viper.GetString("dirout"), !viper.GetBool("nosave"))
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), res, drv)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("alias", "a", "", "alias appended to the simulation key")
	runCmd.Flags().StringP("dirout", "o", "", "output directory; overrides the one in the .sim file")
	runCmd.Flags().Bool("nosave", false, "do not save results")
	viper.BindPFlag("alias", runCmd.Flags().Lookup("alias"))
	viper.BindPFlag("dirout", runCmd.Flags().Lookup("dirout"))
	viper.BindPFlag("nosave", runCmd.Flags().Lookup("nosave"))
}

// loadSim reads a simulation file and allocates its driver
func loadSim(simfn, alias, dirout string, save bool) (sim *inp.Simulation, drv *msolid.Driver, err error) {
	sim, err = inp.ReadSim(expand(simfn), alias, save && dirout == "")
	if err != nil {
		return
	}
	if dirout != "" {
		sim.DirOut = expand(dirout)
	}
	drv, err = sim.NewDriver()
	return
}

// runSim runs the simulation in simfn and saves the results if save is true
func runSim(simfn, alias, dirout string, save bool) (res *out.Results, drv *msolid.Driver, err error) {
	sim, drv, err := loadSim(simfn, alias, dirout, save)
	if err != nil {
		return
	}
	defer sim.MatParams.Clean()
	err = drv.Run(sim.Path)
	if err != nil {
		return
	}
	res, err = out.Start(sim.Key, sim.Mat.Model, drv, sim.Ndim)
	if err != nil || !save {
		return
	}
	err = res.Write(sim.DirOut, drv.NSub)
	return
}

// printSummary prints the main results of a run
func printSummary(w goio.Writer, res *out.Results, drv *msolid.Driver) {
	sum := res.GetSummary(drv.NSub)
	fmt.Fprintf(w, "simulation %q with model %q\n", sum.Key, sum.Model)
	fmt.Fprintf(w, "  steps             = %d\n", sum.Nstep)
	fmt.Fprintf(w, "  elastoplastic     = %d\n", sum.NLoading)
	fmt.Fprintf(w, "  extra sub-steps   = %d\n", sum.NSub)
	fmt.Fprintf(w, "  final p, q        = %g, %g\n", sum.Final["p"], sum.Final["q"])
	fmt.Fprintf(w, "  final λ           = %g\n", sum.Final["lam"])
	if tau, ok := sum.Final["tau"]; ok {
		fmt.Fprintf(w, "  final tn, τ       = %g, %g\n", sum.Final["tn"], tau)
	}
}
