// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// checkCmd compares the tangent operator with numerical derivatives along a path
var checkCmd = &cobra.Command{
	Use:   "check file.sim",
	Short: "Check the tangent operator against central differences",
	Long: `Check runs the simulation in file.sim and, at every increment, compares the tangent
operator returned by the model with dσ/dε computed by central differences.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failures, nsteps, err := checkSim(args[0], viper.GetFloat64("told"), viper.GetFloat64("stepd"))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, f := range failures {
			fmt.Fprint(w, f)
		}
		if len(failures) > 0 {
			return chk.Err("tangent check failed at %d of %d steps", len(failures), nsteps)
		}
		fmt.Fprintf(w, "tangent check passed at %d steps\n", nsteps)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Float64("told", 0, "relative tolerance; zero keeps the one in the .sim file")
	checkCmd.Flags().Float64("stepd", 1e-6, "step size of the numerical derivatives")
	viper.BindPFlag("told", checkCmd.Flags().Lookup("told"))
	viper.BindPFlag("stepd", checkCmd.Flags().Lookup("stepd"))
}

// collector stores the messages of failed checks
type collector struct {
	msgs []string
}

// Errorf stores one failure
func (o *collector) Errorf(format string, args ...interface{}) {
	o.msgs = append(o.msgs, fmt.Sprintf(format, args...))
}

// checkSim runs the simulation in simfn checking the tangent operator at every step that
// was not halved. nsteps is the number of checked steps
func checkSim(simfn string, told, stepd float64) (failures []string, nsteps int, err error) {
	sim, drv, err := loadSim(simfn, "check", "", false)
	if err != nil {
		return
	}
	defer sim.MatParams.Clean()
	if told > 0 {
		drv.TolD = told
	}
	if stepd > 0 {
		drv.StepD = stepd
	}
	var col collector
	drv.TstD = &col
	err = drv.Run(sim.Path)
	if err != nil {
		return
	}
	return col.msgs, len(drv.Res) - 1 - len(drv.SkipD), nil
}
