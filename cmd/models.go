// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	goio "io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mehranqsb/WeaknessPlaneModel/msolid"
)

// modelsCmd lists the available models
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available material models and example parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listModels(cmd.OutOrStdout(), viper.GetBool("prms"))
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().BoolP("prms", "p", false, "show example parameters")
	viper.BindPFlag("prms", modelsCmd.Flags().Lookup("prms"))
}

// listModels writes the names of all models and, optionally, their example parameters
func listModels(w goio.Writer, prms bool) error {
	for _, name := range msolid.Names() {
		fmt.Fprintln(w, name)
		if !prms {
			continue
		}
		mdl, err := msolid.New(name)
		if err != nil {
			return err
		}
		for _, p := range mdl.GetPrms() {
			fmt.Fprintf(w, "  %-8s = %g\n", p.N, p.V)
		}
	}
	return nil
}
