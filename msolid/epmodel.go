// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// EPmodel implements an elasto-plastic model
type EPmodel interface {
	Model
	Small

	Info() (nalp, nsurf int)            // Info returns the number of internal variables and yield surfaces
	YieldFuncs(s *State) []float64      // YieldFuncs computes the yield functions
	ElastUpdate(s *State, εe []float64) // ElastUpdate sets σ corresponding to the elastic strains εe
	ElastD(D [][]float64, s *State)     // ElastD returns the elastic modulus

	// Tangent computes D = dσ_new/dε_new according to mode
	Tangent(D [][]float64, s *State, mode TangentMode) error
}
