// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// State holds all continuum mechanics data, including for updating the state
type State struct {

	// essential
	Sig []float64 // σ: current Cauchy stress tensor (effective) [nsig]

	// for plasticity (if len(α) > 0)
	EpsE       []float64 // elastic strain
	EpsTr      []float64 // trial elastic strain of the last update
	Alp        []float64 // α: internal variables of rate type [nalp]. α[0] = λ: plastic multiplier
	AlpPrev    []float64 // α at the previous converged step (for output only) [nalp]
	Dgam       float64   // Δγ: increment of Lagrange multiplier (for plasticity only)
	Loading    bool      // unloading flag (for plasticity only)
	ApexReturn bool      // return-to-apex (for plasticity only)
}

// NewState allocates state structure for small strain analyses
//  nle -- non-linear elastic
func NewState(nsig, nalp int, nle bool) *State {

	// essential
	var state State
	state.Sig = make([]float64, nsig)

	// for plasticity
	if nalp > 0 {
		state.EpsTr = make([]float64, nsig)
		state.Alp = make([]float64, nalp)
		state.AlpPrev = make([]float64, nalp)
	}

	// non-linear elasticity
	if nalp > 0 || nle {
		state.EpsE = make([]float64, nsig)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {

	// essential
	copy(o.Sig, other.Sig)

	// for plasticity
	if len(o.Alp) > 0 {
		copy(o.EpsTr, other.EpsTr)
		copy(o.Alp, other.Alp)
		copy(o.AlpPrev, other.AlpPrev)
		o.Dgam = other.Dgam
		o.Loading = other.Loading
		o.ApexReturn = other.ApexReturn
	}

	// non-linear elasticity
	if len(o.EpsE) > 0 {
		copy(o.EpsE, other.EpsE)
	}
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig), len(o.Alp), len(o.EpsE) > 0)
	other.Set(o)
	return other
}

// Lam returns the plastic multiplier λ (zero if there are no internal variables)
func (o *State) Lam() float64 {
	if len(o.Alp) == 0 {
		return 0
	}
	return o.Alp[0]
}
