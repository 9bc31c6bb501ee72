// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements models for solids based on continuum mechanics
/*
 *            |    Rate
 *  ============================================
 *            |
 *            | dσdt = f(σ,dεdt)
 *    Small   | σ_(n+1) = σ_(n) + Δt * f_(n+1)
 *            | Update
 *            | D = dσ/dε_(n+1)
 *            | CalcD (consistent) or ContD (continuum)
 *            |
 */
package msolid

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, pstress bool, prms dbf.Params) error // initialises model
	InitIntVars(σ []float64) (*State, error)           // initialises AND allocates internal (secondary) variables
	GetPrms() dbf.Params                               // gets (an example) of parameters
	GetRho() float64                                   // returns density
	Clean()                                            // clean resources
}

// Small defines rate type solid models for small strain analyses
type Small interface {
	Update(s *State, ε, Δε []float64, eid, ipid int, time float64) error // updates stresses for given strains
	CalcD(D [][]float64, s *State, firstIt bool) error                   // computes D = dσ_new/dε_new consistent with Update
	ContD(D [][]float64, s *State) error                                 // computes D = dσ_new/dε_new continuous
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	return allocator(), nil
}

// Names returns the sorted names of all available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all available solid models; modelname => allocator
//  Note: written by init functions only
var allocators = map[string]func() Model{}
