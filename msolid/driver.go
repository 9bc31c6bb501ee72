// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Reporter receives the failures of the check of consistent matrices; e.g. *testing.T
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// Driver run simulations with models for solids at a single material point
type Driver struct {

	// input
	Key   string // simulation key
	nsig  int    // number of stress components
	model Model  // solid model
	small Small  // model as a small strain model

	// settings
	Silent bool    // do not show error messages
	MaxSub int     // max number of halvings of a failed increment
	TolD   float64 // tolerance to check consistent matrix (relative to max |D|)
	StepD  float64 // step size for checking D
	VerD   bool    // verbose check of D

	// check D matrix
	TstD  Reporter // if != nil, do check consistent matrix
	SkipD []int    // steps not checked because their increment was halved

	// results
	Res  []*State    // stress/ivs results
	Eps  [][]float64 // total strains
	NSub int         // number of extra steps due to halvings
}

// Init initialises driver
func (o *Driver) Init(simfnk, modelname string, ndim int, pstress bool, prms dbf.Params) (err error) {
	model, err := New(modelname)
	if err != nil {
		return
	}
	err = model.Init(ndim, pstress, prms)
	if err != nil {
		return chk.Err("cannot initialise model %q:\n%v", modelname, err)
	}
	o.Key = simfnk
	return o.InitWithModel(model, ndim)
}

// InitWithModel initialises driver with an already initialised model
func (o *Driver) InitWithModel(model Model, ndim int) (err error) {
	var ok bool
	o.small, ok = model.(Small)
	if !ok {
		return chk.Err("model cannot be used for small strain analyses")
	}
	o.model = model
	o.nsig = 2 * ndim
	o.MaxSub = 10
	o.TolD = 1e-5
	o.StepD = 1e-6
	o.VerD = chk.Verbose
	return
}

// Model returns the solid model
func (o *Driver) Model() Model { return o.model }

// Run runs simulation
func (o *Driver) Run(pth *Path) (err error) {

	// allocate results arrays
	nr := 1 + (pth.Size()-1)*pth.Nincs
	o.Res = make([]*State, nr)
	o.Eps = utl.Alloc(nr, o.nsig)
	o.NSub = 0
	o.SkipD = nil

	// initial state
	o.Res[0], err = o.model.InitIntVars(pth.Sig0())
	if err != nil {
		return
	}
	pth.Eps(o.Eps[0], 0)

	// auxiliary
	var buf [6][6]float64
	D := sliceMat(&buf, o.nsig)
	Δε := make([]float64, o.nsig)

	// update states
	k := 1
	for i := 1; i < pth.Size(); i++ {
		pth.Deps(Δε, i)
		for inc := 0; inc < pth.Nincs; inc++ {

			// update strains
			for j := 0; j < o.nsig; j++ {
				o.Eps[k][j] = o.Eps[k-1][j] + Δε[j]
			}

			// update stresses
			nsub := o.NSub
			o.Res[k] = o.Res[k-1].GetCopy()
			err = o.update(o.Res[k], o.Eps[k-1], Δε, 0)
			if err != nil {
				if !o.Silent {
					io.Pfred("Update failed at point %d (increment %d):\n%v\n", i, inc, err)
				}
				return
			}

			// check consistent matrix
			//  Note: D of a halved increment belongs to the last sub-step only
			switch {
			case o.TstD == nil:
			case o.NSub > nsub:
				o.SkipD = append(o.SkipD, k)
				if o.VerD {
					io.Pfyel("checkD: step %d skipped after %d halvings\n", k, o.NSub-nsub)
				}
			default:
				err = o.small.CalcD(D, o.Res[k], false)
				if err != nil {
					return chk.Err("CalcD failed:\n%v\n", err)
				}
				o.checkD(D, o.Res[k-1], o.Eps[k-1], o.Eps[k], k)
			}
			k++
		}
	}
	return
}

// update updates s for the strain increment Δε. If the update fails, Δε is halved and
// applied twice (recursively up to MaxSub levels)
//  Note: s is not modified on failure
func (o *Driver) update(s *State, ε, Δε []float64, level int) (err error) {
	stmp := s.GetCopy()
	err = o.small.Update(stmp, ε, Δε, 0, 0, 0)
	if err == nil {
		s.Set(stmp)
		return
	}
	if !IsIntegrationFailure(err) || level >= o.MaxSub {
		return
	}
	if !o.Silent {
		io.Pforan("halving increment (level %d): %v\n", level+1, err)
	}
	half := make([]float64, len(Δε))
	εmid := make([]float64, len(Δε))
	for i := range Δε {
		half[i] = Δε[i] / 2.0
		εmid[i] = ε[i] + half[i]
	}
	stmp.Set(s)
	if err = o.update(stmp, ε, half, level+1); err != nil {
		return
	}
	if err = o.update(stmp, εmid, half, level+1); err != nil {
		return
	}
	o.NSub++
	s.Set(stmp)
	return
}

// checkD compares D with the numerical derivative dσ/dε computed with central differences
// from the previous state
func (o *Driver) checkD(D [][]float64, sOld *State, εOld, εNew []float64, k int) {
	var fail error
	stmp := sOld.GetCopy()
	Δε := make([]float64, o.nsig)
	Dnum := mat.NewDense(o.nsig, o.nsig, nil)
	fd.Jacobian(Dnum, func(σ, ε []float64) {
		for i := 0; i < o.nsig; i++ {
			Δε[i] = ε[i] - εOld[i]
		}
		stmp.Set(sOld)
		if err := o.small.Update(stmp, εOld, Δε, 0, 0, 0); err != nil {
			fail = err
		}
		copy(σ, stmp.Sig)
	}, εNew, &fd.JacobianSettings{Formula: fd.Central, Step: o.StepD})
	if fail != nil {
		o.TstD.Errorf("checkD: update failed at step %d:\n%v\n", k, fail)
		return
	}
	maxdiff, maxabs := 0.0, 1.0
	for i := 0; i < o.nsig; i++ {
		for j := 0; j < o.nsig; j++ {
			diff := math.Abs(D[i][j] - Dnum.At(i, j))
			maxdiff = math.Max(maxdiff, diff)
			maxabs = math.Max(maxabs, math.Abs(Dnum.At(i, j)))
			if o.VerD {
				io.Pf("D[%d][%d] @ step %d: %23.15e %23.15e  diff=%g\n", i, j, k, D[i][j], Dnum.At(i, j), diff)
			}
		}
	}
	if maxdiff > o.TolD*maxabs {
		o.TstD.Errorf("checkD: consistent matrix failed at step %d: max diff = %g > %g\n", k, maxdiff, o.TolD*maxabs)
	}
}
