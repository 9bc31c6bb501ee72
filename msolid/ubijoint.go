// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"sync"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"

	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
)

// UbiJoint implements the ubiquitous joint model: linear elastic matrix with one embedded
// weak plane following a non-associated Coulomb criterion
//  Variants:
//   local-frame     -- normal along the local x axis
//   arbitrary-normal -- normal given by {nx, ny, nz}
//   iterative       -- local Newton-Raphson on {εe, Δλ}
//   non-iterative   -- one closed-form correction from the trial state
type UbiJoint struct {
	SmallElasticity
	WP      WeakPlane // weak plane
	Set     Settings  // local solver settings
	NonIter bool      // non-iterative (closed-form) return

	// derived
	De  [][]float64 // elastic modulus [nsig][nsig]
	D00 float64     // De[0][0]: scaling of yield function and tolerances

	// internal
	name string     // model name
	kind planeKind  // how the normal is defined
	pool *sync.Pool // workspaces
}

// add model to factory
func init() {
	allocators["ubj"] = func() Model { return &UbiJoint{name: "ubj", kind: autoPlane} }
	allocators["ubj-local"] = func() Model { return &UbiJoint{name: "ubj-local", kind: localPlane} }
	allocators["ubj-local-ni"] = func() Model { return &UbiJoint{name: "ubj-local-ni", kind: localPlane, NonIter: true} }
	allocators["ubj-normal"] = func() Model { return &UbiJoint{name: "ubj-normal", kind: normalPlane} }
	allocators["ubj-normal-ni"] = func() Model { return &UbiJoint{name: "ubj-normal-ni", kind: normalPlane, NonIter: true} }
}

// Clean clean resources
func (o *UbiJoint) Clean() {
}

// GetRho returns density
func (o *UbiJoint) GetRho() float64 {
	return o.Rho
}

// Init initialises model
func (o *UbiJoint) Init(ndim int, pstress bool, prms dbf.Params) (err error) {

	// elasticity
	err = o.SmallElasticity.Init(ndim, pstress, prms)
	if err != nil {
		return
	}

	// local solver settings
	o.Set.SetDefault()
	o.Set.ReadPrms(prms)
	if err = o.Set.Check(); err != nil {
		return
	}

	// weak plane
	if o.name == "" {
		o.name = "ubj"
	}
	if o.kind == autoPlane {
		if p := prms.Find("noniter"); p != nil {
			o.NonIter = p.V > 0
		}
	}
	err = o.WP.Init(o.Nsig, o.kind, prms)
	if err != nil {
		return
	}

	// elastic modulus
	o.De = utl.Alloc(o.Nsig, o.Nsig)
	o.SmallElasticity.CalcD(o.De, nil)
	o.D00 = o.De[0][0]

	// workspaces
	nsig := o.Nsig
	o.pool = &sync.Pool{New: func() interface{} { return newWorkspace(nsig) }}
	return
}

// GetPrms gets (an example) of parameters
func (o *UbiJoint) GetPrms() dbf.Params {
	prms := []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "c", V: 1},
		&dbf.P{N: "phi", V: 30},
		&dbf.P{N: "psi", V: 0},
		&dbf.P{N: "visc", V: 0},
	}
	if o.kind == normalPlane {
		prms = append(prms, &dbf.P{N: "nx", V: 1}, &dbf.P{N: "ny", V: 0}, &dbf.P{N: "nz", V: 0})
	}
	return prms
}

// InitIntVars initialises internal (secondary) variables
func (o *UbiJoint) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, 1, false)
	copy(s.Sig, σ)
	o.CalcEps(s.EpsE, σ)
	copy(s.EpsTr, s.EpsE)
	return
}

// Name returns the model name
func (o *UbiJoint) Name() string {
	return o.name
}

// Update updates stresses for given strains
//  Note: s is only modified if the update succeeds
func (o *UbiJoint) Update(s *State, ε, Δε []float64, eid, ipid int, time float64) (err error) {
	return o.integrate(s, Δε, &o.Set, eid, ipid)
}

// Integrate updates s for the strain increment Δε using the given local solver settings
//  Note: s is only modified if the update succeeds; on failure, the caller must retry
//        with a smaller Δε
func (o *UbiJoint) Integrate(s *State, Δε []float64, set *Settings) (err error) {
	return o.integrate(s, Δε, set, -1, -1)
}

// integrate runs the phases: predict => correct (solve + check activation) => finalize
func (o *UbiJoint) integrate(s *State, Δε []float64, set *Settings, eid, ipid int) (err error) {

	// workspace
	w := o.pool.Get().(*workspace)
	defer o.pool.Put(w)

	// elastic predictor and loading flag
	o.predict(w, s, Δε, set)

	// corrector
	if o.NonIter {
		err = o.closedForm(w, set)
	} else {
		err = o.correct(w, set)
	}
	if err != nil {
		return &IntegrationError{Model: o.name, Eid: eid, Ipid: ipid, It: w.it, Res: w.res, Err: err}
	}

	// commit
	o.finalize(s, w)
	return
}

// predict computes the trial state and sets the loading flag
func (o *UbiJoint) predict(w *workspace, s *State, Δε []float64, set *Settings) {
	for i := 0; i < o.Nsig; i++ {
		w.εetr[i] = s.EpsE[i] + Δε[i]
		w.σtr[i] = s.Sig[i]
		for j := 0; j < o.Nsig; j++ {
			w.σtr[i] += o.De[i][j] * Δε[j]
		}
	}
	w.ftr = o.WP.yield(&w.pv, w.σtr, set.Szero*o.D00)
	w.τtr, w.mtr = w.pv.τ, w.pv.m
	w.active = w.ftr > set.Fzero*o.D00
	w.apex = false
	w.Δλ, w.it, w.res = 0, 0, 0
}

// correct solves the local problem and checks the loading flag after convergence
//  Δλ < 0 while active => deactivate and re-solve elastically
//  F > 0 while elastic => activate and re-solve plastically
//  trial beyond the apex or slip reversal => return to the apex
func (o *UbiJoint) correct(w *workspace, set *Settings) (err error) {
	fzero := set.Fzero * o.D00
	flips := 0
	for {
		if w.active {
			if _, h, apex := o.trialReturn(w, set); apex && h > 0 {
				o.apexReturn(w)
				return
			}
			err = o.newton(w, set)
			if err == errApex {
				o.apexReturn(w)
				return nil
			}
			if err != nil {
				return
			}
			if w.Δλ >= 0 {
				return
			}
			w.active = false
		} else {
			copy(w.εe, w.εetr)
			copy(w.σ, w.σtr)
			w.Δλ = 0
			f := o.WP.yield(&w.pv, w.σ, set.Szero*o.D00)
			if f <= fzero {
				return
			}
			w.active = true
		}
		flips++
		if flips > set.MaxFlips {
			return ErrActivation
		}
	}
}

// finalize commits the converged values into the state
func (o *UbiJoint) finalize(s *State, w *workspace) {
	copy(s.EpsTr, w.εetr)
	copy(s.EpsE, w.εe)
	copy(s.Sig, w.σ)
	s.AlpPrev[0] = s.Alp[0]
	s.Alp[0] += w.Δλ
	s.Dgam = w.Δλ
	s.Loading = w.active
	s.ApexReturn = w.apex
}

// EPmodel ///////////////////////////////////////////////////////////////////////////////////////////

// Info returns some information and data from this model
func (o *UbiJoint) Info() (nalp, nsurf int) {
	return 1, 1
}

// YieldFuncs computes the yield functions
func (o *UbiJoint) YieldFuncs(s *State) []float64 {
	v := newPlaneVars(o.Nsig)
	return []float64{o.WP.yield(&v, s.Sig, o.Set.Szero*o.D00)}
}

// ElastUpdate sets σ corresponding to the elastic strains εe
func (o *UbiJoint) ElastUpdate(s *State, εe []float64) {
	mandel.MatVecMul(s.Sig, 1, o.De, εe)
}

// ElastD returns the elastic modulus
func (o *UbiJoint) ElastD(D [][]float64, s *State) {
	for i := 0; i < o.Nsig; i++ {
		copy(D[i], o.De[i])
	}
}

// PlaneVars returns the traction decomposition on the weak plane for given stress
//  tn -- normal traction (tension is positive)
//  τ  -- magnitude of shear traction
//  m  -- slip direction (the normal itself if τ is numerically zero)
func (o *UbiJoint) PlaneVars(σ []float64) (tn, τ float64, m [3]float64) {
	v := newPlaneVars(o.Nsig)
	o.WP.geo.calc(&v, σ, o.Set.Szero*o.D00, false)
	return v.tn, v.τ, v.m
}

// FlowDirs computes the flow direction n, the yield function gradient nF and dn/dσ
// for given stress. It returns the yield function value
func (o *UbiJoint) FlowDirs(n, nF []float64, dndσ [][]float64, σ []float64) (f float64) {
	v := newPlaneVars(o.Nsig)
	f = o.WP.derivs(&v, n, nF, σ, o.Set.Szero*o.D00)
	if dndσ != nil {
		for i := 0; i < o.Nsig; i++ {
			copy(dndσ[i], v.dS[i])
		}
	}
	return
}
