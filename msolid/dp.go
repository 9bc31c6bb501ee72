// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
)

// DruckerPrager implements Drucker-Prager plasticity model
//  Note: used as isotropic reference for the weak plane models
type DruckerPrager struct {
	SmallElasticity
	M   float64 // slope of fc line
	Mb  float64 // slope of fc line of plastic potential
	qy0 float64 // initial qy
	H   float64 // hardening variable
}

// add model to factory
func init() {
	allocators["dp"] = func() Model { return new(DruckerPrager) }
}

// Clean clean resources
func (o *DruckerPrager) Clean() {
}

// GetRho returns density
func (o *DruckerPrager) GetRho() float64 {
	return o.Rho
}

// Init initialises model
func (o *DruckerPrager) Init(ndim int, pstress bool, prms dbf.Params) (err error) {

	// parse parameters
	err = o.SmallElasticity.Init(ndim, pstress, prms)
	if err != nil {
		return
	}
	var c, φ float64
	var typ int
	for _, p := range prms {
		switch p.N {
		case "M":
			o.M = p.V
		case "Mb":
			o.Mb = p.V
		case "qy0":
			o.qy0 = p.V
		case "H":
			o.H = p.V
		case "c":
			c = p.V
		case "phi":
			φ = p.V
		case "typ":
			typ = int(p.V)
		case "E", "nu", "l", "G", "K", "rho":
		default:
			return chk.Err("dp: parameter named %q is incorrect\n", p.N)
		}
	}

	// compute M from φ
	//  typ == 0 : compression cone (outer)
	//      == 1 : extension cone (inner)
	//      == 2 : plane-strain
	if φ > 0 {
		o.M, o.qy0, err = Mmatch(c, φ, typ)
		if err != nil {
			return
		}
		o.Mb = o.M
	}
	return
}

// GetPrms gets (an example) of parameters
func (o *DruckerPrager) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "M", V: 1},
		&dbf.P{N: "Mb", V: 1},
		&dbf.P{N: "qy0", V: 0.5},
		&dbf.P{N: "H", V: 0},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o *DruckerPrager) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, 1, false)
	copy(s.Sig, σ)
	o.CalcEps(s.EpsE, σ)
	copy(s.EpsTr, s.EpsE)
	return
}

// Update updates stresses for given strains
func (o *DruckerPrager) Update(s *State, ε, Δε []float64, eid, ipid int, time float64) (err error) {

	// set flags
	s.Loading = false    // => not elastoplastic
	s.ApexReturn = false // => not return-to-apex
	s.Dgam = 0           // Δγ := 0

	// accessors
	σ := s.Sig
	α0 := &s.Alp[0]

	// copy of α0 at beginning of step
	α0ini := *α0
	s.AlpPrev[0] = α0ini

	// trial stress
	var ten [6]float64
	var devΔε_i float64
	trΔε := Δε[0] + Δε[1] + Δε[2]
	for i := 0; i < o.Nsig; i++ {
		devΔε_i = Δε[i] - trΔε*mandel.Im[i]/3.0
		ten[i] = σ[i] + o.K*trΔε*mandel.Im[i] + 2.0*o.G*devΔε_i // ten := σtr
		s.EpsTr[i] = s.EpsE[i] + Δε[i]
	}
	ptr, qtr := mandel.P(ten[:o.Nsig]), mandel.Q(ten[:o.Nsig])

	// trial yield function
	ftr := qtr - o.M*ptr - o.qy0 - o.H*(*α0)

	// elastic update
	if ftr <= 0.0 {
		copy(σ, ten[:o.Nsig]) // σ := ten = σtr
		copy(s.EpsE, s.EpsTr)
		return
	}

	// elastoplastic update
	var str_i float64
	hp := 3.0*o.G + o.K*o.M*o.Mb + o.H
	s.Dgam = ftr / hp
	*α0 += s.Dgam
	pnew := ptr + s.Dgam*o.K*o.Mb
	m := 1.0 - s.Dgam*3.0*o.G/qtr
	for i := 0; i < o.Nsig; i++ {
		str_i = ten[i] + ptr*mandel.Im[i]
		σ[i] = m*str_i - pnew*mandel.Im[i]
	}
	s.Loading = true

	// check for apex singularity
	acone := qtr - s.Dgam*3.0*o.G
	if acone < 0 {
		s.Dgam = (-o.M*ptr - o.qy0 - o.H*α0ini) / (3.0*o.K*o.M + o.H)
		*α0 = α0ini + s.Dgam
		pnew = ptr + s.Dgam*3.0*o.K
		for i := 0; i < o.Nsig; i++ {
			σ[i] = -pnew * mandel.Im[i]
		}
		s.ApexReturn = true
	}
	o.CalcEps(s.EpsE, σ)
	return
}

// CalcD computes D = dσ_new/dε_new consistent with StressUpdate
func (o *DruckerPrager) CalcD(D [][]float64, s *State, firstIt bool) (err error) {

	// elastic
	if !s.Loading {
		return o.SmallElasticity.CalcD(D, s)
	}

	// return to apex
	if s.ApexReturn {
		a1 := o.K * o.H / (3.0*o.K*o.M + o.H)
		for i := 0; i < o.Nsig; i++ {
			for j := 0; j < o.Nsig; j++ {
				D[i][j] = a1 * mandel.Im[i] * mandel.Im[j]
			}
		}
		return
	}

	// elastoplastic => consistent stiffness
	//  Δγ := 0 at the first iteration
	var ten [6]float64
	var buf [6][6]float64
	Psd := sliceMat(&buf, o.Nsig)
	mandel.Psd(Psd)
	σ := s.Sig
	Δγ := s.Dgam
	if firstIt {
		Δγ = 0
	}
	p, q := mandel.P(σ), mandel.Q(σ)
	qtr := q + s.Dgam*3.0*o.G
	m := 1.0 - Δγ*3.0*o.G/qtr
	nstr := mandel.SQ2by3 * qtr // norm(str)
	for i := 0; i < o.Nsig; i++ {
		ten[i] = (σ[i] + p*mandel.Im[i]) / ((1.0 - s.Dgam*3.0*o.G/qtr) * nstr) // ten := unit(str)
	}
	hp := 3.0*o.G + o.K*o.M*o.Mb + o.H
	a1 := o.K - o.K*o.K*o.Mb*o.M/hp
	a2 := -2.0 * o.G * o.K * o.Mb * mandel.SQ3by2 / hp
	b1 := -mandel.SQ6 * o.G * o.M * o.K / hp
	b2 := 6.0 * o.G * o.G * (Δγ/qtr - 1.0/hp)
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = 2.0*o.G*m*Psd[i][j] +
				a1*mandel.Im[i]*mandel.Im[j] +
				a2*mandel.Im[i]*ten[j] +
				b1*ten[i]*mandel.Im[j] +
				b2*ten[i]*ten[j]
		}
	}
	return
}

// ContD computes D = dσ_new/dε_new continuous
func (o *DruckerPrager) ContD(D [][]float64, s *State) (err error) {

	// elastic part
	err = o.SmallElasticity.CalcD(D, s)
	if err != nil {
		return
	}

	// only elastic
	if !s.Loading {
		return
	}

	// elastoplastic
	var ten [6]float64
	σ := s.Sig
	d1 := o.K*o.Mb*o.M + 3.0*o.G + o.H
	a1 := o.K * o.K * o.Mb * o.M / d1
	a2 := mandel.SQ6 * o.K * o.G * o.Mb / d1
	a3 := mandel.SQ6 * o.K * o.G * o.M / d1
	a4 := 6.0 * o.G * o.G / d1
	sno := mandel.Dev(ten[:o.Nsig], σ) // ten := dev(σ)
	if sno < 1e-14 {
		return
	}
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] -= a1*mandel.Im[i]*mandel.Im[j] +
				a2*mandel.Im[i]*ten[j]/sno +
				a3*ten[i]*mandel.Im[j]/sno +
				a4*ten[i]*ten[j]/(sno*sno)
		}
	}
	return
}

// EPmodel ///////////////////////////////////////////////////////////////////////////////////////////

// Info returns some information and data from this model
func (o *DruckerPrager) Info() (nalp, nsurf int) {
	return 1, 1
}

// YieldFuncs computes the yield functions
func (o *DruckerPrager) YieldFuncs(s *State) []float64 {
	p, q := mandel.P(s.Sig), mandel.Q(s.Sig)
	α0 := s.Alp[0]
	return []float64{q - o.M*p - o.qy0 - o.H*α0}
}

// ElastUpdate sets σ corresponding to the elastic strains εe
func (o *DruckerPrager) ElastUpdate(s *State, εe []float64) {
	var devε_i float64
	trε := εe[0] + εe[1] + εe[2]
	for i := 0; i < o.Nsig; i++ {
		devε_i = εe[i] - trε*mandel.Im[i]/3.0
		s.Sig[i] = o.K*trε*mandel.Im[i] + 2.0*o.G*devε_i
	}
}

// ElastD returns continuum elastic D
func (o *DruckerPrager) ElastD(D [][]float64, s *State) {
	o.SmallElasticity.CalcD(D, s)
}

// Tangent computes D = dσ_new/dε_new according to mode
func (o *DruckerPrager) Tangent(D [][]float64, s *State, mode TangentMode) error {
	if mode == Continuum {
		return o.ContD(D, s)
	}
	return o.CalcD(D, s, false)
}
