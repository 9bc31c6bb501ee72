// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
)

// SmallElasticity implements linear elasticity for small strain analyses
type SmallElasticity struct {
	E   float64 // Young's modulus
	Nu  float64 // Poisson's coefficient
	K   float64 // bulk modulus
	G   float64 // shear modulus
	L   float64 // Lamé's λ
	Rho float64 // density

	// flags and constants
	Nsig int  // number of stress components
	Pse  bool // plane-stress
}

// Init initialises this structure
func (o *SmallElasticity) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	o.Nsig = mandel.Nsig(ndim)
	if err = mandel.CheckNsig(o.Nsig); err != nil {
		return
	}
	o.Pse = pstress
	if o.Pse && ndim != 2 {
		return chk.Err("plane-stress analysis requires ndim=2; ndim=%d is invalid", ndim)
	}
	var hasE, hasNu, hasK, hasG, hasL bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		case "l":
			o.L, hasL = p.V, true
		case "rho":
			o.Rho = p.V
		}
	}
	switch {
	case hasE && hasNu:
		o.K = Calc_K_from_Enu(o.E, o.Nu)
		o.G = Calc_G_from_Enu(o.E, o.Nu)
		o.L = Calc_l_from_Enu(o.E, o.Nu)
	case hasK && hasG:
		o.E = Calc_E_from_KG(o.K, o.G)
		o.Nu = Calc_nu_from_KG(o.K, o.G)
		o.L = o.K - 2.0*o.G/3.0
	case hasL && hasG:
		o.K = o.L + 2.0*o.G/3.0
		o.E = Calc_E_from_KG(o.K, o.G)
		o.Nu = Calc_nu_from_KG(o.K, o.G)
	default:
		return chk.Err("elasticity: a pair of {E, nu}, {K, G} or {l, G} must be given")
	}
	if o.E <= 0 || o.G <= 0 {
		return chk.Err("elasticity: E and G must be positive. E=%g G=%g", o.E, o.G)
	}
	return
}

// CalcD computes the elastic modulus De = dσ/dεe
func (o SmallElasticity) CalcD(D [][]float64, s *State) (err error) {
	if o.Pse {
		c := o.E / (1.0 - o.Nu*o.Nu)
		for i := 0; i < o.Nsig; i++ {
			for j := 0; j < o.Nsig; j++ {
				D[i][j] = 0
			}
		}
		D[0][0], D[0][1] = c, c*o.Nu
		D[1][0], D[1][1] = c*o.Nu, c
		D[3][3] = c * (1.0 - o.Nu)
		return
	}
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = o.L * mandel.Im[i] * mandel.Im[j]
		}
		D[i][i] += 2.0 * o.G
	}
	return
}

// CalcEps computes the elastic strains corresponding to σ (compliance)
//  Note: in plane-stress, εzz is computed from σxx and σyy
func (o SmallElasticity) CalcEps(ε, σ []float64) {
	tr := mandel.Tr(σ)
	a := o.L / (2.0 * o.G * (3.0*o.L + 2.0*o.G))
	for i := 0; i < o.Nsig; i++ {
		ε[i] = σ[i]/(2.0*o.G) - a*tr*mandel.Im[i]
	}
}

// LinElast implements a linear elastic model
type LinElast struct {
	SmallElasticity
}

// add model to factory
func init() {
	allocators["elast"] = func() Model { return new(LinElast) }
}

// Clean clean resources
func (o *LinElast) Clean() {
}

// GetRho returns density
func (o *LinElast) GetRho() float64 {
	return o.Rho
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.3},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o LinElast) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, 0, true)
	copy(s.Sig, σ)
	o.CalcEps(s.EpsE, σ)
	return
}

// Update updates stresses for given strains
func (o *LinElast) Update(s *State, ε, Δε []float64, eid, ipid int, time float64) (err error) {
	var buf [6][6]float64
	D := sliceMat(&buf, o.Nsig)
	o.SmallElasticity.CalcD(D, s)
	for i := 0; i < o.Nsig; i++ {
		s.EpsE[i] += Δε[i]
		for j := 0; j < o.Nsig; j++ {
			s.Sig[i] += D[i][j] * Δε[j]
		}
	}
	return
}

// CalcD computes D = dσ_new/dε_new consistent with Update
func (o *LinElast) CalcD(D [][]float64, s *State, firstIt bool) error {
	return o.SmallElasticity.CalcD(D, s)
}

// ContD computes D = dσ_new/dε_new continuous
func (o *LinElast) ContD(D [][]float64, s *State) error {
	return o.SmallElasticity.CalcD(D, s)
}

// sliceMat returns an [n][n] view of a fixed-size array (no heap allocation of data)
func sliceMat(buf *[6][6]float64, n int) [][]float64 {
	M := make([][]float64, n)
	for i := 0; i < n; i++ {
		M[i] = buf[i][:n]
	}
	return M
}
