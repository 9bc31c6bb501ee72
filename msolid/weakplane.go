// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
)

// planeKind selects how the weak plane normal is defined
type planeKind int

const (
	autoPlane   planeKind = iota // local frame unless {nx, ny, nz} are given
	localPlane                   // normal along the local x axis
	normalPlane                  // arbitrary unit normal {nx, ny, nz}
)

// planeVars holds quantities derived from σ on the weak plane
//  Note: recomputed at every evaluation
type planeVars struct {
	tn   float64     // normal traction tn = t・N (tension is positive)
	τ    float64     // magnitude of shear traction |ts|
	m    [3]float64  // slip direction; equal to N if τ is zero
	zero bool        // τ is numerically zero
	S    []float64   // sym(N⊗m) [nsig]
	dS   [][]float64 // dS/dσ [nsig][nsig]
}

// newPlaneVars allocates planeVars
func newPlaneVars(nsig int) planeVars {
	S := make([]float64, nsig)
	dS := make([][]float64, nsig)
	for i := 0; i < nsig; i++ {
		dS[i] = make([]float64, nsig)
	}
	return planeVars{S: S, dS: dS}
}

// reset clears S and dS
func (o *planeVars) reset(derivs bool) {
	for i := range o.S {
		o.S[i] = 0
		if derivs {
			for j := range o.dS[i] {
				o.dS[i][j] = 0
			}
		}
	}
}

// planeGeometry decomposes the traction on the weak plane
type planeGeometry interface {
	normal() [3]float64
	calc(v *planeVars, σ []float64, τzero float64, derivs bool)
}

// localFrame has the weak plane normal fixed along the local x axis
//  ts = {0, σxy, σzx}; σzx only exists if nsig == 6
type localFrame struct {
	nsig int
}

func (o localFrame) normal() [3]float64 { return [3]float64{1, 0, 0} }

func (o localFrame) calc(v *planeVars, σ []float64, τzero float64, derivs bool) {
	v.reset(derivs)
	v.tn = σ[0]
	sxy, szx := σ[3]/mandel.SQ2, 0.0
	if o.nsig > 4 {
		szx = σ[5] / mandel.SQ2
	}
	v.τ = math.Hypot(sxy, szx)
	if v.τ < τzero {
		v.zero = true
		v.m = [3]float64{1, 0, 0}
		v.S[0] = 1
		return
	}
	v.zero = false
	my, mz := sxy/v.τ, szx/v.τ
	v.m = [3]float64{0, my, mz}
	v.S[3] = my / mandel.SQ2
	if o.nsig > 4 {
		v.S[5] = mz / mandel.SQ2
	}
	if derivs {
		a := 1.0 / (2.0 * v.τ)
		v.dS[3][3] = a * (1.0 - my*my)
		if o.nsig > 4 {
			v.dS[3][5] = -a * my * mz
			v.dS[5][3] = -a * my * mz
			v.dS[5][5] = a * (1.0 - mz*mz)
		}
	}
}

// arbitraryNormal has a fixed unit normal N given by the user
type arbitraryNormal struct {
	N [3]float64
}

func (o arbitraryNormal) normal() [3]float64 { return o.N }

func (o arbitraryNormal) calc(v *planeVars, σ []float64, τzero float64, derivs bool) {
	v.reset(derivs)
	N := o.N
	var t, ts [3]float64
	mandel.Traction(&t, σ, N)
	v.tn = t[0]*N[0] + t[1]*N[1] + t[2]*N[2]
	for i := 0; i < 3; i++ {
		ts[i] = t[i] - v.tn*N[i]
	}
	v.τ = math.Sqrt(ts[0]*ts[0] + ts[1]*ts[1] + ts[2]*ts[2])
	if v.τ < τzero {
		v.zero = true
		v.m = N
		mandel.SymDyad(v.S, N, N)
		return
	}
	v.zero = false
	for i := 0; i < 3; i++ {
		v.m[i] = ts[i] / v.τ
	}
	mandel.SymDyad(v.S, N, v.m)
	if !derivs {
		return
	}

	// dm_j/dσ_kl = (R_jk N_l + R_jl N_k)/2 with R = (I - m⊗m - N⊗N)/τ
	var R [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = -(v.m[i]*v.m[j] + N[i]*N[j]) / v.τ
		}
		R[i][i] += 1.0 / v.τ
	}
	mandel.Rank4Sym(v.dS, func(i, j, k, l int) float64 {
		return (N[i]*(R[j][k]*N[l]+R[j][l]*N[k]) + N[j]*(R[i][k]*N[l]+R[i][l]*N[k])) / 4.0
	})
}

// WeakPlane implements the Coulomb criterion of an embedded weak plane
//  F  = |ts| - c + tn・tanφ
//  n  = sym(N⊗m) + tanψ・N⊗N   (flow direction)
//  nF = sym(N⊗m) + tanφ・N⊗N   (yield function gradient)
type WeakPlane struct {
	C      float64   // cohesion
	Phi    float64   // friction angle [deg]
	Psi    float64   // dilatancy angle [deg]
	Visc   float64   // viscosity (Perzyna-type regularisation)
	TanPhi float64   // tan(φ)
	TanPsi float64   // tan(ψ)
	NN     []float64 // N⊗N [nsig]

	geo planeGeometry
}

// Init initialises the weak plane
func (o *WeakPlane) Init(nsig int, kind planeKind, prms dbf.Params) (err error) {
	var N [3]float64
	hasN := false
	for _, p := range prms {
		switch p.N {
		case "c":
			o.C = p.V
		case "phi":
			o.Phi = p.V
		case "psi":
			o.Psi = p.V
		case "visc":
			o.Visc = p.V
		case "nx":
			N[0], hasN = p.V, true
		case "ny":
			N[1], hasN = p.V, true
		case "nz":
			N[2], hasN = p.V, true
		}
	}
	if o.C < 0 || o.Visc < 0 {
		return chk.Err("weak plane: cohesion and viscosity must be non-negative. c=%g visc=%g", o.C, o.Visc)
	}
	if o.Phi < 0 || o.Phi >= 90 || o.Psi < 0 || o.Psi >= 90 {
		return chk.Err("weak plane: angles must be in [0, 90). phi=%g psi=%g", o.Phi, o.Psi)
	}
	o.TanPhi = tanDeg(o.Phi)
	o.TanPsi = tanDeg(o.Psi)
	if kind == autoPlane {
		kind = localPlane
		if hasN {
			kind = normalPlane
		}
	}
	switch kind {
	case localPlane:
		if hasN {
			return chk.Err("weak plane: normal {nx, ny, nz} cannot be given to a local-frame model")
		}
		o.geo = localFrame{nsig}
	case normalPlane:
		if !hasN {
			return chk.Err("weak plane: normal {nx, ny, nz} must be given")
		}
		nrm := math.Sqrt(N[0]*N[0] + N[1]*N[1] + N[2]*N[2])
		if nrm < 1e-12 {
			return chk.Err("weak plane: normal vector must not be zero")
		}
		for i := 0; i < 3; i++ {
			N[i] /= nrm
		}
		o.geo = arbitraryNormal{N}
	}
	o.NN = make([]float64, nsig)
	N = o.geo.normal()
	mandel.SymDyad(o.NN, N, N)
	return
}

// Normal returns the unit normal of the weak plane
func (o *WeakPlane) Normal() [3]float64 {
	return o.geo.normal()
}

// yield computes the yield function value
func (o *WeakPlane) yield(v *planeVars, σ []float64, τzero float64) float64 {
	o.geo.calc(v, σ, τzero, false)
	return v.τ - o.C + v.tn*o.TanPhi
}

// derivs computes the yield function value, the flow direction n, the yield function
// gradient nF and their derivative dn/dσ = dnF/dσ = v.dS
func (o *WeakPlane) derivs(v *planeVars, n, nF, σ []float64, τzero float64) float64 {
	o.geo.calc(v, σ, τzero, true)
	for i := range n {
		n[i] = v.S[i] + o.TanPsi*o.NN[i]
		nF[i] = v.S[i] + o.TanPhi*o.NN[i]
	}
	return v.τ - o.C + v.tn*o.TanPhi
}

// shearPart computes P = sym(N⊗ts) where ts = σ・N - tn・N is the shear traction
//  Note: P is linear in σ and P・N = ts/2
func (o *WeakPlane) shearPart(P, σ []float64) {
	N := o.geo.normal()
	var t [3]float64
	mandel.Traction(&t, σ, N)
	tn := t[0]*N[0] + t[1]*N[1] + t[2]*N[2]
	for i := 0; i < 3; i++ {
		t[i] -= tn * N[i]
	}
	mandel.SymDyad(P, N, t)
}
