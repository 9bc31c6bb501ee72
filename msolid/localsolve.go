// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
)

// workspace holds the scratch data of one integration
//  Note: one workspace per goroutine; see UbiJoint.pool
type workspace struct {

	// trial and current values
	εetr []float64  // trial elastic strain
	σtr  []float64  // trial stress
	εe   []float64  // elastic strain
	σ    []float64  // stress
	ftr  float64    // yield function at trial stress
	τtr  float64    // shear traction at trial stress
	mtr  [3]float64 // slip direction at trial stress
	Δλ   float64    // increment of plastic multiplier

	// flags and stats
	active bool    // plastic corrector is active
	apex   bool    // returned to the apex
	it     int     // number of iterations
	res    float64 // residual norm

	// derivatives
	pv  planeVars // weak plane variables
	n   []float64 // flow direction
	nF  []float64 // yield function gradient
	Dn  []float64 // De・n
	DnF []float64 // De・nF
	sp  []float64 // shear part sym(N⊗ts)

	// local Newton-Raphson
	r  *mat.VecDense // residual {r_e, r_λ} [nsig+1]
	dx *mat.VecDense // correction [nsig+1]
	J  *mat.Dense    // Jacobian [nsig+1][nsig+1]
	B  *mat.Dense    // right-hand side for the consistent tangent [nsig+1][nsig]
	X  *mat.Dense    // solution for the consistent tangent [nsig+1][nsig]
	lu mat.LU        // factorisation of J
}

// newWorkspace allocates a new workspace
func newWorkspace(nsig int) *workspace {
	nx := nsig + 1
	B := mat.NewDense(nx, nsig, nil)
	for i := 0; i < nsig; i++ {
		B.Set(i, i, 1)
	}
	return &workspace{
		εetr: make([]float64, nsig),
		σtr:  make([]float64, nsig),
		εe:   make([]float64, nsig),
		σ:    make([]float64, nsig),
		pv:   newPlaneVars(nsig),
		n:    make([]float64, nsig),
		nF:   make([]float64, nsig),
		Dn:   make([]float64, nsig),
		DnF:  make([]float64, nsig),
		sp:   make([]float64, nsig),
		r:    mat.NewVecDense(nx, nil),
		dx:   mat.NewVecDense(nx, nil),
		J:    mat.NewDense(nx, nx, nil),
		B:    B,
		X:    mat.NewDense(nx, nsig, nil),
	}
}

// newton solves the local problem with unknowns x = {εe, Δλ}
//  r_e = εe - εe_tr + Δλ・n(σ)
//  r_λ = F(σ)/D00 - visc・Δλ
//  with σ = De・εe
func (o *UbiJoint) newton(w *workspace, set *Settings) (err error) {

	// initial values
	copy(w.εe, w.εetr)
	w.Δλ = 0

	// iterations
	nsig := o.Nsig
	τzero := set.Szero * o.D00
	for w.it = 0; w.it < set.MaxIt; w.it++ {

		// stress and derivatives
		mandel.MatVecMul(w.σ, 1, o.De, w.εe)
		f := o.WP.derivs(&w.pv, w.n, w.nF, w.σ, τzero)
		if w.it > 0 && (w.pv.zero || dot3(w.pv.m, w.mtr) < 0) {
			return errApex
		}

		// residual
		rλ := f/o.D00 - o.WP.Visc*w.Δλ
		for i := 0; i < nsig; i++ {
			w.r.SetVec(i, w.εe[i]-w.εetr[i]+w.Δλ*w.n[i])
		}
		w.r.SetVec(nsig, rλ)
		w.res = floats.Norm(w.r.RawVector().Data[:nsig], 2)
		if w.res < set.Tol && math.Abs(rλ) < set.Tol {
			return
		}

		// Jacobian
		o.jacobian(w)

		// solve J・dx = -r
		w.lu.Factorize(w.J)
		err = w.lu.SolveVecTo(w.dx, false, w.r)
		if err != nil {
			return ErrSingular
		}

		// update
		for i := 0; i < nsig; i++ {
			w.εe[i] -= w.dx.AtVec(i)
		}
		w.Δλ -= w.dx.AtVec(nsig)
	}
	return ErrNotConverged
}

// jacobian computes J = dr/dx at the current {εe, Δλ}
//  Note: w.pv, w.n and w.nF must have been computed already
//
//        ┌                          ┐
//        │ I + Δλ・dS・De      n     │
//  J  =  │                          │
//        │ nF・De/D00       -visc   │
//        └                          ┘
func (o *UbiJoint) jacobian(w *workspace) {
	nsig := o.Nsig
	for i := 0; i < nsig; i++ {
		for j := 0; j < nsig; j++ {
			dSDe := 0.0
			for k := 0; k < nsig; k++ {
				dSDe += w.pv.dS[i][k] * o.De[k][j]
			}
			w.J.Set(i, j, w.Δλ*dSDe)
		}
		w.J.Set(i, i, 1.0+w.J.At(i, i))
		w.J.Set(i, nsig, w.n[i])
	}
	mandel.VecMatMul(w.DnF, 1.0/o.D00, w.nF, o.De)
	for j := 0; j < nsig; j++ {
		w.J.Set(nsig, j, w.DnF[j])
	}
	w.J.Set(nsig, nsig, -o.WP.Visc)
}

// trialReturn computes n, nF and De・n at the trial stress and the multiplier of a return
// along them. It reports whether this return would reverse the shear traction
//  Δλ   = F(σtr) / h,  h = nF・De・n + visc・D00
//  apex = τtr - Δλ・S・De・n < τzero
func (o *UbiJoint) trialReturn(w *workspace, set *Settings) (Δλ, h float64, apex bool) {
	τzero := set.Szero * o.D00
	f := o.WP.derivs(&w.pv, w.n, w.nF, w.σtr, τzero)
	mandel.MatVecMul(w.Dn, 1, o.De, w.n)
	h = mandel.Dot(w.nF, w.Dn) + o.WP.Visc*o.D00
	if h <= 0 {
		return
	}
	Δλ = f / h
	if w.pv.zero {
		return Δλ, h, true
	}
	return Δλ, h, w.pv.τ-Δλ*mandel.Dot(w.pv.S, w.Dn) < τzero
}

// apexReturn brings the trial stress to the apex of the Coulomb criterion. The shear
// traction is removed and the normal traction is returned along n0 = (1+tanψ)・N⊗N, the
// flow direction of zero shear:
//  σ1 = σtr - De・P(σtr)/G   with P(σ) = sym(N⊗ts)
//  Δλ = (tn(σ1)・tanφ - c) / (tanφ・N⊗N・De・n0 + visc・D00)
//  εe = εe_tr - P(σtr)/G - Δλ・n0
//  Note: De must not couple shear and normal tractions on the plane (isotropic elasticity)
func (o *UbiJoint) apexReturn(w *workspace) {
	o.WP.shearPart(w.sp, w.σtr)
	mandel.MatVecMul(w.Dn, 1.0/o.G, o.De, w.sp)
	for i := 0; i < o.Nsig; i++ {
		w.σ[i] = w.σtr[i] - w.Dn[i]
	}
	k := o.apexModulus(w)
	Δλ := 0.0
	if k > 0 {
		Δλ = math.Max(0, (mandel.Dot(o.WP.NN, w.σ)*o.WP.TanPhi-o.WP.C)/k)
	}
	for i := 0; i < o.Nsig; i++ {
		w.εe[i] = w.εetr[i] - w.sp[i]/o.G - Δλ*w.n[i]
	}
	mandel.MatVecMul(w.σ, 1, o.De, w.εe)
	w.Δλ = w.τtr/o.G + Δλ
	w.apex = true
	w.it, w.res = 1, 0
}

// apexModulus sets w.n = n0 = (1+tanψ)・N⊗N and w.Dn = De・n0 and returns
//  k = tanφ・N⊗N・De・n0 + visc・D00
func (o *UbiJoint) apexModulus(w *workspace) float64 {
	for i := 0; i < o.Nsig; i++ {
		w.n[i] = (1.0 + o.WP.TanPsi) * o.WP.NN[i]
	}
	mandel.MatVecMul(w.Dn, 1, o.De, w.n)
	return o.WP.TanPhi*mandel.Dot(o.WP.NN, w.Dn) + o.WP.Visc*o.D00
}

// dot3 returns u・v
func dot3(u, v [3]float64) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// closedForm applies one correction from the trial state (non-iterative return)
//  Δλ = F(σtr) / (nF・De・n + visc・D00)
//  εe = εe_tr - Δλ・n
//  σ  = σtr - Δλ・De・n
//  Note: n and nF are evaluated at σtr. Trial states beyond the apex go to apexReturn
func (o *UbiJoint) closedForm(w *workspace, set *Settings) (err error) {
	copy(w.εe, w.εetr)
	copy(w.σ, w.σtr)
	w.Δλ = 0
	if !w.active {
		return
	}
	w.it = 1
	Δλ, h, apex := o.trialReturn(w, set)
	if h <= 0 {
		return ErrSingular
	}
	if apex {
		o.apexReturn(w)
		return
	}
	if Δλ <= 0 {
		w.active = false
		return
	}
	w.Δλ = Δλ
	for i := 0; i < o.Nsig; i++ {
		w.εe[i] -= Δλ * w.n[i]
		w.σ[i] -= Δλ * w.Dn[i]
	}
	return
}
