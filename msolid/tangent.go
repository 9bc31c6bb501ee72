// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
)

// CalcD computes D = dσ_new/dε_new consistent with Update
//  Note: the continuum tangent is returned at the first iteration
func (o *UbiJoint) CalcD(D [][]float64, s *State, firstIt bool) error {
	if firstIt {
		return o.Tangent(D, s, Continuum)
	}
	return o.Tangent(D, s, o.Set.Tangent)
}

// ContD computes D = dσ_new/dε_new continuous
func (o *UbiJoint) ContD(D [][]float64, s *State) error {
	return o.Tangent(D, s, Continuum)
}

// Tangent computes D = dσ_new/dε_new for the last converged state s
func (o *UbiJoint) Tangent(D [][]float64, s *State, mode TangentMode) (err error) {

	// elastic
	if !s.Loading {
		o.ElastD(D, s)
		return
	}

	// workspace
	w := o.pool.Get().(*workspace)
	defer o.pool.Put(w)

	switch {
	case s.ApexReturn:
		return o.apexD(D, w)
	case mode == Continuum:
		return o.continuumD(D, w, s)
	case o.NonIter:
		return o.closedFormD(D, w, s)
	}
	return o.consistentD(D, w, s)
}

// continuumD computes
//  D = De - (De・n)⊗(nF・De) / (nF・De・n + visc・D00)
func (o *UbiJoint) continuumD(D [][]float64, w *workspace, s *State) (err error) {
	o.WP.derivs(&w.pv, w.n, w.nF, s.Sig, o.Set.Szero*o.D00)
	mandel.MatVecMul(w.Dn, 1, o.De, w.n)
	mandel.MatVecMul(w.DnF, 1, o.De, w.nF)
	h := mandel.Dot(w.nF, w.Dn) + o.WP.Visc*o.D00
	if h <= 0 {
		return ErrSingular
	}
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = o.De[i][j] - w.Dn[i]*w.DnF[j]/h
		}
	}
	return
}

// consistentD computes the algorithmic tangent of the iterative return
//  J・X = [I; 0]  =>  D = De・X_ee
//  where J is the local Jacobian at the converged {εe, Δλ}
func (o *UbiJoint) consistentD(D [][]float64, w *workspace, s *State) (err error) {
	copy(w.εe, s.EpsE)
	w.Δλ = s.Dgam
	o.WP.derivs(&w.pv, w.n, w.nF, s.Sig, o.Set.Szero*o.D00)
	o.jacobian(w)
	w.lu.Factorize(w.J)
	err = w.lu.SolveTo(w.X, false, w.B)
	if err != nil {
		return ErrSingular
	}
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			D[i][j] = 0
			for k := 0; k < o.Nsig; k++ {
				D[i][j] += o.De[i][k] * w.X.At(k, j)
			}
		}
	}
	return
}

// closedFormD computes the algorithmic tangent of the non-iterative return
//  with σtr = De・εe_tr, h = nF・De・n + visc・D00 and Δλ = F(σtr)/h:
//   g = dΔλ/dσtr = nF/h - F/h²・dSᵀ・(De・n + De・nF)
//   D = De - (De・n)⊗(De・g) - Δλ・De・dS・De
func (o *UbiJoint) closedFormD(D [][]float64, w *workspace, s *State) (err error) {
	nsig := o.Nsig
	mandel.MatVecMul(w.σtr, 1, o.De, s.EpsTr)
	f := o.WP.derivs(&w.pv, w.n, w.nF, w.σtr, o.Set.Szero*o.D00)
	mandel.MatVecMul(w.Dn, 1, o.De, w.n)
	mandel.MatVecMul(w.DnF, 1, o.De, w.nF)
	h := mandel.Dot(w.nF, w.Dn) + o.WP.Visc*o.D00
	if h <= 0 {
		return ErrSingular
	}
	Δλ := f / h

	// g (stored in w.σ) and De・g (stored in w.εe)
	for j := 0; j < nsig; j++ {
		dh := 0.0
		for k := 0; k < nsig; k++ {
			dh += w.pv.dS[k][j] * (w.Dn[k] + w.DnF[k])
		}
		w.σ[j] = w.nF[j]/h - f*dh/(h*h)
	}
	mandel.MatVecMul(w.εe, 1, o.De, w.σ)

	// De・dS・De
	var buf1, buf2 [6][6]float64
	dSDe := sliceMat(&buf1, nsig)
	DedSDe := sliceMat(&buf2, nsig)
	mandel.MatMul(dSDe, w.pv.dS, o.De)
	mandel.MatMul(DedSDe, o.De, dSDe)

	for i := 0; i < nsig; i++ {
		for j := 0; j < nsig; j++ {
			D[i][j] = o.De[i][j] - w.Dn[i]*w.εe[j] - Δλ*DedSDe[i][j]
		}
	}
	return
}

// apexD computes the tangent of the return to the apex (any mode)
//  A = I - De・P/G
//  D = (A - (De・n0)⊗(tanφ/k・N⊗N・A))・De
//  where P is the matrix of the linear map σ ↦ sym(N⊗ts); see apexReturn
func (o *UbiJoint) apexD(D [][]float64, w *workspace) (err error) {
	nsig := o.Nsig
	var buf1, buf2 [6][6]float64
	A := sliceMat(&buf1, nsig)
	M := sliceMat(&buf2, nsig)

	// P (stored in M), column by column
	for j := 0; j < nsig; j++ {
		for i := 0; i < nsig; i++ {
			w.σ[i] = 0
		}
		w.σ[j] = 1
		o.WP.shearPart(w.sp, w.σ)
		for i := 0; i < nsig; i++ {
			M[i][j] = w.sp[i]
		}
	}

	// A
	mandel.MatMul(A, o.De, M)
	for i := 0; i < nsig; i++ {
		for j := 0; j < nsig; j++ {
			A[i][j] = -A[i][j] / o.G
		}
		A[i][i] += 1
	}

	// N⊗N・A (stored in w.nF) and De・n0
	mandel.VecMatMul(w.nF, 1, o.WP.NN, A)
	k := o.apexModulus(w)
	a := 0.0
	if k > 0 {
		a = o.WP.TanPhi / k
	}
	for i := 0; i < nsig; i++ {
		for j := 0; j < nsig; j++ {
			M[i][j] = A[i][j] - a*w.Dn[i]*w.nF[j]
		}
	}
	mandel.MatMul(D, M, o.De)
	return
}
