// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mandel implements small fixed-size operations on symmetric second
// order tensors represented in the Mandel basis
//
//  ordering:  {xx, yy, zz, xy, yz, zx}
//  shear components are multiplied by √2, thus a:b == Dot(a, b)
//  reduced (plane) form keeps only the first 4 components
package mandel

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// constants
const (
	SQ2    = math.Sqrt2          // √2
	SQ3    = 1.7320508075688772  // √3
	SQ2by3 = 0.816496580927726   // √(2/3)
	SQ3by2 = 1.224744871391589   // √(3/2)
	SQ6    = 2.449489742783178   // √6
	HSQ2   = 0.70710678118654752 // 1/√2
)

// Im is the second order identity tensor in Mandel basis (use Im[:nsig])
var Im = []float64{1, 1, 1, 0, 0, 0}

// I2ij maps Mandel index to tensor indices
var I2ij = [6][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 1}, {1, 2}, {2, 0}}

// Nsig returns the number of Mandel components for given space dimension
func Nsig(ndim int) int {
	return 2 * ndim
}

// W returns the Mandel weight of component I: 1 for direct and √2 for shear components
func W(I int) float64 {
	if I < 3 {
		return 1
	}
	return SQ2
}

// CheckNsig checks whether nsig is a valid number of components
func CheckNsig(nsig int) error {
	if nsig != 4 && nsig != 6 {
		return chk.Err("number of Mandel components must be 4 or 6. nsig=%d is invalid", nsig)
	}
	return nil
}

// Man2Ten converts Mandel components to a 3x3 tensor
//  Note: missing components (nsig == 4) are set to zero
func Man2Ten(a *[3][3]float64, m []float64) {
	a[0][0], a[1][1], a[2][2] = m[0], m[1], m[2]
	a[0][1] = m[3] / SQ2
	a[1][0] = a[0][1]
	a[1][2], a[2][1], a[2][0], a[0][2] = 0, 0, 0, 0
	if len(m) > 4 {
		a[1][2] = m[4] / SQ2
		a[2][1] = a[1][2]
		a[2][0] = m[5] / SQ2
		a[0][2] = a[2][0]
	}
}

// Ten2Man converts the symmetric part of a 3x3 tensor to Mandel components
//  Note: only len(m) components are computed
func Ten2Man(m []float64, a *[3][3]float64) {
	for I := range m {
		i, j := I2ij[I][0], I2ij[I][1]
		m[I] = W(I) * (a[i][j] + a[j][i]) / 2.0
	}
}

// SymDyad computes m = sym(u ⊗ v) = (u⊗v + v⊗u)/2 in Mandel basis
func SymDyad(m []float64, u, v [3]float64) {
	for I := range m {
		i, j := I2ij[I][0], I2ij[I][1]
		m[I] = W(I) * (u[i]*v[j] + v[i]*u[j]) / 2.0
	}
}

// Traction computes t = σ・n
func Traction(t *[3]float64, σ []float64, n [3]float64) {
	var a [3][3]float64
	Man2Ten(&a, σ)
	for i := 0; i < 3; i++ {
		t[i] = a[i][0]*n[0] + a[i][1]*n[1] + a[i][2]*n[2]
	}
}

// Dot returns a:b == a・b in Mandel basis
func Dot(a, b []float64) (res float64) {
	for i := range a {
		res += a[i] * b[i]
	}
	return
}

// Tr returns the trace
func Tr(a []float64) float64 {
	return a[0] + a[1] + a[2]
}

// Norm returns the Frobenius norm
func Norm(a []float64) float64 {
	return math.Sqrt(Dot(a, a))
}

// Dev computes the deviator s = dev(σ) and returns its norm
func Dev(s, σ []float64) (sno float64) {
	tr := Tr(σ)
	for i := range σ {
		s[i] = σ[i] - tr*Im[i]/3.0
		sno += s[i] * s[i]
	}
	return math.Sqrt(sno)
}

// P returns the mean pressure p = -tr(σ)/3 (compression is positive)
func P(σ []float64) float64 {
	return -Tr(σ) / 3.0
}

// Q returns the deviatoric stress invariant q = √(3/2)・|dev(σ)|
func Q(σ []float64) float64 {
	tr := Tr(σ)
	var sum, s float64
	for i := range σ {
		s = σ[i] - tr*Im[i]/3.0
		sum += s * s
	}
	return SQ3by2 * math.Sqrt(sum)
}

// Psd returns the deviatoric projector Psd = I - Im⊗Im/3 [nsig][nsig]
func Psd(P [][]float64) {
	for i := range P {
		for j := range P[i] {
			P[i][j] = -Im[i] * Im[j] / 3.0
		}
		P[i][i] += 1.0
	}
}

// MatVecMul computes v = α・M・u
func MatVecMul(v []float64, α float64, M [][]float64, u []float64) {
	for i := range v {
		v[i] = 0
		for j := range u {
			v[i] += α * M[i][j] * u[j]
		}
	}
}

// VecMatMul computes v = α・uᵀ・M
func VecMatMul(v []float64, α float64, u []float64, M [][]float64) {
	for j := range v {
		v[j] = 0
		for i := range u {
			v[j] += α * u[i] * M[i][j]
		}
	}
}

// MatMul computes C = A・B
func MatMul(C, A, B [][]float64) {
	for i := range C {
		for j := range C[i] {
			C[i][j] = 0
			for k := range B {
				C[i][j] += A[i][k] * B[k][j]
			}
		}
	}
}

// Rank4Sym converts a fourth order tensor with minor symmetries, given as a function of
// tensor indices, into a [nsig][nsig] matrix in Mandel basis: M[I][J] = w_I w_J T_ijkl
func Rank4Sym(M [][]float64, T func(i, j, k, l int) float64) {
	for I := range M {
		i, j := I2ij[I][0], I2ij[I][1]
		for J := range M[I] {
			k, l := I2ij[J][0], I2ij[J][1]
			M[I][J] = W(I) * W(J) * T(i, j, k, l)
		}
	}
}
