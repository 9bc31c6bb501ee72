// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
)

func Test_ubj01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj01. elastic steps")

	for _, name := range []string{"ubj-local", "ubj-local-ni"} {
		mdl := newUbj(tst, name, 3, ubjPrms())
		s, err := mdl.InitIntVars(make([]float64, 6))
		if err != nil {
			tst.Errorf("InitIntVars failed: %v\n", err)
			return
		}

		// compression and small shear: F < 0
		Δε := []float64{-0.001, 0.0005, 0, 0.0002 * mandel.SQ2, 0.001 * mandel.SQ2, 0}
		err = mdl.Update(s, nil, Δε, 0, 0, 0)
		if err != nil {
			tst.Errorf("Update failed: %v\n", err)
			return
		}
		σ := make([]float64, 6)
		mandel.MatVecMul(σ, 1, mdl.De, Δε)
		chkVec(tst, "σ", 1e-15, s.Sig, σ)
		chkVec(tst, "εe", 1e-17, s.EpsE, Δε)
		chk.Float64(tst, "λ", 1e-17, s.Lam(), 0)
		if s.Loading {
			tst.Errorf("%s: step should be elastic\n", name)
		}

		// tangent is De
		D := utl.Alloc(6, 6)
		mdl.CalcD(D, s, false)
		chkMat(tst, "D", 1e-17, D, mdl.De)
	}
}

func Test_ubj02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj02. uniaxial tension normal to the plane")

	// weak plane normal to x; no shear traction on the plane
	mdl := newUbj(tst, "ubj-normal", 3, ubjPrms(
		&dbf.P{N: "nx", V: 1},
		&dbf.P{N: "ny", V: 0},
		&dbf.P{N: "nz", V: 0},
	))
	s, _ := mdl.InitIntVars(make([]float64, 6))
	err := mdl.Update(s, nil, []float64{0.002, 0, 0, 0, 0, 0}, 0, 0, 0)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	io.Pforan("σ = %v\n", s.Sig)
	io.Pforan("Δλ = %v\n", s.Dgam)

	// σxx is brought back to c/tanφ = √3
	chk.Float64(tst, "σxx", 1e-10, s.Sig[0], math.Sqrt(3))
	chk.Float64(tst, "σyy", 1e-10, s.Sig[1], 0.7423074889580901)
	chk.Float64(tst, "σzz", 1e-10, s.Sig[2], 0.7423074889580901)
	chk.Float64(tst, "Δλ", 1e-12, s.Dgam, 0.000713333685805977)
	chk.Float64(tst, "λ", 1e-12, s.Lam(), 0.000713333685805977)
	chk.Float64(tst, "F", 1e-10, mdl.YieldFuncs(s)[0], 0)
	chkVec(tst, "εe", 1e-15, s.EpsE, []float64{0.002 - s.Dgam, 0, 0, 0, 0, 0})
	chkVec(tst, "εtr", 1e-17, s.EpsTr, []float64{0.002, 0, 0, 0, 0, 0})
	if !s.Loading {
		tst.Errorf("step should be elastoplastic\n")
	}

	// same in the local frame
	loc := newUbj(tst, "ubj-local", 3, ubjPrms())
	s2, _ := loc.InitIntVars(make([]float64, 6))
	err = loc.Update(s2, nil, []float64{0.002, 0, 0, 0, 0, 0}, 0, 0, 0)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	chkVec(tst, "σ(local)", 1e-13, s2.Sig, s.Sig)

	// rotated plane: normal along y and tension along y
	rot := newUbj(tst, "ubj-normal", 3, ubjPrms(&dbf.P{N: "ny", V: 1}))
	s3, _ := rot.InitIntVars(make([]float64, 6))
	err = rot.Update(s3, nil, []float64{0, 0.002, 0, 0, 0, 0}, 0, 0, 0)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	chk.Float64(tst, "σyy(rotated)", 1e-10, s3.Sig[1], math.Sqrt(3))
	chk.Float64(tst, "σxx(rotated)", 1e-10, s3.Sig[0], s.Sig[1])
	chk.Float64(tst, "σzz(rotated)", 1e-10, s3.Sig[2], s.Sig[2])
}

func Test_ubj03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj03. shear on the plane")

	// tn = D00・εxx; τtr = 2G・εxy > c - tn・tanφ
	εxx, εxy := 0.001, 0.002
	tanφ := math.Tan(math.Pi / 6)
	for _, ndim := range []int{2, 3} {
		nsig := 2 * ndim
		for _, name := range []string{"ubj-local", "ubj-local-ni", "ubj-normal", "ubj-normal-ni"} {
			prms := ubjPrms()
			if name == "ubj-normal" || name == "ubj-normal-ni" {
				prms = ubjPrms(&dbf.P{N: "nx", V: 1})
			}
			mdl := newUbj(tst, name, ndim, prms)
			s, _ := mdl.InitIntVars(make([]float64, nsig))
			Δε := make([]float64, nsig)
			Δε[0], Δε[3] = εxx, εxy*mandel.SQ2
			err := mdl.Update(s, nil, Δε, 0, 0, 0)
			if err != nil {
				tst.Errorf("%s: Update failed: %v\n", name, err)
				return
			}
			tn := mdl.D00 * εxx
			τ := 1 - tn*tanφ
			io.Pforan("%s: σ = %v\n", name, s.Sig)
			chk.Float64(tst, name+": σxx", 1e-12, s.Sig[0], tn)
			chk.Float64(tst, name+": σxy", 1e-12, s.Sig[3], τ*mandel.SQ2)
			chk.Float64(tst, name+": Δλ", 1e-14, s.Dgam, (2*mdl.G*εxy-τ)/mdl.G)
			chk.Float64(tst, name+": F", 1e-12, mdl.YieldFuncs(s)[0], 0)
			if s.Dgam < 0 {
				tst.Errorf("%s: Δλ must not be negative\n", name)
			}
		}
	}
}

// runUbj runs a path on a weak plane model and returns the driver
func runUbj(tst *testing.T, name string, ndim int, prms dbf.Params, pth *Path, checkD bool) *Driver {
	var drv Driver
	err := drv.Init("test", name, ndim, false, prms)
	if err != nil {
		tst.Fatalf("Init failed: %v\n", err)
	}
	if checkD {
		drv.TstD = tst
	}
	if err = pth.Init(ndim); err != nil {
		tst.Fatalf("path failed: %v\n", err)
	}
	if err = drv.Run(pth); err != nil {
		tst.Fatalf("Run failed: %v\n", err)
	}
	return &drv
}

// rotPath applies normal and shear strains on the plane, then rotates the shear direction
func rotPath() *Path {
	return &Path{
		Ex:    []float64{0, 0.001, 0.001, 0.0008},
		Exy:   []float64{0, 0.002, 0.002, 0.0015},
		Ezx:   []float64{0, 0, 0.001, 0.002},
		Nincs: 2,
	}
}

func Test_ubj04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj04. local frame versus normal along x")

	prms := ubjPrms(&dbf.P{N: "psi", V: 10})
	loc := runUbj(tst, "ubj-local", 3, prms, rotPath(), false)
	nor := runUbj(tst, "ubj-normal", 3, ubjPrms(&dbf.P{N: "psi", V: 10}, &dbf.P{N: "nx", V: 1}), rotPath(), false)
	for k := range loc.Res {
		chkVec(tst, io.Sf("σ%d", k), 1e-10, nor.Res[k].Sig, loc.Res[k].Sig)
		chkVec(tst, io.Sf("εe%d", k), 1e-13, nor.Res[k].EpsE, loc.Res[k].EpsE)
		chk.Float64(tst, io.Sf("λ%d", k), 1e-13, nor.Res[k].Lam(), loc.Res[k].Lam())
	}

	// λ is non-decreasing and states lie inside or on the yield surface
	mdl := loc.Model().(*UbiJoint)
	for k := 1; k < len(loc.Res); k++ {
		if loc.Res[k].Lam() < loc.Res[k-1].Lam() {
			tst.Errorf("λ decreased at step %d\n", k)
		}
		chk.Float64(tst, io.Sf("λprev%d", k), 1e-17, loc.Res[k].AlpPrev[0], loc.Res[k-1].Lam())
		if f := mdl.YieldFuncs(loc.Res[k])[0]; f > 1e-10 {
			tst.Errorf("F = %g > 0 at step %d\n", f, k)
		}
	}
}

func Test_ubj05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj05. iterative versus non-iterative")

	for _, ndim := range []int{2, 3} {
		pth1, pth2 := rotPath(), rotPath()
		if ndim == 2 {
			pth1.Ezx, pth2.Ezx = nil, nil
		}
		it := runUbj(tst, "ubj-local", ndim, ubjPrms(&dbf.P{N: "psi", V: 10}), pth1, false)
		ni := runUbj(tst, "ubj-local-ni", ndim, ubjPrms(&dbf.P{N: "psi", V: 10}), pth2, false)
		for k := range it.Res {
			chkVec(tst, io.Sf("σ%d", k), 1e-10, ni.Res[k].Sig, it.Res[k].Sig)
			chk.Float64(tst, io.Sf("λ%d", k), 1e-12, ni.Res[k].Lam(), it.Res[k].Lam())
		}
	}

	// arbitrary normal with rotating shear. With isotropic elasticity the shear traction
	// only shrinks along the trial slip direction during a return, so n(σ) = n(σtr) and
	// the closed form solves the local problem exactly for any increment size
	prms := ubjPrms(&dbf.P{N: "psi", V: 10}, &dbf.P{N: "visc", V: 0.1},
		&dbf.P{N: "nx", V: 3}, &dbf.P{N: "ny", V: 1}, &dbf.P{N: "nz", V: -1})
	for _, nincs := range []int{1, 2, 4, 8} {
		pth1, pth2 := rotPath(), rotPath()
		pth1.Nincs, pth2.Nincs = nincs, nincs
		it := runUbj(tst, "ubj-normal", 3, prms, pth1, false)
		ni := runUbj(tst, "ubj-normal-ni", 3, prms, pth2, false)
		nload := 0
		for k := range it.Res {
			chkVec(tst, io.Sf("nincs=%d: σ%d", nincs, k), 1e-10, ni.Res[k].Sig, it.Res[k].Sig)
			chk.Float64(tst, io.Sf("nincs=%d: λ%d", nincs, k), 1e-12, ni.Res[k].Lam(), it.Res[k].Lam())
			if it.Res[k].Loading {
				nload++
			}
		}
		if nload == 0 {
			tst.Errorf("nincs=%d: path should have elastoplastic steps\n", nincs)
		}
	}
}

func Test_ubj06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj06. consistent tangent versus numerical derivative")

	N := []*dbf.P{&dbf.P{N: "nx", V: 3}, &dbf.P{N: "ny", V: 1}, &dbf.P{N: "nz", V: -1}}
	for _, name := range []string{"ubj-local", "ubj-local-ni", "ubj-normal", "ubj-normal-ni"} {
		prms := ubjPrms(&dbf.P{N: "psi", V: 10}, &dbf.P{N: "visc", V: 0.1})
		if name == "ubj-normal" || name == "ubj-normal-ni" {
			prms = append(prms, N...)
		}
		io.Pf("\n%s\n", name)
		drv := runUbj(tst, name, 3, prms, rotPath(), true)
		nload := 0
		for _, s := range drv.Res {
			if s.Loading {
				nload++
			}
		}
		if nload == 0 {
			tst.Errorf("%s: path should have elastoplastic steps\n", name)
		}
	}
}

func Test_ubj07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj07. continuum tangent")

	mdl := newUbj(tst, "ubj-local", 3, ubjPrms(&dbf.P{N: "psi", V: 10}))
	s, _ := mdl.InitIntVars(make([]float64, 6))
	err := mdl.Update(s, nil, []float64{0.001, 0, 0, 0.002 * mandel.SQ2, 0, 0.001 * mandel.SQ2}, 0, 0, 0)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}

	// De - (De・n)⊗(nF・De)/(nF・De・n)
	n, nF := make([]float64, 6), make([]float64, 6)
	mdl.FlowDirs(n, nF, nil, s.Sig)
	Dn, DnF := make([]float64, 6), make([]float64, 6)
	mandel.MatVecMul(Dn, 1, mdl.De, n)
	mandel.MatVecMul(DnF, 1, mdl.De, nF)
	h := mandel.Dot(nF, Dn)
	Dcor := utl.Alloc(6, 6)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			Dcor[i][j] = mdl.De[i][j] - Dn[i]*DnF[j]/h
		}
	}
	D := utl.Alloc(6, 6)
	if err = mdl.ContD(D, s); err != nil {
		tst.Errorf("ContD failed: %v\n", err)
		return
	}
	chkMat(tst, "Dcont", 1e-12, D, Dcor)

	// first iteration returns the continuum tangent
	if err = mdl.CalcD(D, s, true); err != nil {
		tst.Errorf("CalcD failed: %v\n", err)
		return
	}
	chkMat(tst, "D(firstIt)", 1e-12, D, Dcor)

	// continuum tangent annihilates the flow direction
	Dn2 := make([]float64, 6)
	mandel.VecMatMul(Dn2, 1, nF, D)
	chkVec(tst, "nF・D", 1e-12, Dn2, make([]float64, 6))

	// selected by parameter
	cont := newUbj(tst, "ubj-local", 3, ubjPrms(&dbf.P{N: "psi", V: 10}, &dbf.P{N: "cte", V: 0}))
	if err = cont.CalcD(D, s, false); err != nil {
		tst.Errorf("CalcD failed: %v\n", err)
		return
	}
	chkMat(tst, "D(cte=0)", 1e-12, D, Dcor)
}

func Test_ubj08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj08. failures do not modify the state")

	mdl := newUbj(tst, "ubj-local", 3, ubjPrms())
	s, _ := mdl.InitIntVars(make([]float64, 6))
	s.Sig[1] = 0.123
	s.Alp[0] = 0.5
	backup := s.GetCopy()

	set := mdl.Set
	set.MaxIt = 1
	Δε := []float64{0.001, 0, 0, 0.002 * mandel.SQ2, 0, 0}
	err := mdl.Integrate(s, Δε, &set)
	if err == nil {
		tst.Errorf("Integrate should have failed\n")
		return
	}
	io.Pforan("err = %v\n", err)
	if !errors.Is(err, ErrNotConverged) {
		tst.Errorf("error should be ErrNotConverged\n")
	}
	if !IsIntegrationFailure(err) {
		tst.Errorf("error should request a smaller increment\n")
	}
	var ierr *IntegrationError
	if !errors.As(err, &ierr) {
		tst.Errorf("error should be an IntegrationError\n")
		return
	}
	if ierr.Model != "ubj-local" || ierr.It != 1 {
		tst.Errorf("IntegrationError has wrong data: %+v\n", ierr)
	}
	chkVec(tst, "σ", 1e-17, s.Sig, backup.Sig)
	chkVec(tst, "εe", 1e-17, s.EpsE, backup.EpsE)
	chkVec(tst, "εtr", 1e-17, s.EpsTr, backup.EpsTr)
	chk.Float64(tst, "λ", 1e-17, s.Lam(), 0.5)

	// default settings succeed
	err = mdl.Integrate(s, Δε, &mdl.Set)
	if err != nil {
		tst.Errorf("Integrate failed: %v\n", err)
	}
}

func Test_ubj09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj09. factory and parameters")

	names := Names()
	io.Pforan("names = %v\n", names)
	for _, name := range []string{"dp", "elast", "ubj", "ubj-local", "ubj-local-ni", "ubj-normal", "ubj-normal-ni"} {
		found := false
		for _, n := range names {
			if n == name {
				found = true
			}
		}
		if !found {
			tst.Errorf("model %q should be available\n", name)
		}
		mdl, err := New(name)
		if err != nil {
			tst.Errorf("New failed: %v\n", err)
			continue
		}
		if err = mdl.Init(3, false, mdl.GetPrms()); err != nil {
			tst.Errorf("%s: Init with example parameters failed: %v\n", name, err)
		}
	}
	if _, err := New("unknown"); err == nil {
		tst.Errorf("New should have failed\n")
	}

	// auto selection
	mdl := newUbj(tst, "ubj", 3, ubjPrms(&dbf.P{N: "noniter", V: 1}, &dbf.P{N: "nz", V: 1}))
	if !mdl.NonIter {
		tst.Errorf("ubj with noniter=1 should be non-iterative\n")
	}
	if _, ok := mdl.WP.geo.(arbitraryNormal); !ok {
		tst.Errorf("ubj with normal should use the arbitrary normal\n")
	}

	// invalid settings
	m, _ := New("ubj-local")
	if err := m.Init(3, false, ubjPrms(&dbf.P{N: "maxit", V: 0})); err == nil {
		tst.Errorf("maxit=0 should have failed\n")
	}
	if err := m.Init(3, false, ubjPrms(&dbf.P{N: "nx", V: 1})); err == nil {
		tst.Errorf("local frame with normal should have failed\n")
	}
}

func Test_ubj10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ubj10. return to the apex")

	// tension with some shear; the trial state is beyond the apex tn = c/tanφ = √3:
	//  normal (1,1,0.5): tn_tr = 2.029, τ_tr = 0.801
	//  local frame:      tn_tr = 2.692, τ_tr = 0.172
	a := 0.05
	Δεnor := []float64{
		0.002 * math.Cos(7*a),
		-0.001 * a,
		0.0005,
		0.002 * math.Sin(5*a) * mandel.SQ2,
		0.001 * a * mandel.SQ2,
		-0.001 * math.Cos(3*a) * mandel.SQ2,
	}
	Δεloc := []float64{0.002, 0, 0, 0.0002 * mandel.SQ2, 0, 0.0001 * mandel.SQ2}
	nor := []*dbf.P{&dbf.P{N: "psi", V: 5}, &dbf.P{N: "nx", V: 1}, &dbf.P{N: "ny", V: 1}, &dbf.P{N: "nz", V: 0.5}}
	tests := []struct {
		names []string
		prms  dbf.Params
		Δε    []float64
		σ     []float64
		λ     float64
	}{
		{
			[]string{"ubj-normal", "ubj-normal-ni"}, ubjPrms(nor...), Δεnor,
			[]float64{1.9104085821397117, 1.3904231344953595, 1.9698575755397627, 0.15748794695595394, 0.6512930831731539, -0.8194478614174235},
			2.285657852425160e-03,
		},
		{
			[]string{"ubj-local", "ubj-local-ni"}, ubjPrms(&dbf.P{N: "psi", V: 5}), Δεloc,
			[]float64{math.Sqrt(3), 0.7423074889580901, 0.7423074889580901, 0, 0, 0},
			1.103159454736009e-03,
		},
	}
	for _, test := range tests {
		for _, name := range test.names {
			mdl := newUbj(tst, name, 3, test.prms)
			s, _ := mdl.InitIntVars(make([]float64, 6))
			tn, τ, _ := mdl.PlaneVars(mandelMul(mdl.De, test.Δε))
			io.Pforan("%s: trial tn = %v τ = %v\n", name, tn, τ)
			err := mdl.Update(s, nil, test.Δε, 0, 0, 0)
			if err != nil {
				tst.Errorf("%s: Update failed: %v\n", name, err)
				continue
			}
			if !s.Loading || !s.ApexReturn {
				tst.Errorf("%s: step should be elastoplastic with return to the apex\n", name)
			}
			tn, τ, _ = mdl.PlaneVars(s.Sig)
			chk.Float64(tst, name+": tn", 1e-12, tn, math.Sqrt(3))
			chk.Float64(tst, name+": τ", 1e-12, τ, 0)
			chk.Float64(tst, name+": F", 1e-12, mdl.YieldFuncs(s)[0], 0)
			chkVec(tst, name+": σ", 1e-12, s.Sig, test.σ)
			chk.Float64(tst, name+": λ", 1e-15, s.Lam(), test.λ)
		}
	}

	// paths entering the apex region after an elastic (local) or a regular plastic (normal)
	// step; the tangent is checked at every step
	pthLoc := &Path{
		Ex:    []float64{0, 0.002, 0.003},
		Exy:   []float64{0, 0.0002, 0.0004},
		Ezx:   []float64{0, 0.0001, 0.0001},
		Nincs: 2,
	}
	pthNor := &Path{
		Ex:    []float64{0, 0.0022, 0.0025},
		Ey:    []float64{0, -0.00005, 0},
		Ez:    []float64{0, 0.0005, 0.0005},
		Exy:   []float64{0, 0.0003, 0.0007},
		Eyz:   []float64{0, 0.00005, 0.0001},
		Ezx:   []float64{0, -0.0006, -0.001},
		Nincs: 2,
	}
	for _, name := range []string{"ubj-local", "ubj-local-ni", "ubj-normal", "ubj-normal-ni"} {
		prms, pth, λ := ubjPrms(&dbf.P{N: "psi", V: 5}), *pthLoc, 2.422709270324650e-03
		if name == "ubj-normal" || name == "ubj-normal-ni" {
			prms, pth, λ = ubjPrms(nor...), *pthNor, 3.611896534876456e-03
		}
		drv := runUbj(tst, name, 3, prms, &pth, true)
		for k, s := range drv.Res {
			if k > 1 && !s.ApexReturn {
				tst.Errorf("%s: step %d should return to the apex\n", name, k)
			}
		}
		chk.Float64(tst, name+": λ", 1e-14, drv.Res[4].Lam(), λ)
	}
}

// mandelMul returns M・u
func mandelMul(M [][]float64, u []float64) []float64 {
	v := make([]float64, len(u))
	mandel.MatVecMul(v, 1, M, u)
	return v
}
