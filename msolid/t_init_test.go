// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// chkVec compares vectors component-wise
func chkVec(tst *testing.T, msg string, tol float64, res, correct []float64) {
	if len(res) != len(correct) {
		tst.Errorf("%s: lengths differ. %d != %d\n", msg, len(res), len(correct))
		return
	}
	for i := range res {
		chk.Float64(tst, io.Sf("%s[%d]", msg, i), tol, res[i], correct[i])
	}
}

// chkMat compares matrices component-wise
func chkMat(tst *testing.T, msg string, tol float64, res, correct [][]float64) {
	if len(res) != len(correct) {
		tst.Errorf("%s: number of rows differ. %d != %d\n", msg, len(res), len(correct))
		return
	}
	for i := range res {
		chkVec(tst, io.Sf("%s[%d]", msg, i), tol, res[i], correct[i])
	}
}

// ubjPrms returns the parameters of the reference weak plane plus extra ones
func ubjPrms(extra ...*dbf.P) dbf.Params {
	prms := []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.3},
		&dbf.P{N: "c", V: 1},
		&dbf.P{N: "phi", V: 30},
		&dbf.P{N: "psi", V: 0},
	}
	return append(prms, extra...)
}

// newUbj allocates and initialises a weak plane model
func newUbj(tst *testing.T, name string, ndim int, prms dbf.Params) *UbiJoint {
	mdl, err := New(name)
	if err != nil {
		tst.Fatalf("New failed: %v\n", err)
	}
	err = mdl.Init(ndim, false, prms)
	if err != nil {
		tst.Fatalf("Init failed: %v\n", err)
	}
	return mdl.(*UbiJoint)
}
