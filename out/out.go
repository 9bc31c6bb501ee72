// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements material point output handling for analyses and plotting
package out

import (
	"github.com/cpmech/gosl/chk"

	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
	"github.com/mehranqsb/WeaknessPlaneModel/msolid"
)

// constants
var (
	TolZero = 1e-15 // values with absolute value smaller than this are printed as zero
)

// Results holds the series of derived values along a material point path
type Results struct {
	Key   string               // simulation key
	Model string               // model name
	Ndim  int                  // space dimension
	Keys  []string             // ordered keys; e.g. "ex", "sx", "p", "lam"
	Vals  map[string][]float64 // maps keys to series
	Load  []bool               // loading flag at each step
	Nstep int                  // number of steps, including the initial state
}

// Start collects results from a material point driver that has already run
//  Note: the following keys are added, depending on the model
//   all models: ex ey ez exy [eyz ezx] sx sy sz sxy [syz szx] p q lam
//   elastoplastic models: f (first yield function)
//   weak plane models: tn tau
func Start(key, modelname string, drv *msolid.Driver, ndim int) (o *Results, err error) {

	// check
	if len(drv.Res) < 1 || len(drv.Res) != len(drv.Eps) {
		return nil, chk.Err("driver has no results or inconsistent results: nres=%d neps=%d", len(drv.Res), len(drv.Eps))
	}
	nsig := mandel.Nsig(ndim)
	if len(drv.Res[0].Sig) != nsig {
		return nil, chk.Err("results have %d stress components but ndim=%d requires %d", len(drv.Res[0].Sig), ndim, nsig)
	}

	// keys
	o = &Results{Key: key, Model: modelname, Ndim: ndim, Vals: make(map[string][]float64)}
	ekeys := []string{"ex", "ey", "ez", "exy", "eyz", "ezx"}[:nsig]
	skeys := []string{"sx", "sy", "sz", "sxy", "syz", "szx"}[:nsig]
	o.Keys = append(append(o.Keys, ekeys...), skeys...)
	o.Keys = append(o.Keys, "p", "q", "lam")
	ep, isEP := drv.Model().(msolid.EPmodel)
	if isEP {
		o.Keys = append(o.Keys, "f")
	}
	ubj, isUbj := drv.Model().(*msolid.UbiJoint)
	if isUbj {
		o.Keys = append(o.Keys, "tn", "tau")
	}

	// series
	o.Nstep = len(drv.Res)
	for _, k := range o.Keys {
		o.Vals[k] = make([]float64, o.Nstep)
	}
	o.Load = make([]bool, o.Nstep)
	for i, s := range drv.Res {
		for j := 0; j < nsig; j++ {
			o.Vals[ekeys[j]][i] = drv.Eps[i][j] / mandel.W(j)
			o.Vals[skeys[j]][i] = s.Sig[j] / mandel.W(j)
		}
		o.Vals["p"][i] = mandel.P(s.Sig)
		o.Vals["q"][i] = mandel.Q(s.Sig)
		o.Vals["lam"][i] = s.Lam()
		if isEP {
			o.Vals["f"][i] = ep.YieldFuncs(s)[0]
		}
		if isUbj {
			o.Vals["tn"][i], o.Vals["tau"][i], _ = ubj.PlaneVars(s.Sig)
		}
		o.Load[i] = s.Loading
	}
	return
}

// Get returns the series corresponding to key
func (o *Results) Get(key string) ([]float64, error) {
	vals, ok := o.Vals[key]
	if !ok {
		return nil, chk.Err("cannot find results with key %q. available keys are %v", key, o.Keys)
	}
	return vals, nil
}

// NLoading returns the number of elastoplastic steps
func (o *Results) NLoading() (n int) {
	for _, l := range o.Load {
		if l {
			n++
		}
	}
	return
}
