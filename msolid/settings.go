// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// TangentMode selects the tangent operator returned to the global solver
type TangentMode int

const (
	Consistent TangentMode = iota // algorithmic (consistent) tangent
	Continuum                     // continuum tangent; ignores the curvature term dn/dσ
)

// String returns the name of the tangent mode
func (o TangentMode) String() string {
	if o == Continuum {
		return "continuum"
	}
	return "consistent"
}

// ParseTangentMode converts a name into a tangent mode
func ParseTangentMode(name string) (TangentMode, error) {
	switch name {
	case "", "consistent", "cte":
		return Consistent, nil
	case "continuum", "cont":
		return Continuum, nil
	}
	return Consistent, chk.Err("tangent mode %q is invalid; options are \"consistent\" and \"continuum\"", name)
}

// Settings holds the settings of the local (integration point) solver
//  Note: tolerances scaled by D00 = De[0][0] are given as relative values
type Settings struct {
	Tol      float64     // absolute tolerance on the local residuals
	MaxIt    int         // max number of local Newton-Raphson iterations
	MaxFlips int         // max number of activation/deactivation retries
	Fzero    float64     // yield values below Fzero*D00 are taken as elastic
	Szero    float64     // shear tractions below Szero*D00 are taken as zero
	Tangent  TangentMode // tangent operator returned by Tangent
}

// SetDefault sets default values
func (o *Settings) SetDefault() {
	o.Tol = 1e-14
	o.MaxIt = 500
	o.MaxFlips = 2
	o.Fzero = 1e-12
	o.Szero = 1e-14
	o.Tangent = Consistent
}

// ReadPrms overrides settings by parameters
//  tol, maxit, maxflips, fzero, szero, cte (cte=0 => continuum tangent)
func (o *Settings) ReadPrms(prms dbf.Params) {
	for _, p := range prms {
		switch p.N {
		case "tol":
			o.Tol = p.V
		case "maxit":
			o.MaxIt = int(p.V)
		case "maxflips":
			o.MaxFlips = int(p.V)
		case "fzero":
			o.Fzero = p.V
		case "szero":
			o.Szero = p.V
		case "cte":
			if p.V > 0 {
				o.Tangent = Consistent
			} else {
				o.Tangent = Continuum
			}
		}
	}
}

// Check checks settings
func (o Settings) Check() error {
	if o.Tol <= 0 || o.MaxIt < 1 || o.MaxFlips < 0 || o.Fzero < 0 || o.Szero < 0 {
		return chk.Err("local solver settings are invalid: %+v", o)
	}
	return nil
}
