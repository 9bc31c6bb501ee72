// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/ghodss/yaml"

	"github.com/mehranqsb/WeaknessPlaneModel/mandel"
)

// Path holds a strain-driven path for material point simulations
//  Note: shear strains are tensor components (not engineering strains)
type Path struct {

	// initial stress (tension is positive)
	Sx  float64 `json:"sx"`
	Sy  float64 `json:"sy"`
	Sz  float64 `json:"sz"`
	Sxy float64 `json:"sxy"`

	// total strains at each point of the path
	Ex  []float64 `json:"ex"`
	Ey  []float64 `json:"ey"`
	Ez  []float64 `json:"ez"`
	Exy []float64 `json:"exy"`
	Eyz []float64 `json:"eyz"`
	Ezx []float64 `json:"ezx"`

	// settings
	Nincs int `json:"nincs"` // number of increments between points

	// derived
	nsig int // number of stress components
	np   int // number of points
}

// ReadPath reads a path from a JSON or YAML file
func ReadPath(fn string) (o *Path, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read path file %q:\n%v", fn, err)
	}
	o = new(Path)
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal path file %q:\n%v", fn, err)
	}
	return
}

// Init checks and completes path data
func (o *Path) Init(ndim int) (err error) {
	o.nsig = mandel.Nsig(ndim)
	if err = mandel.CheckNsig(o.nsig); err != nil {
		return
	}
	o.np = 0
	for _, e := range [][]float64{o.Ex, o.Ey, o.Ez, o.Exy, o.Eyz, o.Ezx} {
		if len(e) > o.np {
			o.np = len(e)
		}
	}
	if o.np < 2 {
		return chk.Err("path must have at least two points")
	}
	for _, e := range []*[]float64{&o.Ex, &o.Ey, &o.Ez, &o.Exy, &o.Eyz, &o.Ezx} {
		switch len(*e) {
		case 0:
			*e = make([]float64, o.np)
		case o.np:
		default:
			return chk.Err("all strain components of path must have the same length. %d != %d", len(*e), o.np)
		}
	}
	if ndim == 2 {
		for i := 0; i < o.np; i++ {
			if o.Eyz[i] != 0 || o.Ezx[i] != 0 {
				return chk.Err("eyz and ezx must be zero in 2D")
			}
		}
	}
	if o.Nincs < 1 {
		o.Nincs = 1
	}
	return
}

// Size returns the number of points
func (o *Path) Size() int { return o.np }

// Sig0 returns the initial stress in Mandel basis
func (o *Path) Sig0() (σ []float64) {
	σ = make([]float64, o.nsig)
	σ[0], σ[1], σ[2], σ[3] = o.Sx, o.Sy, o.Sz, o.Sxy*mandel.SQ2
	return
}

// Eps returns the total strain of point i in Mandel basis
func (o *Path) Eps(ε []float64, i int) {
	ε[0], ε[1], ε[2] = o.Ex[i], o.Ey[i], o.Ez[i]
	ε[3] = o.Exy[i] * mandel.SQ2
	if o.nsig > 4 {
		ε[4] = o.Eyz[i] * mandel.SQ2
		ε[5] = o.Ezx[i] * mandel.SQ2
	}
}

// Deps returns the strain increment between points i-1 and i divided by Nincs
func (o *Path) Deps(Δε []float64, i int) {
	var a, b [6]float64
	o.Eps(a[:o.nsig], i-1)
	o.Eps(b[:o.nsig], i)
	for k := 0; k < o.nsig; k++ {
		Δε[k] = (b[k] - a[k]) / float64(o.Nincs)
	}
}
