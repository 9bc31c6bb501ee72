// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/ghodss/yaml"
)

// Summary holds the main quantities of a material point run
type Summary struct {
	Key      string             `json:"key"`      // simulation key
	Model    string             `json:"model"`    // model name
	Ndim     int                `json:"ndim"`     // space dimension
	Nstep    int                `json:"nstep"`    // number of steps, including the initial state
	NLoading int                `json:"nloading"` // number of elastoplastic steps
	NSub     int                `json:"nsub"`     // number of extra steps due to halvings
	Final    map[string]float64 `json:"final"`    // values at the last step
	Max      map[string]float64 `json:"max"`      // maximum values along the path
	Min      map[string]float64 `json:"min"`      // minimum values along the path
}

// GetSummary computes the summary of results
func (o *Results) GetSummary(nsub int) (sum *Summary) {
	sum = &Summary{
		Key:      o.Key,
		Model:    o.Model,
		Ndim:     o.Ndim,
		Nstep:    o.Nstep,
		NLoading: o.NLoading(),
		NSub:     nsub,
		Final:    make(map[string]float64),
		Max:      make(map[string]float64),
		Min:      make(map[string]float64),
	}
	for _, key := range o.Keys {
		vals := o.Vals[key]
		sum.Final[key] = vals[len(vals)-1]
		sum.Max[key], sum.Min[key] = vals[0], vals[0]
		for _, v := range vals {
			sum.Max[key] = math.Max(sum.Max[key], v)
			sum.Min[key] = math.Min(sum.Min[key], v)
		}
	}
	return
}

// TableBuffer returns a buffer with all results formatted as a table; one row per step
func (o *Results) TableBuffer() *bytes.Buffer {
	var b bytes.Buffer
	io.Ff(&b, "%6s", "step")
	for _, key := range o.Keys {
		io.Ff(&b, "%24s", key)
	}
	io.Ff(&b, "%8s\n", "loading")
	for i := 0; i < o.Nstep; i++ {
		io.Ff(&b, "%6d", i)
		for _, key := range o.Keys {
			v := o.Vals[key][i]
			if math.Abs(v) < TolZero {
				v = 0
			}
			io.Ff(&b, "%24.15e", v)
		}
		io.Ff(&b, "%8v\n", o.Load[i])
	}
	return &b
}

// Write saves the table of results (key.res) and the summary (key-sum.yaml) to dirout
func (o *Results) Write(dirout string, nsub int) (err error) {
	if dirout == "" {
		return chk.Err("output directory must be given")
	}
	sum, err := yaml.Marshal(o.GetSummary(nsub))
	if err != nil {
		return chk.Err("cannot marshal summary:\n%v", err)
	}
	io.WriteFileVD(dirout, o.Key+".res", o.TableBuffer())
	io.WriteFileVD(dirout, o.Key+"-sum.yaml", bytes.NewBuffer(sum))
	return
}

// ReadSummary reads a summary file written by Write
func ReadSummary(fn string) (sum *Summary, err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read summary file %q:\n%v", fn, err)
	}
	sum = new(Summary)
	err = yaml.Unmarshal(b, sum)
	if err != nil {
		return nil, chk.Err("cannot unmarshal summary file %q:\n%v", fn, err)
	}
	return
}
