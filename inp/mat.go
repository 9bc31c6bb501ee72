// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/ghodss/yaml"

	"github.com/mehranqsb/WeaknessPlaneModel/msolid"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Type  string     `json:"type"`  // type of material; only "solid" is available
	Model string     `json:"model"` // name of model; e.g. "ubj-local", "ubj-normal-ni", "dp", "elast"
	Extra string     `json:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms"`  // prms holds all model parameters for this material

	// derived
	Solid msolid.Model `json:"-"` // pointer to actual solid model
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Materials MatsData `json:"materials"` // all materials

	// derived
	Solids map[string]*Material `json:"-"` // subset with materials/models: solids
}

// Clean cleans resources
func (o *MatDb) Clean() {
	for _, mat := range o.Materials {
		if mat.Solid != nil {
			mat.Solid.Clean()
		}
	}
}

// ReadMat reads all materials data from a .mat JSON or YAML file
func ReadMat(dir, fn string, ndim int, pstress bool) (mdb *MatDb, err error) {

	// read file
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read materials file %q:\n%v", fn, err)
	}
	return ParseMat(b, ndim, pstress)
}

// ParseMat decodes a materials database and allocates/initialises all models
func ParseMat(b []byte, ndim int, pstress bool) (mdb *MatDb, err error) {

	// decode
	mdb = new(MatDb)
	err = yaml.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials data:\n%v", err)
	}

	// subsets
	mdb.Solids = make(map[string]*Material)
	for _, m := range mdb.Materials {
		if _, ok := mdb.Solids[m.Name]; ok {
			return nil, chk.Err("material named %q is repeated", m.Name)
		}
		for i, p := range m.Prms {
			if p == nil || p.N == "" {
				return nil, chk.Err("parameter %d of material %q is given without name (YAML keys such as n must be quoted)", i, m.Name)
			}
		}
		switch m.Type {
		case "solid", "":
			mdb.Solids[m.Name] = m
		default:
			return nil, chk.Err("material type %q is incorrect; the only option is \"solid\"", m.Type)
		}
	}

	// alloc/init: solids
	for _, m := range mdb.Solids {
		m.Solid, err = msolid.New(m.Model)
		if err != nil {
			return nil, err
		}
		err = m.Solid.Init(ndim, pstress, m.Prms)
		if err != nil {
			return nil, chk.Err("cannot initialise material %q (model %q):\n%v", m.Name, m.Model, err)
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// String prints one material
func (o *Material) String() string {
	l := io.Sf("name=%q type=%q model=%q", o.Name, o.Type, o.Model)
	for _, p := range o.Prms {
		l += io.Sf(" %s=%g", p.N, p.V)
	}
	return l
}
