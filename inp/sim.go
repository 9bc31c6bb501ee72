// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.sim) and (.mat) JSON or YAML files
package inp

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/ghodss/yaml"

	"github.com/mehranqsb/WeaknessPlaneModel/msolid"
)

// Data holds global data for simulations
type Data struct {
	Desc     string `json:"desc"`     // description of simulation
	Matfile  string `json:"matfile"`  // materials file path
	Material string `json:"material"` // name of material to be used
	DirOut   string `json:"dirout"`   // directory for output; e.g. /tmp/wpm
	Ndim     int    `json:"ndim"`     // space dimension: 2 or 3
	Pstress  bool   `json:"pstress"`  // plane-stress
}

// SolverData holds material point solver data
//  Note: zero values of the local solver settings keep the values of the material
type SolverData struct {

	// local solver
	Tol      float64 `json:"tol"`      // tolerance on the local residuals
	MaxIt    int     `json:"maxit"`    // max number of local iterations
	MaxFlips int     `json:"maxflips"` // max number of activation/deactivation retries
	Fzero    float64 `json:"fzero"`    // relative yield value taken as zero
	Szero    float64 `json:"szero"`    // relative shear traction taken as zero
	Tangent  string  `json:"tangent"`  // "consistent" or "continuum"; empty keeps the material's choice

	// driver
	MaxSub int     `json:"maxsub"` // max number of halvings of a failed increment
	TolD   float64 `json:"told"`   // tolerance to check consistent matrix
	Silent bool    `json:"silent"` // do not show messages

	// derived
	TgMode msolid.TangentMode `json:"-"` // tangent mode
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data   Data         `json:"data"`   // stores global simulation data
	Solver SolverData   `json:"solver"` // solver data
	Path   *msolid.Path `json:"path"`   // strain path

	// derived
	DirOut    string           `json:"-"` // directory to save results
	Key       string           `json:"-"` // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	MatParams *MatDb           `json:"-"` // materials' parameters
	Mat       *Material        `json:"-"` // material used in the simulation
	Ndim      int              `json:"-"` // space dimension
	Settings  *msolid.Settings `json:"-"` // local solver settings; nil if the model has none
}

// ReadSim reads all simulation data from a .sim JSON or YAML file
func ReadSim(simfilepath, alias string, erasefiles bool) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// decode
	o = new(Simulation)
	o.Solver.SetDefault()
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.TempDir(), "wpm", fnkey)
	}

	// create directory and erase previous simulation results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// set solver constants
	err = o.Solver.PostProcess()
	if err != nil {
		return
	}

	// space dimension
	o.Ndim = o.Data.Ndim
	if o.Ndim == 0 {
		o.Ndim = 3
	}

	// path
	if o.Path == nil {
		return nil, chk.Err("ReadSim: simulation file %q must have a path", simfilepath)
	}
	err = o.Path.Init(o.Ndim)
	if err != nil {
		return
	}

	// read materials database
	matfile := o.Data.Matfile
	if filepath.IsAbs(matfile) {
		dir = ""
	}
	o.MatParams, err = ReadMat(dir, matfile, o.Ndim, o.Data.Pstress)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read materials database:\n%v", err)
	}
	o.Mat, err = o.GetMaterial(o.Data.Material)
	if err != nil {
		return
	}

	// local solver settings
	if ubj, ok := o.Mat.Solid.(*msolid.UbiJoint); ok {
		o.Settings = &ubj.Set
		err = o.Solver.Apply(o.Settings)
	}
	return
}

// GetMaterial returns the material with the given name; if name is empty and the
// database holds only one material, this material is returned
func (o *Simulation) GetMaterial(name string) (mat *Material, err error) {
	if name == "" {
		if len(o.MatParams.Materials) != 1 {
			return nil, chk.Err("material name must be given because the database has %d materials", len(o.MatParams.Materials))
		}
		return o.MatParams.Materials[0], nil
	}
	mat = o.MatParams.Get(name)
	if mat == nil {
		return nil, chk.Err("cannot find material named %q", name)
	}
	return
}

// NewDriver allocates a material point driver with the settings of this simulation
func (o *Simulation) NewDriver() (drv *msolid.Driver, err error) {
	drv = new(msolid.Driver)
	err = drv.InitWithModel(o.Mat.Solid, o.Ndim)
	if err != nil {
		return
	}
	drv.Key = o.Key
	drv.MaxSub = o.Solver.MaxSub
	drv.TolD = o.Solver.TolD
	drv.Silent = o.Solver.Silent
	return
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault set defaults values
func (o *SolverData) SetDefault() {
	o.MaxSub = 10
	o.TolD = 1e-5
}

// PostProcess performs a post-processing of the just read file
func (o *SolverData) PostProcess() (err error) {
	o.TgMode, err = msolid.ParseTangentMode(o.Tangent)
	if err != nil {
		return
	}
	if o.MaxSub < 0 || o.TolD <= 0 {
		return chk.Err("solver data is invalid: maxsub=%d told=%g", o.MaxSub, o.TolD)
	}
	return
}

// Apply overrides local solver settings with the non-zero values of this structure
func (o SolverData) Apply(set *msolid.Settings) error {
	if o.Tol > 0 {
		set.Tol = o.Tol
	}
	if o.MaxIt > 0 {
		set.MaxIt = o.MaxIt
	}
	if o.MaxFlips > 0 {
		set.MaxFlips = o.MaxFlips
	}
	if o.Fzero > 0 {
		set.Fzero = o.Fzero
	}
	if o.Szero > 0 {
		set.Szero = o.Szero
	}
	if o.Tangent != "" {
		set.Tangent = o.TgMode
	}
	return set.Check()
}
