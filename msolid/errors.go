// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// integration failures; the caller must retry with a smaller strain increment
var (
	// ErrNotConverged indicates that the local Newton-Raphson exhausted its iterations
	ErrNotConverged = errors.New("msolid: local solver did not converge")

	// ErrActivation indicates that the loading flag kept flipping
	ErrActivation = errors.New("msolid: activation/deactivation did not settle")

	// ErrSingular indicates a singular local Jacobian
	ErrSingular = errors.New("msolid: singular local Jacobian")
)

// errApex indicates that the slip direction reversed during the local iterations; the
// return to the apex is used instead
var errApex = errors.New("msolid: slip direction reversed")

// IntegrationError wraps an integration failure with the integration point data
type IntegrationError struct {
	Model string  // model name
	Eid   int     // element id
	Ipid  int     // integration point id
	It    int     // number of iterations performed
	Res   float64 // last residual norm
	Err   error   // cause
}

// Error returns the error message
func (o *IntegrationError) Error() string {
	return io.Sf("%s: eid=%d ipid=%d: %v (it=%d res=%g)", o.Model, o.Eid, o.Ipid, o.Err, o.It, o.Res)
}

// Unwrap returns the cause
func (o *IntegrationError) Unwrap() error {
	return o.Err
}

// IsIntegrationFailure tells whether err requests a smaller increment
func IsIntegrationFailure(err error) bool {
	return errors.Is(err, ErrNotConverged) || errors.Is(err, ErrActivation) || errors.Is(err, ErrSingular)
}
