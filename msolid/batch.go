// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"context"
	"errors"

	"github.com/cpmech/gosl/chk"
	"golang.org/x/sync/errgroup"
)

// UpdatePoints updates the states of many integration points concurrently
//  mdl      -- model shared by all points (must not be modified while running)
//  states   -- one state per point; each one is only modified if its update succeeds
//  Δε       -- strain increments [npoints][nsig]
//  nworkers -- max number of concurrent updates; ≤ 0 means one per point
//  Note: the first failure is returned as *IntegrationError with Ipid = point index
func UpdatePoints(ctx context.Context, mdl Small, states []*State, Δε [][]float64, nworkers int) error {
	if len(states) != len(Δε) {
		return chk.Err("number of states and strain increments must be equal. %d != %d", len(states), len(Δε))
	}
	g, ctx := errgroup.WithContext(ctx)
	if nworkers > 0 {
		g.SetLimit(nworkers)
	}
	for i := range states {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stmp := states[i].GetCopy()
			err := mdl.Update(stmp, nil, Δε[i], -1, i, 0)
			if err != nil {
				var ierr *IntegrationError
				if errors.As(err, &ierr) {
					return err
				}
				return &IntegrationError{Eid: -1, Ipid: i, Err: err}
			}
			states[i].Set(stmp)
			return nil
		})
	}
	return g.Wait()
}
