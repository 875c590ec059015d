// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import (
	"github.com/sovereign-dp/relm/internal/exactrand"
)

// LaplaceMechanism adds exact-precision Laplace(0, sensitivity/epsilon)
// noise to every element of a numeric dataset (spec.md §4.1).
type LaplaceMechanism struct {
	guard budgetGuard

	epsilon     float64
	sensitivity float64
	precision   uint
}

// NewLaplaceMechanism constructs a Laplace mechanism. precision is the
// number of bits after the binary point at which noise is drawn
// exactly; pass 0 to use the default of 35.
func NewLaplaceMechanism(epsilon, sensitivity float64, precision int) (*LaplaceMechanism, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := validateSensitivity(sensitivity); err != nil {
		return nil, err
	}
	if precision < 0 {
		return nil, valueErr("precision", "must be a positive integer")
	}
	p := uint(precision)
	if p == 0 {
		p = exactrand.DefaultPrecision
	}

	return &LaplaceMechanism{
		guard:       newBudgetGuard("laplace"),
		epsilon:     epsilon,
		sensitivity: sensitivity,
		precision:   p,
	}, nil
}

// Release returns data + L, where L is an independent exact Laplace(0,
// sensitivity/epsilon) variate per element. A mechanism can only be
// released once; every subsequent call returns a RuntimeError.
func (m *LaplaceMechanism) Release(data []float64) ([]float64, error) {
	if err := m.guard.consume(); err != nil {
		return nil, err
	}

	scale := m.sensitivity / m.epsilon
	out := make([]float64, len(data))
	for i, x := range data {
		noise, err := exactrand.Laplace(scale, m.precision)
		if err != nil {
			return nil, err
		}
		out[i] = x + noise
	}
	return out, nil
}
