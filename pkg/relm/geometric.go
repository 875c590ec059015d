// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import "github.com/sovereign-dp/relm/internal/exactrand"

// GeometricMechanism adds an independent two-sided geometric variate to
// each element of an integer dataset (spec.md §4.2). It is the integer
// analog of LaplaceMechanism and requires sensitivity 1 adjacency.
type GeometricMechanism struct {
	guard budgetGuard

	epsilon     float64
	sensitivity float64
}

// NewGeometricMechanism constructs a geometric mechanism.
func NewGeometricMechanism(epsilon, sensitivity float64) (*GeometricMechanism, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := validateSensitivity(sensitivity); err != nil {
		return nil, err
	}
	return &GeometricMechanism{
		guard:       newBudgetGuard("geometric"),
		epsilon:     epsilon,
		sensitivity: sensitivity,
	}, nil
}

// Release returns data + Z, where Z = X - Y and X, Y are independent
// Geom(1 - e^(-epsilon/sensitivity)) draws.
func (m *GeometricMechanism) Release(data []int64) ([]int64, error) {
	if err := m.guard.consume(); err != nil {
		return nil, err
	}

	effectiveEpsilon := m.epsilon / m.sensitivity
	out := make([]int64, len(data))
	for i, x := range data {
		z, err := exactrand.TwoSidedGeometric(effectiveEpsilon)
		if err != nil {
			return nil, err
		}
		out[i] = x + z
	}
	return out, nil
}
