// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import (
	"math"

	"github.com/sovereign-dp/relm/internal/exactrand"
)

// SnappingMechanism implements Mironov's 2012 snapping mechanism: clamp
// to [-B, B], add Laplace(1/epsilon') noise, snap to the nearest point
// on a power-of-two lattice whose granularity exceeds float64
// reconstruction precision, then re-clamp (spec.md §4.3).
type SnappingMechanism struct {
	guard budgetGuard

	epsilon      float64
	bound        float64
	effectiveEps float64
	lambda       float64 // lattice granularity, 2^-precision
	precision    uint
}

// NewSnappingMechanism constructs a snapping mechanism with output
// bound B (the released value is always re-clamped to [-B, B]).
func NewSnappingMechanism(epsilon, bound float64) (*SnappingMechanism, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if bound <= 0 {
		return nil, valueErr("B", "must be positive")
	}

	const precision = exactrand.DefaultPrecision
	// Account for clamping and snapping error: scale epsilon down so
	// that the combined release remains epsilon-DP. Mironov's
	// correction uses epsilon' = epsilon / (1 + 2^(2-precision) * B)
	// to absorb the worst-case lattice rounding at the boundary.
	effectiveEps := epsilon / (1.0 + math.Ldexp(bound, 2-precision))
	// lambda is the lattice step 2^-precision; it does not depend on B
	// or epsilon.
	lambda := math.Ldexp(1.0, -precision)

	return &SnappingMechanism{
		guard:        newBudgetGuard("snapping"),
		epsilon:      epsilon,
		bound:        bound,
		effectiveEps: effectiveEps,
		lambda:       lambda,
		precision:    precision,
	}, nil
}

// Release clamps x to [-B, B], adds Laplace(1/epsilon') noise, snaps to
// the lattice, and re-clamps to [-B, B].
func (m *SnappingMechanism) Release(x float64) (float64, error) {
	if err := m.guard.consume(); err != nil {
		return 0, err
	}

	clamped := clamp(x, m.bound)
	noise, err := exactrand.Laplace(1.0/m.effectiveEps, m.precision)
	if err != nil {
		return 0, err
	}
	noisy := clamped + noise
	snapped := snapToLattice(noisy, m.lambda)
	return clamp(snapped, m.bound), nil
}

func clamp(x, bound float64) float64 {
	if x > bound {
		return bound
	}
	if x < -bound {
		return -bound
	}
	return x
}

// snapToLattice rounds x to the nearest multiple of lambda, a power of
// two, so the result carries no mantissa bits finer than the lattice
// granularity.
func snapToLattice(x, lambda float64) float64 {
	return math.Round(x/lambda) * lambda
}
