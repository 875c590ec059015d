// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import (
	"fmt"

	"github.com/sovereign-dp/relm/internal/exactrand"
)

// AboveThreshold draws a single noisy threshold and reports the index
// of the first query whose noisy answer exceeds it (spec.md §4.7).
type AboveThreshold struct {
	guard budgetGuard

	epsilon     float64
	sensitivity float64
	threshold   float64
}

// NewAboveThreshold constructs an AboveThreshold mechanism.
func NewAboveThreshold(epsilon, sensitivity, threshold float64) (*AboveThreshold, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := validateSensitivity(sensitivity); err != nil {
		return nil, err
	}
	return &AboveThreshold{
		guard:       newBudgetGuard("above_threshold"),
		epsilon:     epsilon,
		sensitivity: sensitivity,
		threshold:   threshold,
	}, nil
}

// Release draws T_hat = threshold + Lap(2*sensitivity/epsilon) once,
// then for each query q_i draws an independent nu_i ~ Lap(4*sensitivity
// /epsilon) and returns the smallest i with q_i + nu_i >= T_hat.
func (m *AboveThreshold) Release(queries []float64) (int, error) {
	if err := m.guard.consume(); err != nil {
		return 0, err
	}

	tHat, err := noisyThreshold(m.threshold, m.sensitivity, m.epsilon)
	if err != nil {
		return 0, err
	}

	for i, q := range queries {
		nu, err := exactrand.Laplace(4*m.sensitivity/m.epsilon, exactrand.DefaultPrecision)
		if err != nil {
			return 0, err
		}
		if q+nu >= tHat {
			return i, nil
		}
	}
	return 0, &ValueError{Field: "queries", Reason: "stream exhausted before any query rose above threshold"}
}

// SparseIndicator returns the indices of the first `cutoff` queries
// whose noisy answer rises above a single noisy threshold (spec.md
// §4.7). The stream must contain at least `cutoff` above-threshold
// events; a shorter stream fails with a ValueError rather than
// silently returning fewer results (spec.md §9, Open Question: this
// repo takes the strict reading).
type SparseIndicator struct {
	guard budgetGuard

	epsilon     float64
	sensitivity float64
	threshold   float64
	cutoff      int
}

// NewSparseIndicator constructs a SparseIndicator mechanism.
func NewSparseIndicator(epsilon, sensitivity, threshold float64, cutoff int) (*SparseIndicator, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := validateSensitivity(sensitivity); err != nil {
		return nil, err
	}
	if err := validatePositiveInt("cutoff", cutoff); err != nil {
		return nil, err
	}
	return &SparseIndicator{
		guard:       newBudgetGuard("sparse_indicator"),
		epsilon:     epsilon,
		sensitivity: sensitivity,
		threshold:   threshold,
		cutoff:      cutoff,
	}, nil
}

// Release returns exactly `cutoff` indices.
func (m *SparseIndicator) Release(queries []float64) ([]int, error) {
	if err := m.guard.consume(); err != nil {
		return nil, err
	}

	tHat, err := noisyThreshold(m.threshold, m.sensitivity, m.epsilon)
	if err != nil {
		return nil, err
	}

	indices := make([]int, 0, m.cutoff)
	for i, q := range queries {
		nu, err := exactrand.Laplace(4*float64(m.cutoff)*m.sensitivity/m.epsilon, exactrand.DefaultPrecision)
		if err != nil {
			return nil, err
		}
		if q+nu >= tHat {
			indices = append(indices, i)
			if len(indices) == m.cutoff {
				return indices, nil
			}
		}
	}
	return nil, &ValueError{Field: "queries", Reason: fmt.Sprintf("stream of length %d contained only %d above-threshold events, need %d", len(queries), len(indices), m.cutoff)}
}

// SparseNumeric extends SparseIndicator by additionally releasing a
// noisy numeric answer for each of the cutoff above-threshold indices
// (spec.md §4.7).
type SparseNumeric struct {
	guard budgetGuard

	epsilon     float64
	sensitivity float64
	threshold   float64
	cutoff      int
}

// NewSparseNumeric constructs a SparseNumeric mechanism.
func NewSparseNumeric(epsilon, sensitivity, threshold float64, cutoff int) (*SparseNumeric, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := validateSensitivity(sensitivity); err != nil {
		return nil, err
	}
	if err := validatePositiveInt("cutoff", cutoff); err != nil {
		return nil, err
	}
	return &SparseNumeric{
		guard:       newBudgetGuard("sparse_numeric"),
		epsilon:     epsilon,
		sensitivity: sensitivity,
		threshold:   threshold,
		cutoff:      cutoff,
	}, nil
}

// Release returns (indices, values), both of length exactly `cutoff`:
// the first `cutoff` above-threshold indices, and a fresh Lap(2*cutoff*
// sensitivity/epsilon)-noised answer released for each.
func (m *SparseNumeric) Release(queries []float64) ([]int, []float64, error) {
	if err := m.guard.consume(); err != nil {
		return nil, nil, err
	}

	tHat, err := noisyThreshold(m.threshold, m.sensitivity, m.epsilon)
	if err != nil {
		return nil, nil, err
	}

	indices := make([]int, 0, m.cutoff)
	values := make([]float64, 0, m.cutoff)
	for i, q := range queries {
		nu, err := exactrand.Laplace(4*float64(m.cutoff)*m.sensitivity/m.epsilon, exactrand.DefaultPrecision)
		if err != nil {
			return nil, nil, err
		}
		if q+nu >= tHat {
			numericNoise, err := exactrand.Laplace(2*float64(m.cutoff)*m.sensitivity/m.epsilon, exactrand.DefaultPrecision)
			if err != nil {
				return nil, nil, err
			}
			indices = append(indices, i)
			values = append(values, q+numericNoise)
			if len(indices) == m.cutoff {
				return indices, values, nil
			}
		}
	}
	return nil, nil, &ValueError{Field: "queries", Reason: fmt.Sprintf("stream of length %d contained only %d above-threshold events, need %d", len(queries), len(indices), m.cutoff)}
}

// noisyThreshold draws the one-time noisy threshold T_hat =
// threshold + Lap(2*sensitivity/epsilon) shared by every sparse-vector
// variant.
func noisyThreshold(threshold, sensitivity, epsilon float64) (float64, error) {
	noise, err := exactrand.Laplace(2*sensitivity/epsilon, exactrand.DefaultPrecision)
	if err != nil {
		return 0, err
	}
	return threshold + noise, nil
}
