// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import "github.com/sovereign-dp/relm/internal/exactrand"

// ReportNoisyMax adds independent exact-precision Laplace(sensitivity/
// epsilon) noise to each entry of a numeric vector and returns the
// argmax index (spec.md §4.6).
type ReportNoisyMax struct {
	guard budgetGuard

	epsilon     float64
	sensitivity float64
	precision   uint
}

// NewReportNoisyMax constructs a Report-Noisy-Max mechanism with
// implicit sensitivity 1, matching the source library's signature
// (epsilon, precision).
func NewReportNoisyMax(epsilon float64, precision int) (*ReportNoisyMax, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if precision < 0 {
		return nil, valueErr("precision", "must be a positive integer")
	}
	p := uint(precision)
	if p == 0 {
		p = exactrand.DefaultPrecision
	}
	return &ReportNoisyMax{
		guard:       newBudgetGuard("report_noisy_max"),
		epsilon:     epsilon,
		sensitivity: 1.0,
		precision:   p,
	}, nil
}

// Release perturbs every entry of data with independent exact Laplace
// noise and returns the index of the largest perturbed value.
func (m *ReportNoisyMax) Release(data []float64) (int, error) {
	if err := m.guard.consume(); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, valueErr("data", "must not be empty")
	}

	scale := m.sensitivity / m.epsilon
	bestIdx := 0
	bestVal := 0.0
	for i, x := range data {
		noise, err := exactrand.Laplace(scale, m.precision)
		if err != nil {
			return 0, err
		}
		v := x + noise
		if i == 0 || v > bestVal {
			bestVal = v
			bestIdx = i
		}
	}
	return bestIdx, nil
}
