// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import (
	"math"

	"github.com/sovereign-dp/relm/internal/telemetry"
)

// PermuteAndFlipMechanism is McKenna & Sheldon's 2020 improved
// selection mechanism: walk a random permutation of OutputRange,
// flipping a biased coin at each candidate, and return the first
// acceptance (spec.md §4.5). It terminates with probability 1 and
// dominates the exponential mechanism's expected error.
type PermuteAndFlipMechanism struct {
	guard budgetGuard

	epsilon     float64
	utility     ScoreFunc
	sensitivity float64
	outputRange []float64
}

// NewPermuteAndFlipMechanism constructs a Permute-and-Flip mechanism.
func NewPermuteAndFlipMechanism(epsilon float64, utility ScoreFunc, sensitivity float64, outputRange []float64) (*PermuteAndFlipMechanism, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := validateSensitivity(sensitivity); err != nil {
		return nil, err
	}
	if utility == nil {
		return nil, typeErr("utility_function", "must not be nil")
	}
	if len(outputRange) == 0 {
		return nil, valueErr("output_range", "must not be empty")
	}
	return &PermuteAndFlipMechanism{
		guard:       newBudgetGuard("permute_and_flip"),
		epsilon:     epsilon,
		utility:     utility,
		sensitivity: sensitivity,
		outputRange: outputRange,
	}, nil
}

// Release walks a uniformly random permutation of OutputRange,
// returning the first candidate whose Bernoulli(exp(epsilon*(u -
// u_max)/(2*sensitivity))) coin comes up heads.
func (m *PermuteAndFlipMechanism) Release(data []float64) (float64, error) {
	if err := m.guard.consume(); err != nil {
		return 0, err
	}

	scores, err := m.utility.Score(data)
	if err != nil {
		return 0, err
	}
	if len(scores) != len(m.outputRange) {
		return 0, valueErr("utility_function", "must return one score per output_range entry")
	}

	uMax := math.Inf(-1)
	for _, u := range scores {
		if u > uMax {
			uMax = u
		}
	}

	perm, err := randomPermutation(len(m.outputRange))
	if err != nil {
		return 0, err
	}

	for i, idx := range perm {
		acceptProb := math.Exp(m.epsilon * (scores[idx] - uMax) / (2 * m.sensitivity))
		coin, err := uniformFloat64()
		if err != nil {
			return 0, err
		}
		if coin < acceptProb {
			telemetry.RecordIterations("permute_and_flip", i+1)
			return m.outputRange[idx], nil
		}
	}
	// Index uMax itself always accepts with probability 1, so the walk
	// is guaranteed to terminate before exhausting the permutation.
	return m.outputRange[perm[len(perm)-1]], nil
}

// randomPermutation returns a uniformly random permutation of
// [0, n) via the Fisher-Yates shuffle driven by crypto/rand.
func randomPermutation(n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := uniformIndex(i + 1)
		if err != nil {
			return nil, err
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm, nil
}
