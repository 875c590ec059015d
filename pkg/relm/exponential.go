// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/sovereign-dp/relm/internal/exactrand"
	"github.com/sovereign-dp/relm/internal/telemetry"
)

// ExponentialMechanism samples a candidate from OutputRange with
// probability proportional to exp(epsilon * u(D, candidate) / (2 *
// sensitivity)), using one of three interchangeable sampling methods
// (spec.md §4.4).
type ExponentialMechanism struct {
	guard budgetGuard

	epsilon     float64
	utility     ScoreFunc
	sensitivity float64
	outputRange []float64
	method      SamplingMethod
}

// NewExponentialMechanism constructs an exponential mechanism over a
// finite output range.
func NewExponentialMechanism(epsilon float64, utility ScoreFunc, sensitivity float64, outputRange []float64, method SamplingMethod) (*ExponentialMechanism, error) {
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
	return &ExponentialMechanism{
		guard:       newBudgetGuard("exponential_" + method.String()),
		epsilon:     epsilon,
		utility:     utility,
		sensitivity: sensitivity,
		outputRange: outputRange,
		method:      method,
	}, nil
}

// Release samples one element of OutputRange (spec.md §4.4).
func (m *ExponentialMechanism) Release(data []float64) (float64, error) {
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

	switch m.method {
	case MethodGumbelTrick:
		return sampleGumbelTrick(scores, m.outputRange, m.epsilon, m.sensitivity)
	case MethodSampleAndFlip:
		return sampleAndFlip(scores, m.outputRange, m.epsilon, m.sensitivity, "exponential_sample_and_flip")
	default:
		return sampleWeightedIndex(scores, m.outputRange, m.epsilon, m.sensitivity)
	}
}

// sampleWeightedIndex computes log-weights, subtracts the max for
// numerical stability, exponentiates, normalizes, and samples from the
// cumulative distribution. O(k) time, O(k) memory.
func sampleWeightedIndex(scores, outputRange []float64, epsilon, sensitivity float64) (float64, error) {
	logWeights := make([]float64, len(scores))
	maxLogWeight := math.Inf(-1)
	for i, u := range scores {
		lw := epsilon * u / (2 * sensitivity)
		logWeights[i] = lw
		if lw > maxLogWeight {
			maxLogWeight = lw
		}
	}

	weights := make([]float64, len(logWeights))
	total := 0.0
	for i, lw := range logWeights {
		w := math.Exp(lw - maxLogWeight)
		weights[i] = w
		total += w
	}

	u, err := uniformFloat64()
	if err != nil {
		return 0, err
	}
	target := u * total

	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			return outputRange[i], nil
		}
	}
	return outputRange[len(outputRange)-1], nil
}

// sampleGumbelTrick draws one Gumbel(0,1) variate per candidate and
// returns the argmax of score + noise. O(k) time, O(1) extra memory.
func sampleGumbelTrick(scores, outputRange []float64, epsilon, sensitivity float64) (float64, error) {
	bestIdx := 0
	bestVal := math.Inf(-1)
	for i, u := range scores {
		g, err := exactrand.Gumbel(exactrand.DefaultPrecision)
		if err != nil {
			return 0, err
		}
		v := epsilon*u/(2*sensitivity) + g
		if v > bestVal {
			bestVal = v
			bestIdx = i
		}
	}
	return outputRange[bestIdx], nil
}

// sampleAndFlip proposes a candidate uniformly and accepts it with
// probability exp(epsilon*(u-u_max)/(2*sensitivity)), retrying on
// rejection. This needs no floating-point exponential summation over
// the whole range, which is why the source library keeps it around for
// auditability even though its worst-case time is unbounded.
func sampleAndFlip(scores, outputRange []float64, epsilon, sensitivity float64, telemetryKind string) (float64, error) {
	maxScore := math.Inf(-1)
	for _, u := range scores {
		if u > maxScore {
			maxScore = u
		}
	}

	k := len(outputRange)
	iterations := 0
	for {
		iterations++
		idx, err := uniformIndex(k)
		if err != nil {
			return 0, err
		}
		acceptProb := math.Exp(epsilon * (scores[idx] - maxScore) / (2 * sensitivity))
		coin, err := uniformFloat64()
		if err != nil {
			return 0, err
		}
		if coin < acceptProb {
			telemetry.RecordIterations(telemetryKind, iterations)
			return outputRange[idx], nil
		}
	}
}

// uniformFloat64 draws a uniform value in (0,1) from crypto/rand.
func uniformFloat64() (float64, error) {
	const bits = 53
	max := new(big.Int).Lsh(big.NewInt(1), bits)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, err
	}
	return (float64(n.Int64()) + 0.5) / float64(int64(1)<<bits), nil
}

// uniformIndex draws a uniform integer in [0, k).
func uniformIndex(k int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(k)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
