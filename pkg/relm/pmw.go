// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import (
	"math"

	"github.com/sovereign-dp/relm/internal/exactrand"
)

// PrivateMultiplicativeWeights is an online learner that maintains a
// probability-vector estimate of a histogram, answering a sequence of
// linear queries by either trusting its current estimate or, when an
// AboveThreshold-style test fires, releasing a noisy true answer and
// multiplicatively updating the estimate (spec.md §4.9).
type PrivateMultiplicativeWeights struct {
	guard budgetGuard

	epsilon  float64
	data     []int64
	alpha    float64
	numQueries int
	dataSum  int64

	// DataEst is the current probability-vector estimate of the
	// dataset, readable after Release for evaluation. It is owned by
	// the mechanism; external callers must never mutate it (spec.md
	// §9's "no cyclic structures" note), so the DataEst() accessor hands
	// back a copy, not the live slice.
	dataEst []float64

	roundEpsilon float64
	eta          float64
	hardBudget   int
	hardUsed     int
}

// NewPrivateMultiplicativeWeights constructs a PMW mechanism. data is
// captured immutably; DataEst starts as the uniform distribution
// 1/len(data).
func NewPrivateMultiplicativeWeights(epsilon float64, data []int64, alpha float64, numQueries int) (*PrivateMultiplicativeWeights, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := validateHistogram("data", data); err != nil {
		return nil, err
	}
	if err := validateOpenUnitInterval("alpha", alpha); err != nil {
		return nil, err
	}
	if err := validatePositiveInt("num_queries", numQueries); err != nil {
		return nil, err
	}

	frozen := make([]int64, len(data))
	copy(frozen, data)
	var sum int64
	for _, v := range frozen {
		sum += v
	}

	n := len(frozen)
	dataEst := make([]float64, n)
	for i := range dataEst {
		dataEst[i] = 1.0 / float64(n)
	}

	// Standard PMW regret bound: at most O(log(n)/alpha^2) "hard"
	// (threshold-triggering) rounds are needed before the estimate
	// converges to within alpha. Splitting epsilon evenly across that
	// many rounds keeps the AboveThreshold-style gate and the
	// subsequent noisy release each epsilon/(2*hardBudget)-DP, for a
	// total epsilon-DP release under basic composition (spec.md §4.12).
	hardBudget := int(math.Log(float64(n)+1)/(alpha*alpha)) + 1
	if hardBudget > numQueries {
		hardBudget = numQueries
	}
	roundEpsilon := epsilon / (2 * float64(hardBudget))
	eta := alpha / 2

	return &PrivateMultiplicativeWeights{
		guard:        newBudgetGuard("pmw"),
		epsilon:      epsilon,
		data:         frozen,
		alpha:        alpha,
		numQueries:   numQueries,
		dataSum:      sum,
		dataEst:      dataEst,
		roundEpsilon: roundEpsilon,
		eta:          eta,
		hardBudget:   hardBudget,
	}, nil
}

// DataEst returns a copy of the current probability-vector estimate.
// Safe to call both before and after Release.
func (m *PrivateMultiplicativeWeights) DataEst() []float64 {
	out := make([]float64, len(m.dataEst))
	copy(out, m.dataEst)
	return out
}

// Release answers each of the given linear queries (length n, {0,1}
// per bin), returning one value per query (spec.md §4.9).
func (m *PrivateMultiplicativeWeights) Release(queries [][]float64) ([]float64, error) {
	if err := m.guard.consume(); err != nil {
		return nil, err
	}
	if len(queries) != m.numQueries {
		return nil, &ValueError{Field: "queries", Reason: "must supply exactly num_queries linear queries"}
	}

	n := len(m.data)
	results := make([]float64, len(queries))

	for qi, q := range queries {
		if len(q) != n {
			return nil, &ValueError{Field: "queries", Reason: "each query must have length len(data)"}
		}

		trueAnswer := dotFloat(q, m.data) / float64(m.dataSum)
		estimate := dotEst(q, m.dataEst)

		fires, err := m.aboveThresholdTest(trueAnswer, estimate)
		if err != nil {
			return nil, err
		}

		if fires {
			noise, err := exactrand.Laplace(1.0/(m.roundEpsilon*float64(m.dataSum)), exactrand.DefaultPrecision)
			if err != nil {
				return nil, err
			}
			released := trueAnswer + noise
			results[qi] = released
			m.multiplicativeUpdate(q, released, estimate)
		} else {
			results[qi] = estimate
		}
	}

	return results, nil
}

// aboveThresholdTest reports whether |trueAnswer - estimate| clears
// alpha, using an AboveThreshold-style noisy comparison so the test
// itself is differentially private (spec.md §4.9 step 3).
func (m *PrivateMultiplicativeWeights) aboveThresholdTest(trueAnswer, estimate float64) (bool, error) {
	if m.hardUsed >= m.hardBudget {
		return false, nil
	}

	sensitivity := 1.0 / float64(m.dataSum)
	thresholdNoise, err := exactrand.Laplace(2*sensitivity/m.roundEpsilon, exactrand.DefaultPrecision)
	if err != nil {
		return false, err
	}
	queryNoise, err := exactrand.Laplace(4*sensitivity/m.roundEpsilon, exactrand.DefaultPrecision)
	if err != nil {
		return false, err
	}

	noisyGap := math.Abs(trueAnswer-estimate) + queryNoise
	noisyThreshold := m.alpha + thresholdNoise

	fires := noisyGap >= noisyThreshold
	if fires {
		m.hardUsed++
	}
	return fires, nil
}

// multiplicativeUpdate reweights each bin of DataEst by exp(+-eta *
// q[bin]) depending on whether the estimate under- or over-shot the
// released answer, then renormalizes (spec.md §4.9 step 4).
func (m *PrivateMultiplicativeWeights) multiplicativeUpdate(q []float64, released, estimate float64) {
	sign := 1.0
	if released < estimate {
		sign = -1.0
	}

	total := 0.0
	for i, qi := range q {
		factor := math.Exp(sign * m.eta * qi)
		m.dataEst[i] *= factor
		total += m.dataEst[i]
	}
	if total > 0 {
		for i := range m.dataEst {
			m.dataEst[i] /= total
		}
	}
}

func dotFloat(q []float64, data []int64) float64 {
	sum := 0.0
	for i, v := range q {
		sum += v * float64(data[i])
	}
	return sum
}

func dotEst(q []float64, est []float64) float64 {
	sum := 0.0
	for i, v := range q {
		sum += v * est[i]
	}
	return sum
}
