// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import (
	"fmt"
	"math"

	"github.com/sovereign-dp/relm/internal/memo"
)

// SmallDB releases a synthetic histogram that approximately answers a
// batch of linear queries, by sampling (via a Metropolis walk
// equivalent in distribution to the exponential mechanism) from the
// combinatorially large space of histograms with a fixed total mass
// (spec.md §4.8, §4.11).
type SmallDB struct {
	guard budgetGuard

	epsilon float64
	data    []int64
	alpha   float64
	dataSum int64
}

// NewSmallDB constructs a SmallDB mechanism. data is captured
// immutably at construction (spec.md §3's lifecycle rule); it must be a
// non-negative integer histogram.
func NewSmallDB(epsilon float64, data []int64, alpha float64) (*SmallDB, error) {
	if err := validateEpsilon(epsilon); err != nil {
		return nil, err
	}
	if err := validateHistogram("data", data); err != nil {
		return nil, err
	}
	if err := validateOpenUnitInterval("alpha", alpha); err != nil {
		return nil, err
	}

	frozen := make([]int64, len(data))
	copy(frozen, data)
	var sum int64
	for _, v := range frozen {
		sum += v
	}

	return &SmallDB{
		guard:   newBudgetGuard("small_db"),
		epsilon: epsilon,
		data:    frozen,
		alpha:   alpha,
		dataSum: sum,
	}, nil
}

// Release takes an m x n {0,1} query matrix (m linear queries over a
// universe of size n = len(data)) and returns a synthetic histogram of
// length n whose total mass is floor(m/alpha^2) + 1, approximately
// preserving every query's answer (spec.md §4.8).
//
// Per spec.md §9's Open Question, the error-bound check uses |D| of the
// *original* dataset captured at construction, not the synthetic
// output's mass — this mirrors the source library's test, which reads
// `data.sum()` rather than the release's own sum.
func (m *SmallDB) Release(queries [][]float64) ([]int64, error) {
	if err := m.guard.consume(); err != nil {
		return nil, err
	}

	n := len(m.data)
	for qi, q := range queries {
		if len(q) != n {
			return nil, &ValueError{Field: "queries", Reason: fmt.Sprintf("row %d has length %d, want %d", qi, len(q), n)}
		}
		for _, v := range q {
			if v < 0 || v > 1 {
				return nil, &ValueError{Field: "queries", Reason: fmt.Sprintf("entries must lie in [0,1], got %v", v)}
			}
		}
	}

	s := int64(float64(len(queries))/(m.alpha*m.alpha)) + 1

	trueAnswers := make([]float64, len(queries))
	for qi, q := range queries {
		trueAnswers[qi] = dotInt(q, m.data) / float64(m.dataSum)
	}

	candidate := initialCandidate(n, s)
	cache, err := memo.NewUtilityCache(4096)
	if err != nil {
		return nil, err
	}
	sensitivity := 1.0 / float64(m.dataSum)

	utilityOf := func(h []int64) float64 {
		key := memo.Fingerprint(h)
		return cache.GetOrCompute(key, func() float64 {
			return -worstCaseError(queries, trueAnswers, h, s)
		})
	}

	steps := metropolisSteps(n, len(queries), m.alpha)
	currentUtility := utilityOf(candidate)
	for step := 0; step < steps; step++ {
		proposal, err := proposeMove(candidate)
		if err != nil {
			return nil, err
		}
		proposalUtility := utilityOf(proposal)

		accept := proposalUtility >= currentUtility
		if !accept {
			ratio := math.Exp(m.epsilon * (proposalUtility - currentUtility) / (2 * sensitivity))
			coin, err := uniformFloat64()
			if err != nil {
				return nil, err
			}
			accept = coin < ratio
		}
		if accept {
			candidate = proposal
			currentUtility = proposalUtility
		}
	}

	return candidate, nil
}

// initialCandidate spreads mass s as evenly as possible over n bins.
func initialCandidate(n int, s int64) []int64 {
	h := make([]int64, n)
	base := s / int64(n)
	remainder := s % int64(n)
	for i := range h {
		h[i] = base
		if int64(i) < remainder {
			h[i]++
		}
	}
	return h
}

// proposeMove moves one unit of mass from a random occupied bin to a
// random bin, preserving total mass s.
func proposeMove(h []int64) ([]int64, error) {
	occupied := make([]int, 0, len(h))
	for i, v := range h {
		if v > 0 {
			occupied = append(occupied, i)
		}
	}
	if len(occupied) == 0 {
		return append([]int64(nil), h...), nil
	}

	srcIdx, err := uniformIndex(len(occupied))
	if err != nil {
		return nil, err
	}
	src := occupied[srcIdx]
	dst, err := uniformIndex(len(h))
	if err != nil {
		return nil, err
	}

	out := append([]int64(nil), h...)
	out[src]--
	out[dst]++
	return out, nil
}

// worstCaseError computes max_q |trueAnswer_q - q.h/s|.
func worstCaseError(queries [][]float64, trueAnswers []float64, h []int64, s int64) float64 {
	worst := 0.0
	for qi, q := range queries {
		candidateAnswer := dotInt(q, h) / float64(s)
		err := math.Abs(trueAnswers[qi] - candidateAnswer)
		if err > worst {
			worst = err
		}
	}
	return worst
}

func dotInt(q []float64, h []int64) float64 {
	sum := 0.0
	for i, v := range q {
		sum += v * float64(h[i])
	}
	return sum
}

// metropolisSteps picks a walk length sufficient to mix across the
// candidate space the error bound (spec.md §4.8) is derived over.
func metropolisSteps(n, numQueries int, alpha float64) int {
	base := float64(n) * math.Log(float64(n)+1) * math.Log(float64(numQueries)+2) / (alpha * alpha)
	steps := int(base)
	if steps < 2000 {
		steps = 2000
	}
	if steps > 200000 {
		steps = 200000
	}
	return steps
}
