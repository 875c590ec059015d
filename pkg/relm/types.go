// Copyright 2026 Sovereign-Mohawk Core Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package relm implements differentially private release mechanisms:
// exact-precision noise samplers, selection mechanisms, and adaptive
// stateful mechanisms, each exhausted after a single Release call.
package relm

// ScoreFunc is the capability a selection mechanism uses to rate
// candidate outputs against a dataset (spec.md §9's "dynamic utility
// function" design note). Score must return one value per entry of the
// mechanism's OutputRange, in the same order, and must be L∞-sensitive
// with the sensitivity the mechanism was constructed with. The
// mechanism never inspects a ScoreFunc's internals — it is a pure
// capability boundary.
type ScoreFunc interface {
	Score(data []float64) ([]float64, error)
}

// ScoreFuncFromFunc adapts a plain function to ScoreFunc.
type ScoreFuncFromFunc func(data []float64) ([]float64, error)

// Score implements ScoreFunc.
func (f ScoreFuncFromFunc) Score(data []float64) ([]float64, error) {
	return f(data)
}

// SamplingMethod selects among the exponential mechanism's three
// interchangeable sampling strategies (spec.md §4.4, §9). Modeled as a
// closed tagged variant rather than a string switch, since the set of
// strategies is fixed.
type SamplingMethod int

const (
	// MethodWeightedIndex computes log-weights, stabilizes by
	// subtracting the max, exponentiates, normalizes, and samples from
	// the cumulative distribution. O(k) time, O(k) memory.
	MethodWeightedIndex SamplingMethod = iota
	// MethodGumbelTrick draws one Gumbel(0,1) variate per candidate and
	// returns the argmax of score + noise. O(k) time, O(1) memory.
	MethodGumbelTrick
	// MethodSampleAndFlip proposes a candidate uniformly and accepts it
	// with probability exp(ε(u-u_max)/2Δ), retrying on rejection.
	// Unbounded worst-case time; used for auditability, since it needs
	// no floating-point exponential summation.
	MethodSampleAndFlip
)

func (m SamplingMethod) String() string {
	switch m {
	case MethodWeightedIndex:
		return "weighted_index"
	case MethodGumbelTrick:
		return "gumbel_trick"
	case MethodSampleAndFlip:
		return "sample_and_flip"
	default:
		return "unknown"
	}
}
