package relm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sovereign-dp/relm/internal/statcheck"
)

// peakUtility scores each candidate by how close it is to a single
// preferred value, so a correctly biased sampler should pick that value
// far more often than chance.
type peakUtility struct {
	outputRange []float64
	peak        float64
}

func (p peakUtility) Score(_ []float64) ([]float64, error) {
	scores := make([]float64, len(p.outputRange))
	for i, v := range p.outputRange {
		if v == p.peak {
			scores[i] = 10
		} else {
			scores[i] = 0
		}
	}
	return scores, nil
}

// tentUtility scores each candidate by its negative distance from the
// data's mean, producing exp(epsilon*u(x)/(2*sensitivity)) ∝ exp(-|x|/2)
// under epsilon=1, sensitivity=1 — the discretized shape the exponential
// mechanism and permute-and-flip should both reduce to Laplace(0,2) over.
type tentUtility struct {
	outputRange []float64
}

func (t tentUtility) Score(data []float64) ([]float64, error) {
	var mean float64
	for _, v := range data {
		mean += v
	}
	if len(data) > 0 {
		mean /= float64(len(data))
	}
	scores := make([]float64, len(t.outputRange))
	for i, v := range t.outputRange {
		scores[i] = -math.Abs(v - mean)
	}
	return scores, nil
}

func tentOutputRange() []float64 {
	const bound, step = 8.0, 0.05
	n := int(2*bound/step) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = -bound + float64(i)*step
	}
	return out
}

func TestNewExponentialMechanismValidation(t *testing.T) {
	outputRange := []float64{1, 2, 3}
	util := peakUtility{outputRange: outputRange, peak: 2}

	if _, err := NewExponentialMechanism(0, util, 1.0, outputRange, MethodWeightedIndex); err == nil {
		t.Fatal("expected error for zero epsilon")
	}
	if _, err := NewExponentialMechanism(1.0, nil, 1.0, outputRange, MethodWeightedIndex); err == nil {
		t.Fatal("expected error for nil utility function")
	}
	if _, err := NewExponentialMechanism(1.0, util, 1.0, nil, MethodWeightedIndex); err == nil {
		t.Fatal("expected error for empty output range")
	}
}

func TestExponentialMechanismFavorsHighUtility(t *testing.T) {
	outputRange := []float64{1, 2, 3, 4, 5}
	util := peakUtility{outputRange: outputRange, peak: 3}

	for _, method := range []SamplingMethod{MethodWeightedIndex, MethodGumbelTrick, MethodSampleAndFlip} {
		t.Run(method.String(), func(t *testing.T) {
			hits := 0
			const trials = 300
			for i := 0; i < trials; i++ {
				m, err := NewExponentialMechanism(2.0, util, 1.0, outputRange, method)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				out, err := m.Release(nil)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if out == 3 {
					hits++
				}
			}
			if hits < trials/2 {
				t.Errorf("expected peak candidate to dominate, got %d/%d", hits, trials)
			}
		})
	}
}

func TestExponentialMechanismMatchesLaplaceDistribution(t *testing.T) {
	outputRange := tentOutputRange()
	util := tentUtility{outputRange: outputRange}
	const trials = 2000

	for _, method := range []SamplingMethod{MethodWeightedIndex, MethodGumbelTrick, MethodSampleAndFlip} {
		t.Run(method.String(), func(t *testing.T) {
			samples := make([]float64, trials)
			for i := 0; i < trials; i++ {
				m, err := NewExponentialMechanism(1.0, util, 1.0, outputRange, method)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				out, err := m.Release([]float64{0})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				samples[i] = out
			}

			reference := referenceLaplace(rand.New(rand.NewSource(17)), 2.0, trials)
			res := statcheck.TwoSample(samples, reference)
			if res.Reject(0.01) {
				t.Errorf("%s samples diverged from the textbook Laplace(0,2) distribution: D=%v p=%v", method, res.Statistic, res.PValue)
			}
		})
	}
}

func TestExponentialMechanismReleaseOnce(t *testing.T) {
	outputRange := []float64{1, 2, 3}
	util := peakUtility{outputRange: outputRange, peak: 2}
	m, err := NewExponentialMechanism(1.0, util, 1.0, outputRange, MethodWeightedIndex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Release(nil); err != nil {
		t.Fatalf("first release failed: %v", err)
	}
	if _, err := m.Release(nil); err == nil {
		t.Fatal("expected second release to fail")
	}
}
