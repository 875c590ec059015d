package statcheck

import (
	"math/rand"
	"testing"
)

func TestTwoSampleIdenticalDistributions(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	a := make([]float64, 500)
	b := make([]float64, 500)
	for i := range a {
		a[i] = src.NormFloat64()
		b[i] = src.NormFloat64()
	}

	res := TwoSample(a, b)
	if res.Reject(0.01) {
		t.Errorf("expected identically distributed samples to pass, got D=%v p=%v", res.Statistic, res.PValue)
	}
}

func TestTwoSampleDifferentDistributions(t *testing.T) {
	src := rand.New(rand.NewSource(2))
	a := make([]float64, 500)
	b := make([]float64, 500)
	for i := range a {
		a[i] = src.NormFloat64()
		b[i] = src.NormFloat64() + 5
	}

	res := TwoSample(a, b)
	if !res.Reject(0.01) {
		t.Errorf("expected shifted samples to be rejected, got D=%v p=%v", res.Statistic, res.PValue)
	}
}
