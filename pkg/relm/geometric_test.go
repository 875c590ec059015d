package relm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sovereign-dp/relm/internal/statcheck"
)

// referenceGeom1 draws one Geom(1-e^-epsilon) variate on {1,2,3,...} via
// inverse-CDF over math/rand, independent of internal/exactrand.
func referenceGeom1(src *rand.Rand, epsilon float64) int64 {
	v := src.Float64()
	k := int64(math.Ceil(math.Log(1-v) / -epsilon))
	if k < 1 {
		k = 1
	}
	return k
}

// referenceTwoSidedGeometric draws n independent X-Y variates, X,Y ~
// Geom(1-e^-epsilon), entirely outside the mechanism's own sampler — a
// systematic bug in exactrand.TwoSidedGeometric's scale or CDF inversion
// has no way to also show up in this reference.
func referenceTwoSidedGeometric(src *rand.Rand, epsilon float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(referenceGeom1(src, epsilon) - referenceGeom1(src, epsilon))
	}
	return out
}

func TestNewGeometricMechanism(t *testing.T) {
	tests := []struct {
		name        string
		epsilon     float64
		sensitivity float64
		expectError bool
	}{
		{name: "valid", epsilon: 1.0, sensitivity: 1.0, expectError: false},
		{name: "zero epsilon", epsilon: 0, sensitivity: 1.0, expectError: true},
		{name: "negative sensitivity", epsilon: 1.0, sensitivity: -1.0, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeometricMechanism(tt.epsilon, tt.sensitivity)
			if tt.expectError && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGeometricMechanismReleaseOnce(t *testing.T) {
	m, err := NewGeometricMechanism(1.0, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Release([]int64{1, 2, 3}); err != nil {
		t.Fatalf("first release failed: %v", err)
	}
	if _, err := m.Release([]int64{1, 2, 3}); err == nil {
		t.Fatal("expected second release to fail")
	}
}

func TestGeometricMechanismDistribution(t *testing.T) {
	const n = 2000
	m, err := NewGeometricMechanism(1.0, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := m.Release(make([]int64, n))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sample := make([]float64, n)
	for i, v := range out {
		sample[i] = float64(v)
	}

	// effectiveEpsilon matches GeometricMechanism.Release's own
	// epsilon/sensitivity split; the reference sampler otherwise shares
	// nothing with the mechanism under test.
	effectiveEpsilon := 1.0 / 1.0
	reference := referenceTwoSidedGeometric(rand.New(rand.NewSource(5)), effectiveEpsilon, n)

	res := statcheck.TwoSample(sample, reference)
	if res.Reject(0.01) {
		t.Errorf("samples diverged from the textbook two-sided geometric distribution: D=%v p=%v", res.Statistic, res.PValue)
	}
}
