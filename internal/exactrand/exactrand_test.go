package exactrand

import (
	"math"
	"math/big"
	"testing"
)

func TestExactUnitIsInOpenUnitInterval(t *testing.T) {
	for i := 0; i < 1000; i++ {
		u, err := ExactUnit(DefaultPrecision)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f, _ := Float(u, DefaultPrecision).Float64()
		if f <= 0 || f >= 1 {
			t.Fatalf("ExactUnit produced %v, want value in (0,1)", f)
		}
	}
}

func TestLaplaceMeanIsNearZero(t *testing.T) {
	const n = 4000
	sum := 0.0
	for i := 0; i < n; i++ {
		v, err := Laplace(1.0, DefaultPrecision)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum += v
	}
	mean := sum / n
	if math.Abs(mean) > 0.2 {
		t.Errorf("sample mean %v too far from 0", mean)
	}
}

func TestGumbelProducesFiniteValues(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v, err := Gumbel(DefaultPrecision)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Gumbel produced non-finite value %v", v)
		}
	}
}

func TestTwoSidedGeometricMeanIsNearZero(t *testing.T) {
	const n = 4000
	sum := int64(0)
	for i := 0; i < n; i++ {
		v, err := TwoSidedGeometric(0.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum += v
	}
	mean := float64(sum) / n
	if math.Abs(mean) > 1.0 {
		t.Errorf("sample mean %v too far from 0", mean)
	}
}

func TestLnMatchesMathLog(t *testing.T) {
	inputs := []float64{0.5, 1.0, 2.0, 10.0, 0.001, 1000.0}
	for _, x := range inputs {
		xf := new(big.Float).SetPrec(bitsForPrecision(DefaultPrecision)).SetFloat64(x)
		got := ln(xf)
		gotF, _ := got.Float64()
		want := math.Log(x)
		if math.Abs(gotF-want) > 1e-6 {
			t.Errorf("ln(%v) = %v, want %v", x, gotF, want)
		}
	}
}
