// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package exactrand

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
)

// uniformFloat64 draws a uniform value in (0,1) from crypto/rand. Unlike
// ExactUnit this is not carried through big.Float arithmetic: geometric
// variates are integer-valued by construction, so there is no mantissa
// to reconstruct a continuous private value from (spec.md §4.2 only
// requires the X-Y combination itself to be exact integer arithmetic).
func uniformFloat64() (float64, error) {
	const bits = 53
	max := new(big.Int).Lsh(big.NewInt(1), bits)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, fmt.Errorf("exactrand: reading entropy: %w", err)
	}
	v := (float64(n.Int64()) + 0.5) / float64(int64(1)<<bits)
	return v, nil
}

// geom1 draws one variate from Geom(1-q), q = e^-epsilon, support
// {1, 2, 3, ...}, via inverse-CDF: F(k) = 1 - q^k.
func geom1(epsilon float64) (int64, error) {
	v, err := uniformFloat64()
	if err != nil {
		return 0, err
	}
	logQ := -epsilon
	k := int64(math.Ceil(math.Log(1-v) / logQ))
	if k < 1 {
		k = 1
	}
	return k, nil
}

// TwoSidedGeometric draws Z = X - Y with X, Y independently drawn from
// Geom(1 - e^-epsilon) (spec.md §4.2).
func TwoSidedGeometric(epsilon float64) (int64, error) {
	x, err := geom1(epsilon)
	if err != nil {
		return 0, err
	}
	y, err := geom1(epsilon)
	if err != nil {
		return 0, err
	}
	return x - y, nil
}
