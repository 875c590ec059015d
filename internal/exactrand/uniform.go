// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

// Package exactrand draws noise variates at a declared fixed-point
// precision instead of raw float64 arithmetic, so that the low-order
// mantissa bits of a released value never leak information about the
// private input through floating-point reconstruction (Mironov 2012;
// Haney et al. 2022). Every Laplace and Gumbel draw starts from an exact
// dyadic rational with denominator 2^precision, sourced from crypto/rand,
// and is only converted to float64 at the very end. Geometric draws
// instead invert the CDF in float64 on a 53-bit uniform (geometric.go).
//
// This package is internal: it is plumbing for pkg/relm's samplers, not
// part of the library's public surface.
package exactrand

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPrecision is the number of bits after the binary point used
// when a caller does not specify one (spec.md §4.1).
const DefaultPrecision = 35

// ExactUnit draws a uniform random dyadic rational in the open interval
// (0, 1) with denominator 2^precision. It never returns 0 or 1, since
// both the Laplace and Gumbel inverse-CDF transforms take a log of the
// distance to an interval endpoint.
func ExactUnit(precision uint) (*big.Rat, error) {
	if precision == 0 {
		return nil, fmt.Errorf("exactrand: precision must be positive")
	}
	denom := new(big.Int).Lsh(big.NewInt(1), precision)
	for {
		n, err := rand.Int(rand.Reader, denom)
		if err != nil {
			return nil, fmt.Errorf("exactrand: reading entropy: %w", err)
		}
		if n.Sign() == 0 {
			continue // reject the 0 endpoint
		}
		return new(big.Rat).SetFrac(n, denom), nil
	}
}

// bitsForPrecision returns the big.Float mantissa precision (in bits)
// used to evaluate transcendental functions of an exact unit rational
// without losing any of its declared precision bits.
func bitsForPrecision(precision uint) uint {
	const guardBits = 64
	return precision + guardBits
}

// Float converts an exact rational to a big.Float carrying enough
// mantissa bits to preserve `precision` fractional bits through a
// subsequent log/exp evaluation.
func Float(r *big.Rat, precision uint) *big.Float {
	f := new(big.Float).SetPrec(bitsForPrecision(precision))
	f.SetRat(r)
	return f
}
