// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package exactrand

import "math/big"

// Laplace draws a single Laplace(0, scale) variate at the declared
// fixed-point precision (spec.md §4.1), using the standard inverse-CDF
// transform
//
//	u <  1/2: L =  scale * ln(2u)
//	u >= 1/2: L = -scale * ln(2(1-u))
//
// evaluated entirely in big.Float arithmetic at bitsForPrecision(p) bits
// of mantissa, so the only rounding that ever happens is the final
// conversion to float64 — the same property the snapping mechanism
// relies on to defeat mantissa-reconstruction attacks.
func Laplace(scale float64, precision uint) (float64, error) {
	u, err := ExactUnit(precision)
	if err != nil {
		return 0, err
	}

	prec := bitsForPrecision(precision)
	half := new(big.Rat).SetFrac64(1, 2)
	scaleF := new(big.Float).SetPrec(prec).SetFloat64(scale)

	var argRat *big.Rat
	var negate bool
	if u.Cmp(half) < 0 {
		argRat = new(big.Rat).Mul(u, big.NewRat(2, 1))
		negate = false
	} else {
		argRat = new(big.Rat).Sub(big.NewRat(1, 1), u)
		argRat.Mul(argRat, big.NewRat(2, 1))
		negate = true
	}

	logArg := ln(Float(argRat, precision))
	result := new(big.Float).SetPrec(prec).Mul(scaleF, logArg)
	if negate {
		result.Neg(result)
	}

	out, _ := result.Float64()
	return out, nil
}
