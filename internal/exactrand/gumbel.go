// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package exactrand

import "math/big"

// Gumbel draws a single standard Gumbel(0,1) variate at the declared
// fixed-point precision, via G = -ln(-ln(u)). Used by the exponential
// mechanism's gumbel_trick sampling method (spec.md §4.4).
func Gumbel(precision uint) (float64, error) {
	u, err := ExactUnit(precision)
	if err != nil {
		return 0, err
	}

	prec := bitsForPrecision(precision)
	inner := ln(Float(u, precision))
	inner.Neg(inner)
	if inner.Sign() <= 0 {
		// u extremely close to 1; -ln(u) rounded to <=0. Clamp to the
		// smallest representable positive value so the outer log stays
		// finite; this only happens with probability ~2^-precision.
		inner = new(big.Float).SetPrec(prec).SetMantExp(big.NewFloat(1), -int(precision))
	}
	outer := ln(inner)
	outer.Neg(outer)

	out, _ := outer.Float64()
	return out, nil
}
