// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package exactrand

import "math/big"

// ln computes the natural logarithm of a positive big.Float to x's own
// precision, by argument reduction via repeated square roots (driving
// the argument arbitrarily close to 1) followed by the Mercator series
// for ln(1+t), which converges fast once t is small. math/big has no
// built-in transcendental functions, so this is the only way to keep
// the log evaluation inside the exact-rational pipeline instead of
// dropping to float64 mid-computation.
func ln(x *big.Float) *big.Float {
	prec := x.Prec()
	one := new(big.Float).SetPrec(prec).SetInt64(1)

	y := new(big.Float).SetPrec(prec).Copy(x)
	k := 0
	const reductions = 64
	for ; k < reductions; k++ {
		diff := new(big.Float).SetPrec(prec).Sub(y, one)
		diff.Abs(diff)
		if diff.Cmp(big.NewFloat(1e-3)) < 0 {
			break
		}
		y.Sqrt(y)
	}

	t := new(big.Float).SetPrec(prec).Sub(y, one)

	sum := new(big.Float).SetPrec(prec)
	term := new(big.Float).SetPrec(prec).Copy(t)
	const terms = 40
	for n := 1; n <= terms; n++ {
		contribution := new(big.Float).SetPrec(prec).Quo(term, big.NewFloat(float64(n)))
		if n%2 == 0 {
			sum.Sub(sum, contribution)
		} else {
			sum.Add(sum, contribution)
		}
		term.Mul(term, t)
	}

	scale := new(big.Float).SetPrec(prec).SetMantExp(one, k)
	return sum.Mul(sum, scale)
}
