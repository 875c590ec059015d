// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package relm

import "fmt"

func validateEpsilon(epsilon float64) error {
	if epsilon <= 0 {
		return valueErr("epsilon", fmt.Sprintf("must be positive, got %v", epsilon))
	}
	return nil
}

func validateSensitivity(sensitivity float64) error {
	if sensitivity <= 0 {
		return valueErr("sensitivity", fmt.Sprintf("must be positive, got %v", sensitivity))
	}
	return nil
}

func validateOpenUnitInterval(field string, v float64) error {
	if v <= 0 || v >= 1 {
		return valueErr(field, fmt.Sprintf("must lie in the open interval (0,1), got %v", v))
	}
	return nil
}

func validatePositiveInt(field string, v int) error {
	if v <= 0 {
		return valueErr(field, fmt.Sprintf("must be a positive integer, got %d", v))
	}
	return nil
}

// validateHistogram enforces spec.md §3: histogram entries must be
// non-negative integers. Since Go's []int64 already constrains the
// element type, only the non-negativity check can fail at runtime; a
// caller passing a narrower integer width (e.g. []int32) is a compile
// error, which is how a statically typed port turns the source's
// "non-integer element type" TypeError into a property the type
// checker enforces for free (spec.md §9).
func validateHistogram(field string, histogram []int64) error {
	for i, v := range histogram {
		if v < 0 {
			return valueErr(field, fmt.Sprintf("entry %d is negative (%d); histogram counts must be non-negative", i, v))
		}
	}
	return nil
}
