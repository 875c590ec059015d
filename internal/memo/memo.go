// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

// Package memo memoizes expensive per-candidate utility evaluations for
// SmallDB's Metropolis walk (spec.md §4.8, §4.11): the same candidate
// histogram can recur across the walk, and scoring it means scanning
// every query against the universe, so a bounded LRU cache keeps the
// walk from repeating that scan.
package memo

import lru "github.com/hashicorp/golang-lru/v2"

// UtilityCache memoizes float64 utility scores keyed by an opaque
// candidate fingerprint (see fingerprint.go).
type UtilityCache struct {
	cache *lru.Cache[string, float64]
}

// NewUtilityCache builds a cache holding up to size entries.
func NewUtilityCache(size int) (*UtilityCache, error) {
	c, err := lru.New[string, float64](size)
	if err != nil {
		return nil, err
	}
	return &UtilityCache{cache: c}, nil
}

// GetOrCompute returns the cached utility for key, computing and
// storing it via compute if absent.
func (u *UtilityCache) GetOrCompute(key string, compute func() float64) float64 {
	if v, ok := u.cache.Get(key); ok {
		return v
	}
	v := compute()
	u.cache.Add(key, v)
	return v
}
