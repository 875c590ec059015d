// Copyright 2026 Sovereign-Mohawk Core Team
// Licensed under the Apache License, Version 2.0

package memo

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Fingerprint returns a short, order-sensitive digest of an integer
// histogram suitable for use as a UtilityCache key. Two histograms with
// the same fingerprint would share one cached utility score; the digest
// is SHA-256, so such a collision is not expected in practice.
func Fingerprint(histogram []int64) string {
	h := sha256.New()
	buf := make([]byte, 8)
	for _, v := range histogram {
		binary.LittleEndian.PutUint64(buf, uint64(v))
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}
