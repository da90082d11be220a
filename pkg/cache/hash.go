package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LayeringKey derives the cache key for the classification of a relation
// set from its canonical JSON encoding. Identical inputs share one entry.
func LayeringKey(relationJSON []byte) string {
	return "layering:" + Hash(relationJSON)
}
