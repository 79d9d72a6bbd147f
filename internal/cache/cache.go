package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the response store consulted before any network fetch.
// Implementations are memory, disk and the layered combination of both.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a request URL. The version segment
// lets a format change invalidate old entries wholesale.
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "giinscan:v1:" + hex.EncodeToString(hash[:])
}
