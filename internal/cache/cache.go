package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from arbitrary content.
// Content is hashed so article text of any size keys a fixed-width entry.
func CacheKey(content string) string {
	hash := sha256.Sum256([]byte(content))
	return "floodlens:v1:" + hex.EncodeToString(hash[:])
}
