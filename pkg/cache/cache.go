// Package cache stores derived data that is expensive to recompute.
//
// The service uses it for the resolved field styles of published versions:
// a version's content never changes once stored, so its resolved styles can
// be kept until the entry expires.
//
// Backends implement [Cache]:
//   - [NullCache]: stores nothing, the default when caching is disabled
//   - [MemoryCache]: in-process map with expiry
//   - [FileCache]: one file per key, for the CLI
//   - [RedisCache]: shared storage for multi-instance servers
//
// Keys are built with [Key], which hashes its parts so arbitrary values can
// be used without worrying about separators.
//
// # Usage
//
//	c := cache.NewMemoryCache()
//	key := cache.Key("styles", masterID, number)
//	if err := cache.SetJSON(ctx, c, key, resolved, time.Hour); err != nil {
//	    return err
//	}
//
//	var styles map[string]style.Config
//	hit, err := cache.GetJSON(ctx, c, key, &styles)
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get returns the data stored under key. The boolean is false on a miss
	// or when the entry has expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 keeps the entry until it is
	// deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key builds a cache key of the form prefix:hash(parts...).
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GetJSON reads key from c and decodes it into v. An entry that fails to
// decode is deleted and reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
