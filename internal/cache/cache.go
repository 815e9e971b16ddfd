// Package cache defines the key/value contract the catalog repository
// sits beside. Entries expire on their own; there is no transactional
// link to the store, so callers must tolerate bounded staleness.
package cache

import (
	"context"
	"time"
)

// Cache is a string KV store with per-entry TTL and explicit removal.
// GetString reports a miss with found=false; an error means the cache
// itself is unavailable, which callers treat as fail-open.
type Cache interface {
	GetString(ctx context.Context, key string) (value string, found bool, err error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
