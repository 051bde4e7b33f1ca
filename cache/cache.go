package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Store caches composed responses keyed by normalized query. A cache only
// skips recomputation; implementations must degrade failures to misses so
// the cache can never change an answer.
type Store interface {
	Get(ctx context.Context, query string) (string, bool)
	Set(ctx context.Context, query, response string)
}

// Key hashes a normalized query into a stable cache key.
func Key(query string) string {
	sum := sha256.Sum256([]byte(query))
	return "answer:" + hex.EncodeToString(sum[:])
}
