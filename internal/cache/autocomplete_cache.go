package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AutocompleteCache stores serialized autocomplete responses keyed by the
// normalized query and result limit. Entries expire after a short TTL so
// fresh ads show up in suggestions without hammering the database on every
// keystroke.
type AutocompleteCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewAutocompleteCache creates a new AutocompleteCache.
func NewAutocompleteCache(redis *RedisClient, ttl time.Duration) *AutocompleteCache {
	return &AutocompleteCache{redis: redis, ttl: ttl}
}

// key returns the Redis key for a query/limit pair. Queries are matched
// case-insensitively downstream, so the key is lower-cased too.
func (c *AutocompleteCache) key(query string, limit int) string {
	return fmt.Sprintf("autocomplete:%s:%d", strings.ToLower(strings.TrimSpace(query)), limit)
}

// Get loads a cached response into out. The second return value is false on
// a cache miss.
func (c *AutocompleteCache) Get(ctx context.Context, query string, limit int, out interface{}) (bool, error) {
	raw, err := c.redis.Get(ctx, c.key(query, limit))
	if err != nil {
		if IsMiss(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal autocomplete cache entry: %w", err)
	}
	return true, nil
}

// Set stores a response under the query/limit key.
func (c *AutocompleteCache) Set(ctx context.Context, query string, limit int, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal autocomplete cache entry: %w", err)
	}
	return c.redis.Set(ctx, c.key(query, limit), string(raw), c.ttl)
}
