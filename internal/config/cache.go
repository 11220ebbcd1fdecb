package config

import (
    "time"
)

// CacheConfig defines settings for the Redis response cache middleware
// applied to public browse endpoints (restaurant, table and menu listings).
// When Enabled is false or no Redis client is available, caching is a no-op.
// Only GET responses are cached; quotes and reservations are never cached
// because both depend on the clock and on concurrent writes.
type CacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults favour short TTLs so owner edits (menu prices, pricing rules)
// surface quickly.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}
