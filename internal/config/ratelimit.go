package config

import (
	"time"
)

// RateLimitConfig controls the Redis token-bucket limiter applied in front
// of the API.  Capacity is the bucket size, RefillTokens are added every
// RefillInterval, and TTL bounds how long idle buckets live in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig builds a RateLimitConfig from environment variables
// with sane defaults and clamps values that would break the bucket math.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       atoiDefault(getenv("RATE_LIMIT_CAPACITY", ""), 60),
		RefillTokens:   atoiDefault(getenv("RATE_LIMIT_REFILL_TOKENS", ""), 1),
		RefillInterval: durDefault(getenv("RATE_LIMIT_REFILL_INTERVAL", ""), time.Second),
		TTL:            durDefault(getenv("RATE_LIMIT_TTL", ""), 10*time.Minute),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
		Debug:          getenv("RATE_LIMIT_DEBUG", "false") == "true",
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	// Keep idle buckets around long enough to refill at least a few times.
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func atoiDefault(s string, d int) int {
	if s == "" {
		return d
	}
	if n := atoi(s); n != 0 || s == "0" {
		return n
	}
	return d
}

func durDefault(s string, d time.Duration) time.Duration {
	if s == "" {
		return d
	}
	if dur, err := time.ParseDuration(s); err == nil {
		return dur
	}
	return d
}
