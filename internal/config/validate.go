package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	switch c.RateLimit.EffectiveBackend() {
	case RateLimitBackendRedis, RateLimitBackendMemory, RateLimitBackendNone:
	default:
		return fmt.Errorf("ratelimit.backend must be one of redis, memory, none (got %q)", c.RateLimit.Backend)
	}

	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (s *SearchConfig) validate() error {
	if s.MaxLimit < 1 || s.MaxLimit > 100 {
		return fmt.Errorf("max_limit must be in [1, 100] (got %d)", s.MaxLimit)
	}
	if s.DefaultLimit < 1 || s.DefaultLimit > s.MaxLimit {
		return fmt.Errorf("default_limit must be in [1, %d] (got %d)", s.MaxLimit, s.DefaultLimit)
	}
	return nil
}
