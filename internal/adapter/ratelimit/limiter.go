// Package ratelimit provides sliding-window request limiters keyed by
// caller identity. Backends: Redis, in-process memory and a no-op.
package ratelimit

import (
	"context"
	"math"
	"time"
)

// Rule is a named request budget: at most Limit requests per Window.
type Rule struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Budgets applied by the HTTP layer.
var (
	RuleAPI    = Rule{Name: "api", Limit: 100, Window: time.Minute}
	RuleSearch = Rule{Name: "search", Limit: 50, Window: time.Minute}
	RuleVote   = Rule{Name: "vote", Limit: 20, Window: time.Minute}
	RuleSubmit = Rule{Name: "submit", Limit: 5, Window: time.Hour}
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns whole seconds until the window frees a slot, at least 1.
func (d Decision) RetryAfter(now time.Time) int {
	secs := int(math.Ceil(d.ResetAt.Sub(now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// Limiter decides whether the caller identified by key may proceed under rule.
type Limiter interface {
	Allow(ctx context.Context, key string, rule Rule) (Decision, error)
}

// Noop allows every request.
type Noop struct{}

// Allow always allows.
func (Noop) Allow(_ context.Context, _ string, rule Rule) (Decision, error) {
	return Decision{
		Allowed:   true,
		Limit:     rule.Limit,
		Remaining: rule.Limit,
		ResetAt:   time.Now().Add(rule.Window),
	}, nil
}

func remaining(limit, used int) int {
	if used >= limit {
		return 0
	}
	return limit - used
}
