package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/ratelimit"
	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// RateLimitMessage is the body error text of a 429 response.
const RateLimitMessage = "Too many requests. Please try again later."

type limiter interface {
	Allow(ctx context.Context, key string, rule ratelimit.Rule) (ratelimit.Decision, error)
}

type rateLimitMetrics interface {
	RateLimitDecided(rule string, allowed bool)
}

// KeyFunc derives the rate limit identity of a request.
type KeyFunc func(r *http.Request) string

// RateLimit enforces rule per key. A limiter error is logged and the request
// is allowed.
func RateLimit(l limiter, rule ratelimit.Rule, key KeyFunc, m rateLimitMetrics, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := l.Allow(r.Context(), key(r), rule)
			if err != nil {
				logger.WarnContext(r.Context(), "rate limiter unavailable, allowing request",
					slog.String("rule", rule.Name), slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			if m != nil {
				m.RateLimitDecided(rule.Name, d.Allowed)
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				h.Set("Retry-After", strconv.Itoa(d.RetryAfter(time.Now())))
				writeJSONError(w, http.StatusTooManyRequests, RateLimitMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-Ip, then the
// host part of RemoteAddr, then "anonymous".
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); ip != "" {
		return ip
	}
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}
	return "anonymous"
}

// UserOrIP keys authenticated callers by user id and the rest by client IP.
func UserOrIP(r *http.Request) string {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + id.String()
	}
	return "ip:" + ClientIP(r)
}

// ByIP keys every caller by client IP.
func ByIP(r *http.Request) string {
	return "ip:" + ClientIP(r)
}
