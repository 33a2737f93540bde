package middleware

import (
	"net/http"
	"time"
)

type httpMetrics interface {
	HTTPRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics records request counts and latency per matched route pattern.
// It must wrap the ServeMux directly so the mux's pattern is visible on r.
func Metrics(m httpMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
