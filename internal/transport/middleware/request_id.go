package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// maxRequestIDLen bounds client-supplied ids echoed into logs and headers.
const maxRequestIDLen = 128

// RequestID propagates the client's request id, generating a fresh UUID
// when none was sent or the supplied one is oversized.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
		})
	}
}
