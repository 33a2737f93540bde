package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

const internalErrorMessage = "Internal error. Please try again."

// Recovery converts a handler panic into a JSON 500 and an error log with
// the stack and request id. http.ErrAbortHandler is re-raised so the server
// can drop the connection as it normally would.
func Recovery(logger *slog.Logger) Middleware {
	log := logger.With("component", "recovery")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", v),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					slog.String("route", r.Method+" "+r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				writeJSONError(w, http.StatusInternalServerError, internalErrorMessage)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
