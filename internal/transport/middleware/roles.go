package middleware

import (
	"net/http"
	"slices"

	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// RequireRole rejects anonymous callers with 401 and callers whose role is
// not listed with 403. It must run after Auth.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
				writeJSONError(w, http.StatusUnauthorized, "Authentication required.")
				return
			}
			if !slices.Contains(roles, ctxutil.UserRoleFromCtx(r.Context())) {
				writeJSONError(w, http.StatusForbidden, "You do not have permission to do that.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
