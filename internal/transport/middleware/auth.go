package middleware

import (
	"net/http"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/pkg/logger"
)

// UserContext tags the request logger with the authenticated caller. It must
// run after the auth middleware has attached an identity.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := internal.IdentityFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "userID", id.ID, "role", id.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
