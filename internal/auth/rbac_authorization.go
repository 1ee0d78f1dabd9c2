package auth

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/frahmantamala/capacity-tracker/internal"
	"github.com/frahmantamala/capacity-tracker/internal/core/catalog"
	"github.com/frahmantamala/capacity-tracker/internal/transport"
)

// RBACAuthorization gates routes on the caller's role. It relies on
// AuthMiddleware having run first.
type RBACAuthorization struct {
	*transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: transport.NewBaseHandler(logger),
		logger:      logger,
	}
}

func (ra *RBACAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				ra.logger.Warn("authorization check failed: identity not found in context")
				ra.HandleError(w, r, internal.ErrMissingToken)
				return
			}

			if !slices.Contains(roles, identity.Role) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", identity.ID,
					"role", identity.Role,
					"required_roles", roles)
				ra.HandleError(w, r, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireManager() func(http.Handler) http.Handler {
	return ra.RequireRole(catalog.RoleManager)
}
