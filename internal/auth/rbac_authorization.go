package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization wraps the permission resolver as chi-compatible
// middleware. Routes declare the permission they need; contextual checks
// (self-organization rules) stay in the services.
type RBACAuthorization struct {
	resolver *Resolver
	logger   *slog.Logger
}

func NewRBACAuthorization(resolver *Resolver, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		resolver: resolver,
		logger:   logger,
	}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, permission Permission) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user == nil {
			ra.logger.Warn("authorization check failed: user not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !ra.resolver.HasPermission(user, permission) {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", user.ID,
				"role", user.Role,
				"required_permission", permission)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Require(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permission)
	}
}

func (ra *RBACAuthorization) RequireSystemAdmin() func(http.Handler) http.Handler {
	return ra.Require(PermSystemAdmin)
}
