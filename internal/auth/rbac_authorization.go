package auth

import (
	"net/http"

	"github.com/frahmantamala/inventory-tracker/internal"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
)

// RBACAuthorization gates routes on the permission model before a request
// reaches the stores. Department scope is checked by the stores themselves.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(baseHandler *transport.BaseHandler) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: baseHandler}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, action coreUser.Permission) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := internal.UserFromContext(r.Context())
		if !ok {
			ra.Logger.Warn("authorization check failed: user not found in context")
			ra.HandleError(w, r, internal.ErrMissingToken)
			return
		}

		if !CanPerform(u, action) {
			ra.Logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", u.ID,
				"required_permission", action,
				"user_permissions", u.Permissions)
			ra.HandleError(w, r, internal.ErrMissingPermission)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(action coreUser.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, action)
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.HandleError(w, r, internal.ErrMissingToken)
				return
			}

			if !u.IsAdmin {
				ra.Logger.WarnContext(r.Context(), "access denied: admin privileges required", "user_id", u.ID)
				ra.HandleError(w, r, internal.ErrAdminRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
