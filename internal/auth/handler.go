package auth

import (
	"net/http"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/frahmantamala/inventory-tracker/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}

	session, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout. Tokens are stateless, so this only
// confirms the caller held a valid one; clients drop their stored identity.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if u, ok := internal.UserFromContext(r.Context()); ok {
		h.Logger.InfoContext(r.Context(), "user signed out", "user_id", u.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.HandleError(w, r, internal.ErrMissingToken)
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.HandleError(w, r, err)
			return
		}

		u, err := h.Service.ResolveUser(r.Context(), claims)
		if err != nil {
			h.HandleError(w, r, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), u)
		ctx = logger.With(ctx, "user_id", u.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
