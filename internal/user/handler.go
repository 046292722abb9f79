package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/inventory-tracker/internal"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateUser(ctx context.Context, dto CreateUserDTO, requester *coreUser.User) (*coreUser.User, error)
	UpdateUser(ctx context.Context, id string, patch UpdateUserDTO, requester *coreUser.User) (*coreUser.User, error)
	DeleteUser(ctx context.Context, id string, requester *coreUser.User) error
	ListUsers(ctx context.Context, search string) ([]*coreUser.User, error)
}

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

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// ListUsers handles GET /users?search=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, UsersResponse{Users: users, Total: len(users)})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	requester, _ := internal.UserFromContext(r.Context())

	var dto CreateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleError(w, r, err)
		return
	}

	created, err := h.Service.CreateUser(r.Context(), dto, requester)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	requester, _ := internal.UserFromContext(r.Context())

	var dto UpdateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleError(w, r, err)
		return
	}

	updated, err := h.Service.UpdateUser(r.Context(), chi.URLParam(r, "id"), dto, requester)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /users/{id}. The store decides every rejection,
// so the protected administrator is reported the same way to any caller.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	requester, _ := internal.UserFromContext(r.Context())

	if err := h.Service.DeleteUser(r.Context(), chi.URLParam(r, "id"), requester); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
