package inventory

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/auth"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	AddItem(ctx context.Context, dto CreateItemDTO, requester *coreUser.User) (*item.InventoryItem, error)
	UpdateItem(ctx context.Context, id string, patch UpdateItemDTO, requester *coreUser.User) (*item.InventoryItem, error)
	DeleteItem(ctx context.Context, id string, requester *coreUser.User) error
	ItemByID(ctx context.Context, id string) (*item.InventoryItem, error)
	VisibleItems(ctx context.Context, requester *coreUser.User) ([]*item.InventoryItem, error)
}

// CategorySuggester supplies the recommended category names for the item form.
type CategorySuggester interface {
	RecommendedNames(ctx context.Context) ([]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service    ServiceAPI
	Categories CategorySuggester
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, categories CategorySuggester) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Categories:  categories,
	}
}

// ListItems handles GET /items with optional search, category and status filters.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	requester, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	q := r.URL.Query()
	filter := Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   item.Status(q.Get("status")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		h.HandleError(w, r, internal.NewValidationFieldError("status", "status must be one of available, low, out-of-stock", internal.ErrCodeInvalidStatus))
		return
	}

	visible, err := h.Service.VisibleItems(r.Context(), requester)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	items := filter.Apply(visible)
	h.WriteJSON(w, http.StatusOK, ItemsResponse{Items: items, Total: len(items)})
}

// GetItem handles GET /items/{id}. Items outside the requester's scope are
// reported as missing.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	requester, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	it, err := h.Service.ItemByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	if !auth.InScope(requester, it.Department) {
		h.HandleError(w, r, internal.ErrItemNotFound)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	requester, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	var dto CreateItemDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}
	dto.Name = strings.TrimSpace(dto.Name)
	if err := dto.Validate(); err != nil {
		h.HandleError(w, r, err)
		return
	}

	created, err := h.Service.AddItem(r.Context(), dto, requester)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requester, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	var dto UpdateItemDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleError(w, r, err)
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleError(w, r, err)
		return
	}

	updated, err := h.Service.UpdateItem(r.Context(), chi.URLParam(r, "id"), dto, requester)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	requester, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	if err := h.Service.DeleteItem(r.Context(), chi.URLParam(r, "id"), requester); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FormDefaults handles GET /items/form-defaults.
func (h *Handler) FormDefaults(w http.ResponseWriter, r *http.Request) {
	requester, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	defaults := FormDefaults{
		Department:       auth.DefaultDepartmentFor(requester),
		DepartmentLocked: !requester.IsAdmin,
		Departments:      []coreUser.Department{requester.Department},
	}
	if requester.IsAdmin {
		defaults.Departments = coreUser.Departments
	}

	if h.Categories != nil {
		names, err := h.Categories.RecommendedNames(r.Context())
		if err != nil {
			h.HandleError(w, r, err)
			return
		}
		defaults.RecommendedCategories = names
	}

	h.WriteJSON(w, http.StatusOK, defaults)
}
