package category

import (
	"context"
	"net/http"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
)

type ServiceAPI interface {
	GetAllCategories(ctx context.Context) ([]CategoryResponse, error)
}

// ItemLister yields the requester's visible items.
type ItemLister interface {
	VisibleItems(ctx context.Context, requester *coreUser.User) ([]*item.InventoryItem, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Items   ItemLister
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, items ItemLister) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Items:       items,
	}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetAllCategories(r.Context())
	if err != nil {
		h.HandleError(w, r, internal.NewInternalError("failed to get categories", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: categories,
	})
}

// GetCategoriesInUse handles GET /categories/in-use: the distinct categories
// among the items the requester can see.
func (h *Handler) GetCategoriesInUse(w http.ResponseWriter, r *http.Request) {
	requester, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.HandleError(w, r, internal.ErrMissingToken)
		return
	}

	visible, err := h.Items.VisibleItems(r.Context(), requester)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, InUseResponse{Categories: InUse(visible)})
}
