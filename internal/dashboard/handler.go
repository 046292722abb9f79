package dashboard

import (
	"context"
	"net/http"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Overview(ctx context.Context, requester *coreUser.User) (*Overview, error)
	Analytics(ctx context.Context, requester *coreUser.User) (*Analytics, error)
	DepartmentSummary(ctx context.Context, requester *coreUser.User, scope string) (item.DepartmentSummary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetOverview handles GET /dashboard
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	requester, _ := internal.UserFromContext(r.Context())
	overview, err := h.Service.Overview(r.Context(), requester)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, overview)
}

// GetAnalytics handles GET /analytics
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	requester, _ := internal.UserFromContext(r.Context())
	analytics, err := h.Service.Analytics(r.Context(), requester)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, analytics)
}

// GetDepartmentSummary handles GET /departments/{department}/summary
func (h *Handler) GetDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	requester, _ := internal.UserFromContext(r.Context())
	summary, err := h.Service.DepartmentSummary(r.Context(), requester, chi.URLParam(r, "department"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}
