package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/auth"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

// ItemReader is the read side of the inventory store.
type ItemReader interface {
	AllItems(ctx context.Context) ([]*item.InventoryItem, error)
	VisibleItems(ctx context.Context, requester *coreUser.User) ([]*item.InventoryItem, error)
	DepartmentSummary(ctx context.Context, scope string) (item.DepartmentSummary, error)
}

type Service struct {
	items  ItemReader
	logger *slog.Logger
}

func NewService(items ItemReader, logger *slog.Logger) *Service {
	return &Service{
		items:  items,
		logger: logger,
	}
}

// Overview builds the dashboard for requester from the current item state.
func (s *Service) Overview(ctx context.Context, requester *coreUser.User) (*Overview, error) {
	if requester == nil {
		return nil, internal.ErrMissingToken
	}

	visible, err := s.items.VisibleItems(ctx, requester)
	if err != nil {
		return nil, err
	}

	scope := item.ScopeAll
	if !requester.IsAdmin {
		scope = string(requester.Department)
	}

	return &Overview{
		Title:       TitleFor(requester),
		Summary:     item.Summarize(scope, visible),
		RecentItems: RecentItems(visible, RecentItemsLimit),
		LowStock:    WithStatus(visible, item.StatusLow),
		OutOfStock:  WithStatus(visible, item.StatusOutOfStock),
	}, nil
}

// Analytics aggregates the requester's visible items. Only administrators
// receive the per-department distribution, computed over every item.
func (s *Service) Analytics(ctx context.Context, requester *coreUser.User) (*Analytics, error) {
	if requester == nil {
		return nil, internal.ErrMissingToken
	}

	visible, err := s.items.VisibleItems(ctx, requester)
	if err != nil {
		return nil, err
	}

	result := &Analytics{
		Description:   fmt.Sprintf("%s department inventory analytics", requester.Department),
		TotalItems:    len(visible),
		StatusCounts:  CountStatuses(visible),
		TopCategories: TopCategories(visible, TopCategoriesLimit),
	}

	if requester.IsAdmin {
		result.Description = "System-wide inventory statistics and analytics"
		all, err := s.items.AllItems(ctx)
		if err != nil {
			return nil, err
		}
		result.DepartmentDistribution = DepartmentDistribution(all)
	}
	return result, nil
}

// DepartmentSummary returns the summary for scope, which is a department or
// item.ScopeAll. Non-administrators may only ask for their own department.
func (s *Service) DepartmentSummary(ctx context.Context, requester *coreUser.User, scope string) (item.DepartmentSummary, error) {
	if requester == nil {
		return item.DepartmentSummary{}, internal.ErrMissingToken
	}
	if !requester.IsAdmin && !auth.InScope(requester, coreUser.Department(scope)) {
		s.logger.WarnContext(ctx, "department summary rejected", "user_id", requester.ID, "department", scope)
		return item.DepartmentSummary{}, internal.ErrOutOfScope
	}
	return s.items.DepartmentSummary(ctx, scope)
}
