package category

import (
	"context"
	"log/slog"

	categoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*categoryDatamodel.InventoryCategory, error)
	GetByName(ctx context.Context, name string) (*categoryDatamodel.InventoryCategory, error)
	Create(ctx context.Context, category *categoryDatamodel.InventoryCategory) error
	Update(ctx context.Context, category *categoryDatamodel.InventoryCategory) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetAllCategories returns the active categories in display order.
func (s *Service) GetAllCategories(ctx context.Context) ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get categories from repository", "error", err)
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		domainCategory := FromDataModel(dataCategory)
		if domainCategory.IsActiveCategory() {
			responses = append(responses, domainCategory.ToResponse())
		}
	}

	s.logger.DebugContext(ctx, "retrieved categories", "count", len(responses))
	return responses, nil
}

func (s *Service) RecommendedNames(ctx context.Context) ([]string, error) {
	categories, err := s.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names, nil
}

// GetCategoryByName returns nil when name is unknown or inactive.
func (s *Service) GetCategoryByName(ctx context.Context, name string) (*CategoryResponse, error) {
	dataCategory, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get category from repository", "name", name, "error", err)
		return nil, err
	}
	if dataCategory == nil {
		return nil, nil
	}

	domainCategory := FromDataModel(dataCategory)
	if !domainCategory.IsActiveCategory() {
		return nil, nil
	}
	response := domainCategory.ToResponse()
	return &response, nil
}

// IsRecommendedCategory reports whether name is an active catalogue entry.
// Items may still use free-text categories outside the catalogue.
func (s *Service) IsRecommendedCategory(ctx context.Context, name string) bool {
	category, err := s.GetCategoryByName(ctx, name)
	if err != nil {
		s.logger.WarnContext(ctx, "error checking category", "name", name, "error", err)
		return false
	}
	return category != nil
}
