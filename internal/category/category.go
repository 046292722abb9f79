package category

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/category"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
)

// Recommended is the category catalogue offered on the item form, in display
// order.
var Recommended = []string{
	"Hardware",
	"Software",
	"Office Supplies",
	"Furniture",
	"Equipment",
	"Tools",
	"Supplies",
	"Documents",
	"Accessories",
	"Other",
}

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) IsActiveCategory() bool {
	return c.IsActive
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		Name:        c.Name,
		Description: c.Description,
	}
}

func NewCategory(name, description string, sortOrder int) *Category {
	now := time.Now().UTC()
	return &Category{
		Name:        name,
		Description: description,
		SortOrder:   sortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// InUse returns the distinct categories of items in first-seen order.
func InUse(items []*item.InventoryItem) []string {
	seen := make(map[string]struct{}, len(items))
	names := make([]string, 0)
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		names = append(names, it.Category)
	}
	return names
}

func ToDataModel(c *Category) *categoryDatamodel.InventoryCategory {
	return &categoryDatamodel.InventoryCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.InventoryCategory) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
