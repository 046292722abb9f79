package inventory

import (
	"strings"

	inventoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/inventory"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

func ToDataModel(it *item.InventoryItem) *inventoryDatamodel.InventoryItem {
	return &inventoryDatamodel.InventoryItem{
		ItemID:      it.ID,
		Name:        it.Name,
		Description: it.Description,
		Department:  string(it.Department),
		Quantity:    it.Quantity,
		Category:    it.Category,
		Location:    it.Location,
		Status:      string(it.Status),
		LastUpdated: it.LastUpdated,
		AddedBy:     it.AddedBy,
	}
}

func FromDataModel(row *inventoryDatamodel.InventoryItem) *item.InventoryItem {
	return &item.InventoryItem{
		ID:          row.ItemID,
		Name:        row.Name,
		Description: row.Description,
		Department:  coreUser.Department(row.Department),
		Quantity:    row.Quantity,
		Category:    row.Category,
		Location:    row.Location,
		Status:      item.Status(row.Status),
		LastUpdated: row.LastUpdated.UTC(),
		AddedBy:     row.AddedBy,
	}
}

func fromDataModels(rows []*inventoryDatamodel.InventoryItem) []*item.InventoryItem {
	items := make([]*item.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromDataModel(row))
	}
	return items
}

// Filter narrows an already scoped item list. Empty fields match everything.
type Filter struct {
	Search   string
	Category string
	Status   item.Status
}

// Matches applies a case-insensitive substring search over name,
// description, category and location plus exact category and status filters.
func (f Filter) Matches(it *item.InventoryItem) bool {
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.Status != "" && it.Status != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{it.Name, it.Description, it.Category, it.Location} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (f Filter) Apply(items []*item.InventoryItem) []*item.InventoryItem {
	out := make([]*item.InventoryItem, 0, len(items))
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}
