package dashboard

import (
	"fmt"
	"sort"

	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

const (
	RecentItemsLimit   = 5
	TopCategoriesLimit = 5

	SystemOverviewTitle = "System Overview"
)

type Overview struct {
	Title       string                 `json:"title"`
	Summary     item.DepartmentSummary `json:"summary"`
	RecentItems []*item.InventoryItem  `json:"recent_items"`
	LowStock    []*item.InventoryItem  `json:"low_stock"`
	OutOfStock  []*item.InventoryItem  `json:"out_of_stock"`
}

type StatusCounts struct {
	Available  int `json:"available"`
	Low        int `json:"low"`
	OutOfStock int `json:"out_of_stock"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type DepartmentCount struct {
	Department coreUser.Department `json:"department"`
	Count      int                 `json:"count"`
}

type Analytics struct {
	Description            string            `json:"description"`
	TotalItems             int               `json:"total_items"`
	StatusCounts           StatusCounts      `json:"status_counts"`
	TopCategories          []CategoryCount   `json:"top_categories"`
	DepartmentDistribution []DepartmentCount `json:"department_distribution,omitempty"`
}

// TitleFor is the dashboard heading for u.
func TitleFor(u *coreUser.User) string {
	if u.IsAdmin {
		return SystemOverviewTitle
	}
	return fmt.Sprintf("%s Department Dashboard", u.Department)
}

// RecentItems returns up to limit items, most recently updated first. Items
// with equal timestamps keep their input order.
func RecentItems(items []*item.InventoryItem, limit int) []*item.InventoryItem {
	sorted := make([]*item.InventoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUpdated.After(sorted[j].LastUpdated)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func WithStatus(items []*item.InventoryItem, status item.Status) []*item.InventoryItem {
	out := make([]*item.InventoryItem, 0)
	for _, it := range items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

func CountStatuses(items []*item.InventoryItem) StatusCounts {
	var counts StatusCounts
	for _, it := range items {
		switch it.Status {
		case item.StatusAvailable:
			counts.Available++
		case item.StatusLow:
			counts.Low++
		case item.StatusOutOfStock:
			counts.OutOfStock++
		}
	}
	return counts
}

// TopCategories ranks categories by item count. Ties keep the order in which
// the category first appears.
func TopCategories(items []*item.InventoryItem, limit int) []CategoryCount {
	index := make(map[string]int)
	counts := make([]CategoryCount, 0)
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(counts)
			index[it.Category] = i
			counts = append(counts, CategoryCount{Category: it.Category})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// DepartmentDistribution counts items per department in the fixed department
// order, leaving out departments without items.
func DepartmentDistribution(items []*item.InventoryItem) []DepartmentCount {
	counts := make(map[coreUser.Department]int)
	for _, it := range items {
		counts[it.Department]++
	}
	out := make([]DepartmentCount, 0, len(counts))
	for _, d := range coreUser.Departments {
		if n := counts[d]; n > 0 {
			out = append(out, DepartmentCount{Department: d, Count: n})
		}
	}
	return out
}
