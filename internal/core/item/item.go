package item

import (
	"time"

	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

// Status is always derived from quantity and never set directly.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusLow        Status = "low"
	StatusOutOfStock Status = "out-of-stock"
)

var Statuses = []Status{StatusAvailable, StatusLow, StatusOutOfStock}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusLow, StatusOutOfStock:
		return true
	}
	return false
}

// LowStockThreshold is the largest quantity still reported as low.
const LowStockThreshold = 5

// DeriveStatus maps a quantity onto its stock status.
func DeriveStatus(quantity int) Status {
	switch {
	case quantity > LowStockThreshold:
		return StatusAvailable
	case quantity > 0:
		return StatusLow
	default:
		return StatusOutOfStock
	}
}

type InventoryItem struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Department  coreUser.Department `json:"department"`
	Quantity    int                 `json:"quantity"`
	Category    string              `json:"category"`
	Location    string              `json:"location"`
	Status      Status              `json:"status"`
	LastUpdated time.Time           `json:"last_updated"`
	AddedBy     string              `json:"added_by"`
}

// ScopeAll requests a summary across every department.
const ScopeAll = "all"

type DepartmentSummary struct {
	Department      string `json:"department"`
	TotalItems      int    `json:"total_items"`
	AvailableItems  int    `json:"available_items"`
	LowStockItems   int    `json:"low_stock_items"`
	OutOfStockItems int    `json:"out_of_stock_items"`
}

// Summarize counts items by status. Callers filter items to the scope first.
func Summarize(scope string, items []*InventoryItem) DepartmentSummary {
	summary := DepartmentSummary{Department: scope, TotalItems: len(items)}
	for _, it := range items {
		switch it.Status {
		case StatusAvailable:
			summary.AvailableItems++
		case StatusLow:
			summary.LowStockItems++
		case StatusOutOfStock:
			summary.OutOfStockItems++
		}
	}
	return summary
}
