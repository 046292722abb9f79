package category

import "time"

// InventoryCategory is a recommended item category. Items store their
// category as free text, so this table only drives suggestions.
type InventoryCategory struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	SortOrder   int       `gorm:"column:sort_order;not null"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (InventoryCategory) TableName() string {
	return "inventory_categories"
}
