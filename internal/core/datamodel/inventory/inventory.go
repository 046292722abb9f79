package inventory

import "time"

// InventoryItem is the persisted row. Seq keeps insertion order, which is
// the order every listing returns.
type InventoryItem struct {
	Seq         int64     `gorm:"primaryKey;autoIncrement"`
	ItemID      string    `gorm:"column:item_id;uniqueIndex;not null"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Department  string    `gorm:"column:department;index;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	Category    string    `gorm:"column:category"`
	Location    string    `gorm:"column:location"`
	Status      string    `gorm:"column:status;not null"`
	LastUpdated time.Time `gorm:"column:last_updated;not null"`
	AddedBy     string    `gorm:"column:added_by"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
