package postgres

import (
	"context"
	"errors"

	inventoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/inventory"
	"github.com/frahmantamala/inventory-tracker/internal/inventory"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) inventory.RepositoryAPI {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetAll(ctx context.Context) ([]*inventoryDatamodel.InventoryItem, error) {
	var rows []*inventoryDatamodel.InventoryItem
	err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error
	return rows, err
}

func (r *InventoryRepository) GetByDepartment(ctx context.Context, department string) ([]*inventoryDatamodel.InventoryItem, error) {
	var rows []*inventoryDatamodel.InventoryItem
	err := r.db.WithContext(ctx).Where("department = ?", department).Order("seq ASC").Find(&rows).Error
	return rows, err
}

func (r *InventoryRepository) GetByID(ctx context.Context, itemID string) (*inventoryDatamodel.InventoryItem, error) {
	var row inventoryDatamodel.InventoryItem
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *InventoryRepository) Create(ctx context.Context, row *inventoryDatamodel.InventoryItem) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *InventoryRepository) Update(ctx context.Context, row *inventoryDatamodel.InventoryItem) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *InventoryRepository) Delete(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&inventoryDatamodel.InventoryItem{}).Error
}
