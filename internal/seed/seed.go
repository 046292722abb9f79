// Package seed holds the fixed data set every server start begins from.
package seed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/frahmantamala/inventory-tracker/internal/category"
	categoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/category"
	inventoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/inventory"
	userDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/inventory"
	"github.com/frahmantamala/inventory-tracker/internal/user"
	"gorm.io/gorm"
)

var allPermissions = []coreUser.Permission{
	coreUser.PermissionView,
	coreUser.PermissionEdit,
	coreUser.PermissionAdd,
	coreUser.PermissionDelete,
}

// Users returns the built-in accounts. The administrator signs in with
// admin123, everyone else with password.
func Users(now time.Time) []*coreUser.User {
	created := now.UTC().Truncate(time.Microsecond)
	return []*coreUser.User{
		{ID: coreUser.SeedAdminID, Username: "admin", Name: "Admin User", Email: "admin@example.com",
			Department: coreUser.DepartmentIT, IsAdmin: true, Permissions: allPermissions, Credential: "admin123", CreatedAt: created},
		{ID: "2", Username: "it.manager", Name: "IT Manager", Email: "it.manager@example.com",
			Department: coreUser.DepartmentIT, Permissions: allPermissions, Credential: "password", CreatedAt: created},
		{ID: "3", Username: "hr.clerk", Name: "HR Clerk", Email: "hr.clerk@example.com",
			Department: coreUser.DepartmentHR, Permissions: []coreUser.Permission{coreUser.PermissionView, coreUser.PermissionAdd}, Credential: "password", CreatedAt: created},
		{ID: "4", Username: "sales.viewer", Name: "Sales Viewer", Email: "sales.viewer@example.com",
			Department: coreUser.DepartmentSales, Permissions: []coreUser.Permission{coreUser.PermissionView}, Credential: "password", CreatedAt: created},
		{ID: "5", Username: "support.agent", Name: "Support Agent", Email: "support.agent@example.com",
			Department: coreUser.DepartmentSupport, Permissions: []coreUser.Permission{coreUser.PermissionView, coreUser.PermissionEdit}, Credential: "password", CreatedAt: created},
	}
}

type seedItem struct {
	name, description string
	department        coreUser.Department
	quantity          int
	category          string
	location          string
	addedBy           string
}

var seedItems = []seedItem{
	{"Dell Latitude Laptop", "14 inch business laptop", coreUser.DepartmentIT, 15, "Hardware", "IT Storage Room", "2"},
	{"Network Switch", "24 port managed switch", coreUser.DepartmentIT, 3, "Hardware", "Server Room", "2"},
	{"Office 365 Licenses", "Annual productivity suite seats", coreUser.DepartmentIT, 0, "Software", "Digital", "1"},
	{"Employee Handbooks", "Printed onboarding handbooks", coreUser.DepartmentHR, 25, "Documents", "HR Office", "3"},
	{"Ergonomic Chairs", "Adjustable office chairs", coreUser.DepartmentHR, 4, "Furniture", "HR Office", "1"},
	{"Product Brochures", "Current product line brochures", coreUser.DepartmentSales, 200, "Supplies", "Sales Floor", "1"},
	{"Demo Tablets", "Tablets for customer demos", coreUser.DepartmentSales, 0, "Hardware", "Sales Floor", "1"},
	{"Headsets", "Noise cancelling call headsets", coreUser.DepartmentSupport, 12, "Accessories", "Support Desk", "5"},
	{"Replacement Keyboards", "USB keyboards for swaps", coreUser.DepartmentSupport, 2, "Accessories", "Support Desk", "1"},
	{"Printer Paper", "A4 paper, boxes of 5 reams", coreUser.DepartmentClerks, 40, "Office Supplies", "Supply Closet", "1"},
	{"Toner Cartridges", "Black toner for the office printers", coreUser.DepartmentClerks, 0, "Office Supplies", "Supply Closet", "1"},
	{"Multimeters", "Digital multimeters", coreUser.DepartmentElectric, 6, "Tools", "Workshop", "1"},
	{"Circuit Breakers", "16A replacement breakers", coreUser.DepartmentElectric, 5, "Equipment", "Workshop", "1"},
}

// Items returns the starting inventory. Timestamps step back one hour per
// item from now, so the last item is the most recently updated.
func Items(now time.Time) []*item.InventoryItem {
	base := now.UTC().Truncate(time.Microsecond)
	items := make([]*item.InventoryItem, len(seedItems))
	for i, s := range seedItems {
		items[i] = &item.InventoryItem{
			ID:          strconv.Itoa(i + 1),
			Name:        s.name,
			Description: s.description,
			Department:  s.department,
			Quantity:    s.quantity,
			Category:    s.category,
			Location:    s.location,
			Status:      item.DeriveStatus(s.quantity),
			LastUpdated: base.Add(-time.Duration(len(seedItems)-1-i) * time.Hour),
			AddedBy:     s.addedBy,
		}
	}
	return items
}

// Reset replaces every user, item and category with the seed set in one
// transaction.
func Reset(ctx context.Context, db *gorm.DB, now time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&inventoryDatamodel.InventoryItem{},
			&userDatamodel.User{},
			&categoryDatamodel.InventoryCategory{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		for _, u := range Users(now) {
			if err := tx.Create(user.ToDataModel(u)).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
		}
		for _, it := range Items(now) {
			if err := tx.Create(inventory.ToDataModel(it)).Error; err != nil {
				return fmt.Errorf("seed item %s: %w", it.Name, err)
			}
		}
		for i, name := range category.Recommended {
			c := category.NewCategory(name, "", i+1)
			if err := tx.Create(category.ToDataModel(c)).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", name, err)
			}
		}
		return nil
	})
}
