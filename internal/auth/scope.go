package auth

import (
	"slices"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

// VisibleItems returns the items u may see, preserving input order.
// Administrators see the full collection, other users only their own
// department, and an absent user sees nothing.
func VisibleItems(u *coreUser.User, all []*item.InventoryItem) []*item.InventoryItem {
	if u == nil {
		return []*item.InventoryItem{}
	}
	if u.IsAdmin {
		return all
	}
	visible := make([]*item.InventoryItem, 0, len(all))
	for _, it := range all {
		if it.Department == u.Department {
			visible = append(visible, it)
		}
	}
	return visible
}

// CanPerform reports whether u holds action. Administrators hold every action
// and every signed-in user may view, whatever is stored.
func CanPerform(u *coreUser.User, action coreUser.Permission) bool {
	if u == nil {
		return false
	}
	if action == coreUser.PermissionView || u.IsAdmin {
		return true
	}
	return u.HasPermission(action)
}

// DefaultDepartmentFor is the department preselected when u creates an item.
func DefaultDepartmentFor(u *coreUser.User) coreUser.Department {
	if u == nil || u.IsAdmin {
		return coreUser.DepartmentIT
	}
	return u.Department
}

// InScope reports whether department falls inside u's visibility scope.
func InScope(u *coreUser.User, department coreUser.Department) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin || u.Department == department
}

// EffectivePermissions is the action set u is actually allowed.
func EffectivePermissions(u *coreUser.User) []coreUser.Permission {
	if u == nil {
		return []coreUser.Permission{}
	}
	if u.IsAdmin {
		return slices.Clone(coreUser.Permissions)
	}
	effective := make([]coreUser.Permission, 0, len(coreUser.Permissions))
	for _, p := range coreUser.Permissions {
		if CanPerform(u, p) {
			effective = append(effective, p)
		}
	}
	return effective
}

// Authorize combines the permission and department-scope checks applied to
// every mutating command on an item owned by department.
func Authorize(u *coreUser.User, action coreUser.Permission, department coreUser.Department) error {
	if !CanPerform(u, action) {
		return internal.ErrMissingPermission
	}
	if !InScope(u, department) {
		return internal.ErrOutOfScope
	}
	return nil
}
