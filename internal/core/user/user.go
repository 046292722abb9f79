package user

import (
	"slices"
	"time"
)

// Department is the organizational unit that owns inventory items.
type Department string

const (
	DepartmentIT       Department = "IT"
	DepartmentHR       Department = "HR"
	DepartmentSales    Department = "Sales"
	DepartmentSupport  Department = "Support"
	DepartmentClerks   Department = "Clerks"
	DepartmentElectric Department = "Electric"
)

// Departments lists every known department in display order.
var Departments = []Department{
	DepartmentIT,
	DepartmentHR,
	DepartmentSales,
	DepartmentSupport,
	DepartmentClerks,
	DepartmentElectric,
}

func (d Department) IsValid() bool {
	return slices.Contains(Departments, d)
}

func (d Department) String() string {
	return string(d)
}

type Permission string

const (
	PermissionView   Permission = "view"
	PermissionEdit   Permission = "edit"
	PermissionAdd    Permission = "add"
	PermissionDelete Permission = "delete"
)

var Permissions = []Permission{
	PermissionView,
	PermissionEdit,
	PermissionAdd,
	PermissionDelete,
}

func (p Permission) IsValid() bool {
	return slices.Contains(Permissions, p)
}

// SeedAdminID identifies the built-in administrator that can never be deleted.
const SeedAdminID = "1"

// User is an authenticated principal. Credential is never serialized.
type User struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Department  Department   `json:"department"`
	IsAdmin     bool         `json:"is_admin"`
	Permissions []Permission `json:"permissions"`
	Credential  string       `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
}

// HasPermission reports whether p is in the stored permission set.
// Admin status is not considered here.
func (u *User) HasPermission(p Permission) bool {
	if u == nil {
		return false
	}
	return slices.Contains(u.Permissions, p)
}

func (u *User) IsSeedAdmin() bool {
	return u != nil && u.ID == SeedAdminID
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Permissions = slices.Clone(u.Permissions)
	return &c
}
