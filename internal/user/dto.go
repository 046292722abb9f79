package user

import (
	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/core/common/validation"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

type CreateUserDTO struct {
	Username    string                `json:"username"`
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Department  coreUser.Department   `json:"department"`
	IsAdmin     bool                  `json:"is_admin"`
	Permissions []coreUser.Permission `json:"permissions"`
	Password    string                `json:"password"`
}

func (d CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MaxLength(100)
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("email", d.Email).Required().Email().MaxLength(254)
	v.Field("department", string(d.Department)).OneOf(departmentNames(), internal.ErrCodeInvalidDepartment)
	v.Field("permissions", permissionNames(d.Permissions)).Required().EachOneOf(allPermissionNames(), internal.ErrCodeInvalidPermission)
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO is a partial update. A blank password keeps the current
// credential.
type UpdateUserDTO struct {
	Username    *string               `json:"username,omitempty"`
	Name        *string               `json:"name,omitempty"`
	Email       *string               `json:"email,omitempty"`
	Department  *coreUser.Department  `json:"department,omitempty"`
	IsAdmin     *bool                 `json:"is_admin,omitempty"`
	Permissions []coreUser.Permission `json:"permissions,omitempty"`
	Password    *string               `json:"password,omitempty"`
}

func (d UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).NotBlank().MaxLength(100)
	v.Field("name", d.Name).NotBlank().MaxLength(200)
	v.Field("email", d.Email).NotBlank().Email().MaxLength(254)
	if d.Department != nil {
		v.Field("department", string(*d.Department)).Required().OneOf(departmentNames(), internal.ErrCodeInvalidDepartment)
	}
	if d.Permissions != nil {
		v.Field("permissions", permissionNames(d.Permissions)).Required().EachOneOf(allPermissionNames(), internal.ErrCodeInvalidPermission)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UsersResponse struct {
	Users []*coreUser.User `json:"users"`
	Total int              `json:"total"`
}

func departmentNames() []string {
	names := make([]string, len(coreUser.Departments))
	for i, d := range coreUser.Departments {
		names[i] = string(d)
	}
	return names
}

func allPermissionNames() []string {
	return permissionNames(coreUser.Permissions)
}

func permissionNames(perms []coreUser.Permission) []string {
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return names
}
