package user

import (
	"strings"

	userDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

func ToDataModel(u *coreUser.User) *userDatamodel.User {
	permissions := make([]string, len(u.Permissions))
	for i, p := range u.Permissions {
		permissions[i] = string(p)
	}
	return &userDatamodel.User{
		UserID:      u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		Department:  string(u.Department),
		IsAdmin:     u.IsAdmin,
		Permissions: permissions,
		Credential:  u.Credential,
		CreatedAt:   u.CreatedAt,
	}
}

func FromDataModel(row *userDatamodel.User) *coreUser.User {
	permissions := make([]coreUser.Permission, len(row.Permissions))
	for i, p := range row.Permissions {
		permissions[i] = coreUser.Permission(p)
	}
	return &coreUser.User{
		ID:          row.UserID,
		Username:    row.Username,
		Name:        row.Name,
		Email:       row.Email,
		Department:  coreUser.Department(row.Department),
		IsAdmin:     row.IsAdmin,
		Permissions: permissions,
		Credential:  row.Credential,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

// Matches reports whether search occurs, case-insensitively, in the user's
// name, username, email or department. A blank search matches everyone.
func Matches(u *coreUser.User, search string) bool {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	for _, field := range []string{u.Name, u.Username, u.Email, string(u.Department)} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
