package inventory

import (
	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/core/common/validation"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

// CreateItemDTO is the candidate for a new item. Status, id, timestamp and
// author are always assigned by the store.
type CreateItemDTO struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Department  coreUser.Department `json:"department"`
	Quantity    int                 `json:"quantity"`
	Category    string              `json:"category"`
	Location    string              `json:"location"`
}

func (d CreateItemDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("description", d.Description).Required().MaxLength(2000)
	v.Field("department", string(d.Department)).Required().OneOf(departmentNames(), internal.ErrCodeInvalidDepartment)
	v.Field("quantity", d.Quantity).MinInt(0, internal.ErrCodeNegativeQuantity)
	v.Field("category", d.Category).Required().MaxLength(100)
	v.Field("location", d.Location).Required().MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateItemDTO is a partial update. Nil fields are left unchanged.
type UpdateItemDTO struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	Department  *coreUser.Department `json:"department,omitempty"`
	Quantity    *int                 `json:"quantity,omitempty"`
	Category    *string              `json:"category,omitempty"`
	Location    *string              `json:"location,omitempty"`
}

func (d UpdateItemDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).NotBlank().MaxLength(200)
	v.Field("description", d.Description).NotBlank().MaxLength(2000)
	if d.Department != nil {
		v.Field("department", string(*d.Department)).Required().OneOf(departmentNames(), internal.ErrCodeInvalidDepartment)
	}
	v.Field("quantity", d.Quantity).MinInt(0, internal.ErrCodeNegativeQuantity)
	v.Field("category", d.Category).NotBlank().MaxLength(100)
	v.Field("location", d.Location).NotBlank().MaxLength(200)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateItemDTO) IsEmpty() bool {
	return d.Name == nil && d.Description == nil && d.Department == nil &&
		d.Quantity == nil && d.Category == nil && d.Location == nil
}

type ItemsResponse struct {
	Items []*item.InventoryItem `json:"items"`
	Total int                   `json:"total"`
}

// FormDefaults seeds the add-item form for the requester.
type FormDefaults struct {
	Department            coreUser.Department   `json:"department"`
	DepartmentLocked      bool                  `json:"department_locked"`
	Departments           []coreUser.Department `json:"departments"`
	RecommendedCategories []string              `json:"recommended_categories"`
}

func departmentNames() []string {
	names := make([]string, len(coreUser.Departments))
	for i, d := range coreUser.Departments {
		names[i] = string(d)
	}
	return names
}
