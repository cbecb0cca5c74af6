package catalogs

import (
	"context"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
	"warelog/internal/core/types"
)

// Warehouse is a physical storage site. Movements route stock between warehouses.
type Warehouse struct {
	entity.BaseEntity

	Name            string `db:"name" json:"name"`
	LocationID      *int64 `db:"location_id" json:"locationId,omitempty"`
	WarehouseTypeID *int64 `db:"warehouse_type_id" json:"warehouseTypeId,omitempty"`
	IsActive        bool   `db:"is_active" json:"isActive"`
}

// Validate implements entity.Validatable.
func (w *Warehouse) Validate(ctx context.Context) error {
	if w.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}

// WarehouseType classifies warehouses (cold storage, dry goods, hazmat).
type WarehouseType struct {
	entity.BaseEntity

	TypeName            string          `db:"type_name" json:"typeName"`
	Description         *string         `db:"description" json:"description,omitempty"`
	RequiresTempControl bool            `db:"requires_temp_control" json:"requiresTempControl"`
	MinTemperatureC     *types.Quantity `db:"min_temperature_c" json:"minTemperatureC,omitempty"`
	MaxTemperatureC     *types.Quantity `db:"max_temperature_c" json:"maxTemperatureC,omitempty"`
}

// Validate implements entity.Validatable.
func (t *WarehouseType) Validate(ctx context.Context) error {
	if t.TypeName == "" {
		return apperror.NewValidation("type name is required").WithDetail("field", "typeName")
	}
	if t.RequiresTempControl && t.MinTemperatureC == nil && t.MaxTemperatureC == nil {
		return apperror.NewValidation("temperature controlled type needs at least one bound").
			WithDetail("field", "minTemperatureC")
	}
	if t.MinTemperatureC != nil && t.MaxTemperatureC != nil && t.MinTemperatureC.GreaterThan(*t.MaxTemperatureC) {
		return apperror.NewValidation("temperature range is inverted").
			WithDetail("field", "minTemperatureC")
	}
	return nil
}

// Location is a postal address referenced by warehouses and suppliers.
type Location struct {
	entity.BaseEntity

	Address string  `db:"address" json:"address"`
	City    string  `db:"city" json:"city"`
	State   *string `db:"state" json:"state,omitempty"`
	ZipCode *string `db:"zip_code" json:"zipCode,omitempty"`
	Note    *string `db:"note" json:"note,omitempty"`
}

// Validate implements entity.Validatable.
func (l *Location) Validate(ctx context.Context) error {
	if l.Address == "" {
		return apperror.NewValidation("address is required").WithDetail("field", "address")
	}
	if l.City == "" {
		return apperror.NewValidation("city is required").WithDetail("field", "city")
	}
	return nil
}
