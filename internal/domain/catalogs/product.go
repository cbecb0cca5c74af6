// Package catalogs contains the reference data models: products, categories,
// warehouses, suppliers, employees and their supporting types.
package catalogs

import (
	"context"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
	"warelog/internal/core/types"
)

// Product is a stock-keeping unit tracked by the inventory.
type Product struct {
	entity.BaseEntity

	// ProductCode is the unique human-readable identifier (SKU)
	ProductCode string `db:"product_code" json:"productCode"`

	Name        string  `db:"name" json:"name"`
	CategoryID  *int64  `db:"category_id" json:"categoryId,omitempty"`
	Description *string `db:"description" json:"description,omitempty"`

	// UnitOfMeasure is the unit quantities are expressed in (pcs, kg, l)
	UnitOfMeasure string `db:"unit_of_measure" json:"unitOfMeasure"`

	MinQuantity    *types.Quantity `db:"min_quantity" json:"minQuantity,omitempty"`
	UnitWeight     *types.Quantity `db:"unit_weight" json:"unitWeight,omitempty"`
	StorageTempMin *types.Quantity `db:"storage_temp_min" json:"storageTempMin,omitempty"`
	StorageTempMax *types.Quantity `db:"storage_temp_max" json:"storageTempMax,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.ProductCode == "" {
		return apperror.NewValidation("product code is required").WithDetail("field", "productCode")
	}
	if p.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if p.UnitOfMeasure == "" {
		return apperror.NewValidation("unit of measure is required").WithDetail("field", "unitOfMeasure")
	}
	if p.StorageTempMin != nil && p.StorageTempMax != nil && p.StorageTempMin.GreaterThan(*p.StorageTempMax) {
		return apperror.NewValidation("storage temperature range is inverted").
			WithDetail("field", "storageTempMin")
	}
	return nil
}
