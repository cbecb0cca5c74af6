// Package stocklevel contains the per-(product, warehouse) stock aggregate
// and the reconciler that is its only writer.
package stocklevel

import (
	"context"
	"time"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
	"warelog/internal/core/types"
)

// StockLevel is the current on-hand quantity of a product at a warehouse.
// Keyed uniquely by (product_id, warehouse_id); CurrentQuantity is never
// negative and is written only by the Reconciler.
type StockLevel struct {
	entity.BaseEntity

	ProductID         int64           `db:"product_id" json:"productId"`
	WarehouseID       int64           `db:"warehouse_id" json:"warehouseId"`
	CurrentQuantity   types.Quantity  `db:"current_quantity" json:"currentQuantity"`
	ReorderLevel      *types.Quantity `db:"reorder_level" json:"reorderLevel,omitempty"`
	ReorderQuantity   *types.Quantity `db:"reorder_quantity" json:"reorderQuantity,omitempty"`
	LastStockTakeDate *time.Time      `db:"last_stock_take_date" json:"lastStockTakeDate,omitempty"`
}

// Validate implements entity.Validatable.
func (s *StockLevel) Validate(ctx context.Context) error {
	if s.ProductID == 0 {
		return apperror.NewValidation("product is required").WithDetail("field", "productId")
	}
	if s.WarehouseID == 0 {
		return apperror.NewValidation("warehouse is required").WithDetail("field", "warehouseId")
	}
	if s.CurrentQuantity.IsNegative() {
		return apperror.NewValidation("current quantity cannot be negative").
			WithDetail("field", "currentQuantity")
	}
	return nil
}

// BelowReorderLevel reports whether the on-hand quantity has dropped to or
// under the reorder threshold.
func (s *StockLevel) BelowReorderLevel() bool {
	if s.ReorderLevel == nil {
		return false
	}
	return s.CurrentQuantity.LessThanOrEqual(*s.ReorderLevel)
}
