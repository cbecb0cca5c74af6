package stocklevel

import (
	"context"
	"fmt"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
	"warelog/pkg/logger"
)

// Reconciler applies signed deltas to stock level rows while enforcing the
// non-negativity invariant. It is the single chokepoint for stock mutation;
// no other code writes CurrentQuantity.
type Reconciler struct {
	repo Repository
}

// NewReconciler creates a Reconciler.
func NewReconciler(repo Repository) *Reconciler {
	return &Reconciler{repo: repo}
}

// Adjust adds delta to the (product, warehouse) stock level.
//
// A missing row is created with quantity zero when the delta is positive.
// Subtracting against a missing row fails with STOCK_LEVEL_NOT_FOUND, and a
// result below zero fails with INSUFFICIENT_STOCK leaving the row untouched.
// Must run inside the caller's transaction so the row lock is held until commit.
func (r *Reconciler) Adjust(ctx context.Context, productID, warehouseID int64, delta types.Quantity) error {
	if delta.IsZero() {
		return nil
	}

	level, err := r.repo.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return fmt.Errorf("lock stock level (%d, %d): %w", productID, warehouseID, err)
		}
		if delta.IsNegative() {
			return apperror.NewStockLevelNotFound(productID, warehouseID)
		}
		level = &StockLevel{
			ProductID:       productID,
			WarehouseID:     warehouseID,
			CurrentQuantity: types.Zero(),
		}
		if err := r.repo.Create(ctx, level); err != nil {
			return fmt.Errorf("create stock level (%d, %d): %w", productID, warehouseID, err)
		}
	}

	newQuantity := level.CurrentQuantity.Add(delta)
	if newQuantity.IsNegative() {
		return apperror.NewInsufficientStock(
			productID, warehouseID,
			level.CurrentQuantity.String(), delta.Abs().String(),
		)
	}

	if err := r.repo.UpdateQuantity(ctx, level.ID, newQuantity); err != nil {
		return fmt.Errorf("update stock level %d: %w", level.ID, err)
	}

	logger.Debug(ctx, "stock level adjusted",
		"product_id", productID,
		"warehouse_id", warehouseID,
		"delta", delta.String(),
		"on_hand", newQuantity.String(),
	)
	return nil
}
