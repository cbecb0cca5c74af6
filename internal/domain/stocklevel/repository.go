package stocklevel

import (
	"context"
	"time"

	"warelog/internal/core/types"
	"warelog/internal/domain"
)

// Repository defines storage operations for stock levels.
// Quantity writes go through UpdateQuantity only; the Reconciler is its sole caller.
type Repository interface {
	// Create inserts a new row and assigns the generated ID.
	Create(ctx context.Context, level *StockLevel) error

	// GetByID retrieves a row by primary key.
	GetByID(ctx context.Context, id int64) (*StockLevel, error)

	// GetByKey retrieves the row for a (product, warehouse) pair.
	GetByKey(ctx context.Context, productID, warehouseID int64) (*StockLevel, error)

	// GetForUpdate retrieves the row for a (product, warehouse) pair under a
	// row-level lock. The caller must be inside a transaction.
	GetForUpdate(ctx context.Context, productID, warehouseID int64) (*StockLevel, error)

	// UpdateQuantity persists a new on-hand quantity and refreshes the
	// update timestamp.
	UpdateQuantity(ctx context.Context, id int64, quantity types.Quantity) error

	// SetReorderPolicy updates the reorder threshold and reorder quantity.
	SetReorderPolicy(ctx context.Context, id int64, level, quantity *types.Quantity) error

	// RecordStockTake stamps the last physical count date.
	RecordStockTake(ctx context.Context, id int64, takenAt time.Time) error

	// List retrieves rows with filtering and pagination.
	List(ctx context.Context, flt domain.ListFilter) (domain.ListResult[*StockLevel], error)

	// ListBelowReorder retrieves rows at or under their reorder threshold.
	ListBelowReorder(ctx context.Context) ([]*StockLevel, error)
}
