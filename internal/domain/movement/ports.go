package movement

import (
	"context"

	"warelog/internal/core/types"
)

// StockAdjuster applies a signed delta to a (product, warehouse) stock level.
// Implemented by stocklevel.Reconciler.
type StockAdjuster interface {
	Adjust(ctx context.Context, productID, warehouseID int64, delta types.Quantity) error
}

// BatchAdjuster applies a signed delta to a batch's remaining quantity.
// Implemented by batch.Tracker.
type BatchAdjuster interface {
	Adjust(ctx context.Context, batchID int64, delta types.Quantity) error
}

// ExistenceChecker answers whether an entity with the given id exists.
// Satisfied by the generic catalog repositories.
type ExistenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// AuditRecorder captures before/after snapshots of lifecycle operations.
// Recording failures are logged, never fatal.
type AuditRecorder interface {
	RecordChange(ctx context.Context, entityType string, entityID int64, action string, before, after any) error
}
