package batch

import (
	"context"

	"warelog/internal/core/types"
	"warelog/internal/domain"
)

// Repository extends the generic catalog contract with the locked read and the
// quantity write the Tracker needs.
type Repository interface {
	domain.CatalogRepository[*Batch]

	// GetForUpdate loads the batch row under a row-level lock.
	// The caller must be inside a transaction.
	GetForUpdate(ctx context.Context, id int64) (*Batch, error)

	// UpdateQuantity persists a new remaining quantity and refreshes the
	// update timestamp. Only the Tracker calls this.
	UpdateQuantity(ctx context.Context, id int64, quantity types.Quantity) error
}
