package batch

import (
	"context"
	"fmt"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
	"warelog/pkg/logger"
)

// Tracker applies signed deltas to a batch's remaining quantity while
// enforcing non-negativity. It is the only writer of Batch.Quantity.
type Tracker struct {
	repo Repository
}

// NewTracker creates a Tracker.
func NewTracker(repo Repository) *Tracker {
	return &Tracker{repo: repo}
}

// Adjust adds delta to the batch's remaining quantity.
// Fails with INSUFFICIENT_BATCH_QUANTITY if the result would be negative.
// Must run inside the caller's transaction so the row lock is held until commit.
func (t *Tracker) Adjust(ctx context.Context, batchID int64, delta types.Quantity) error {
	if delta.IsZero() {
		return nil
	}

	b, err := t.repo.GetForUpdate(ctx, batchID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewReferenceNotFound("batch", batchID)
		}
		return fmt.Errorf("lock batch %d: %w", batchID, err)
	}

	newQuantity := b.Quantity.Add(delta)
	if newQuantity.IsNegative() {
		return apperror.NewInsufficientBatchQuantity(batchID, b.Quantity.String(), delta.Abs().String())
	}

	if err := t.repo.UpdateQuantity(ctx, batchID, newQuantity); err != nil {
		return fmt.Errorf("update batch %d quantity: %w", batchID, err)
	}

	logger.Debug(ctx, "batch quantity adjusted",
		"batch_id", batchID,
		"delta", delta.String(),
		"remaining", newQuantity.String(),
	)
	return nil
}
