package stocklevel

import (
	"context"
	"time"

	"warelog/internal/core/apperror"
	"warelog/internal/core/tx"
	"warelog/internal/core/types"
	"warelog/internal/domain"
)

// Service exposes read access and the stock-take/reorder bookkeeping.
// Quantity mutation is deliberately absent here; that belongs to the Reconciler.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a stock level service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// GetByID retrieves a stock level row.
func (s *Service) GetByID(ctx context.Context, id int64) (*StockLevel, error) {
	level, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("stock level", id)
		}
		return nil, err
	}
	return level, nil
}

// GetByKey retrieves the row for a (product, warehouse) pair.
func (s *Service) GetByKey(ctx context.Context, productID, warehouseID int64) (*StockLevel, error) {
	level, err := s.repo.GetByKey(ctx, productID, warehouseID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewStockLevelNotFound(productID, warehouseID)
		}
		return nil, err
	}
	return level, nil
}

// List retrieves stock levels with filtering.
func (s *Service) List(ctx context.Context, flt domain.ListFilter) (domain.ListResult[*StockLevel], error) {
	return s.repo.List(ctx, flt)
}

// ListBelowReorder retrieves rows at or under their reorder threshold.
func (s *Service) ListBelowReorder(ctx context.Context) ([]*StockLevel, error) {
	return s.repo.ListBelowReorder(ctx)
}

// SetReorderPolicy updates reorder threshold and reorder quantity.
func (s *Service) SetReorderPolicy(ctx context.Context, id int64, level, quantity *types.Quantity) error {
	if level != nil && level.IsNegative() {
		return apperror.NewValidation("reorder level cannot be negative").WithDetail("field", "reorderLevel")
	}
	if quantity != nil && quantity.IsNegative() {
		return apperror.NewValidation("reorder quantity cannot be negative").WithDetail("field", "reorderQuantity")
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return s.repo.SetReorderPolicy(ctx, id, level, quantity)
	})
}

// RecordStockTake stamps the last physical count date.
func (s *Service) RecordStockTake(ctx context.Context, id int64, takenAt time.Time) error {
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return s.repo.RecordStockTake(ctx, id, takenAt)
	})
}
