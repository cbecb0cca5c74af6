package movement

import (
	"context"
	"fmt"
	"time"

	"warelog/internal/core/apperror"
	"warelog/internal/core/tx"
	"warelog/internal/core/types"
	"warelog/internal/domain"
	"warelog/pkg/logger"
)

// UpdateFields carries a partial movement edit. Nil fields keep their stored
// value. Warehouse routing fields distinguish "not sent" from "clear": set
// ClearSourceWarehouse/ClearDestinationWarehouse to null a side out.
type UpdateFields struct {
	ProcessNumber             *int64
	MovementTimestamp         *time.Time
	MovementType              *Type
	ProductID                 *int64
	BatchID                   *int64
	Quantity                  *types.Quantity
	SourceWarehouseID         *int64
	ClearSourceWarehouse      bool
	DestinationWarehouseID    *int64
	ClearDestinationWarehouse bool
	EmployeeID                *int64
	SupplierID                *int64
	ClearSupplier             bool
	ReferenceDocument         *string
	Note                      *string
}

// Service is the movement lifecycle orchestrator: the only entry point for
// creating, editing and deleting movements. Every lifecycle operation runs in
// a single transaction spanning the movement row and all touched stock level
// and batch rows.
type Service struct {
	repo      Repository
	refs      References
	stock     StockAdjuster
	batches   BatchAdjuster
	txManager tx.Manager
	audit     AuditRecorder
}

// NewService creates the orchestrator. audit may be nil.
func NewService(
	repo Repository,
	refs References,
	stock StockAdjuster,
	batches BatchAdjuster,
	txManager tx.Manager,
	audit AuditRecorder,
) *Service {
	return &Service{
		repo:      repo,
		refs:      refs,
		stock:     stock,
		batches:   batches,
		txManager: txManager,
		audit:     audit,
	}
}

// apply routes an impact through the reconciler and tracker. Stock deltas run
// in declaration order so Transfer drains the source before filling the
// destination.
func (s *Service) apply(ctx context.Context, impact Impact) error {
	for _, d := range impact.Stock {
		if err := s.stock.Adjust(ctx, d.ProductID, d.WarehouseID, d.Delta); err != nil {
			return err
		}
	}
	if impact.Batch != nil {
		if err := s.batches.Adjust(ctx, impact.Batch.BatchID, impact.Batch.Delta); err != nil {
			return err
		}
	}
	return nil
}

// reverse undoes a stored movement's effect by applying the negated impact.
// Any failure is wrapped as REVERSAL_FAILURE: the aggregates no longer admit
// the inverse, which is a consistency breach and blocks the caller.
func (s *Service) reverse(ctx context.Context, m *StockMovement) error {
	impact, err := ComputeImpact(m)
	if err != nil {
		return apperror.NewReversalFailure(m.ID, err)
	}
	if err := s.apply(ctx, impact.Inverse()); err != nil {
		return apperror.NewReversalFailure(m.ID, err)
	}
	return nil
}

// Create validates and records a movement, applying its full aggregate effect
// atomically with the row insert.
func (s *Service) Create(ctx context.Context, m *StockMovement) (*StockMovement, error) {
	if m.MovementTimestamp.IsZero() {
		m.MovementTimestamp = time.Now()
	}
	if err := m.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.refs.Validate(ctx, m); err != nil {
		return nil, err
	}

	impact, err := ComputeImpact(m)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.apply(ctx, impact); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, m); err != nil {
			return fmt.Errorf("persist movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, m.ID, "create", nil, m)
	logger.Info(ctx, "movement recorded",
		"movement_id", m.ID,
		"type", string(m.MovementType),
		"product_id", m.ProductID,
		"quantity", m.Quantity.String(),
	)
	return m, nil
}

// Update edits a stored movement. The prior effect is reversed, the edited
// row persisted, and the new effect applied, all in one transaction; a
// failure at any step (including insufficient stock under the new numbers)
// rolls everything back to the original row and aggregate state.
func (s *Service) Update(ctx context.Context, id int64, fields UpdateFields) (*StockMovement, error) {
	var updated *StockMovement
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Lock the movement row so a concurrent edit cannot leave a stale
		// impact to reverse.
		existing, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("stock movement", id)
			}
			return err
		}
		before := *existing

		merged := before
		fields.applyTo(&merged)
		if err := merged.Validate(ctx); err != nil {
			return err
		}
		if err := s.refs.Validate(ctx, &merged); err != nil {
			return err
		}

		// Undo the stored effect before the new one is computed.
		if err := s.reverse(ctx, &before); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, &merged); err != nil {
			return fmt.Errorf("persist movement update: %w", err)
		}

		newImpact, err := ComputeImpact(&merged)
		if err != nil {
			return err
		}
		if err := s.apply(ctx, newImpact); err != nil {
			return err
		}

		updated = &merged
		s.recordAudit(ctx, id, "update", &before, &merged)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "movement updated", "movement_id", id, "type", string(updated.MovementType))
	return updated, nil
}

// Delete retracts a stored movement: its effect is reversed and the row
// removed in one transaction. Reversal failure blocks deletion.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("stock movement", id)
			}
			return err
		}

		if err := s.reverse(ctx, existing); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete movement row: %w", err)
		}

		s.recordAudit(ctx, id, "delete", existing, nil)
		return nil
	})
	if err != nil {
		if apperror.IsReversalFailure(err) {
			logger.Error(ctx, "movement reversal failed, deletion blocked",
				"movement_id", id, "error", err)
		}
		return err
	}

	logger.Info(ctx, "movement deleted", "movement_id", id)
	return nil
}

// GetByID retrieves a movement. Read-only, no aggregate side effects.
func (s *Service) GetByID(ctx context.Context, id int64) (*StockMovement, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("stock movement", id)
		}
		return nil, err
	}
	return m, nil
}

// List retrieves movements with generic filtering.
func (s *Service) List(ctx context.Context, flt domain.ListFilter) (domain.ListResult[*StockMovement], error) {
	return s.repo.List(ctx, flt)
}

// Search retrieves movements matching the field-level filter.
func (s *Service) Search(ctx context.Context, flt SearchFilter) (domain.ListResult[*StockMovement], error) {
	return s.repo.Search(ctx, flt)
}

// Lookups returns the distinct values backing the search form.
type Lookups struct {
	ProductIDs     []int64     `json:"productIds"`
	EmployeeIDs    []int64     `json:"employeeIds"`
	SupplierIDs    []int64     `json:"supplierIds"`
	Types          []Type      `json:"types"`
	Dates          []time.Time `json:"dates"`
	ProcessNumbers []int64     `json:"processNumbers"`
}

// DistinctLookups gathers the distinct values of the searchable columns.
func (s *Service) DistinctLookups(ctx context.Context) (*Lookups, error) {
	var (
		l   Lookups
		err error
	)
	if l.ProductIDs, err = s.repo.DistinctProductIDs(ctx); err != nil {
		return nil, err
	}
	if l.EmployeeIDs, err = s.repo.DistinctEmployeeIDs(ctx); err != nil {
		return nil, err
	}
	if l.SupplierIDs, err = s.repo.DistinctSupplierIDs(ctx); err != nil {
		return nil, err
	}
	if l.Types, err = s.repo.DistinctTypes(ctx); err != nil {
		return nil, err
	}
	if l.Dates, err = s.repo.DistinctDates(ctx); err != nil {
		return nil, err
	}
	if l.ProcessNumbers, err = s.repo.DistinctProcessNumbers(ctx); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Service) recordAudit(ctx context.Context, id int64, action string, before, after any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.RecordChange(ctx, "stock_movement", id, action, before, after); err != nil {
		logger.Warn(ctx, "audit record failed", "movement_id", id, "action", action, "error", err)
	}
}

// applyTo merges the edit onto m.
func (f UpdateFields) applyTo(m *StockMovement) {
	if f.ProcessNumber != nil {
		m.ProcessNumber = f.ProcessNumber
	}
	if f.MovementTimestamp != nil {
		m.MovementTimestamp = *f.MovementTimestamp
	}
	if f.MovementType != nil {
		m.MovementType = *f.MovementType
	}
	if f.ProductID != nil {
		m.ProductID = *f.ProductID
	}
	if f.BatchID != nil {
		m.BatchID = *f.BatchID
	}
	if f.Quantity != nil {
		m.Quantity = *f.Quantity
	}
	if f.ClearSourceWarehouse {
		m.SourceWarehouseID = nil
	} else if f.SourceWarehouseID != nil {
		m.SourceWarehouseID = f.SourceWarehouseID
	}
	if f.ClearDestinationWarehouse {
		m.DestinationWarehouseID = nil
	} else if f.DestinationWarehouseID != nil {
		m.DestinationWarehouseID = f.DestinationWarehouseID
	}
	if f.EmployeeID != nil {
		m.EmployeeID = *f.EmployeeID
	}
	if f.ClearSupplier {
		m.SupplierID = nil
	} else if f.SupplierID != nil {
		m.SupplierID = f.SupplierID
	}
	if f.ReferenceDocument != nil {
		m.ReferenceDocument = *f.ReferenceDocument
	}
	if f.Note != nil {
		m.Note = f.Note
	}
}
