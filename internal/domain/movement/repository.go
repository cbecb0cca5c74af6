package movement

import (
	"context"
	"time"

	"warelog/internal/core/types"
	"warelog/internal/domain"
)

// SearchFilter mirrors the movement's own fields for the search endpoint.
// Nil fields are ignored; string fields match as case-insensitive substrings.
type SearchFilter struct {
	ProcessNumber          *int64
	MovementType           *Type
	ProductID              *int64
	BatchID                *int64
	SourceWarehouseID      *int64
	DestinationWarehouseID *int64
	EmployeeID             *int64
	SupplierID             *int64
	ReferenceDocument      *string
	Note                   *string
	Quantity               *types.Quantity
	MovementDateFrom       *time.Time
	MovementDateTo         *time.Time

	OrderBy string
	Limit   int
	Offset  int
}

// Repository defines storage operations for movement rows.
type Repository interface {
	// Create inserts a new movement and assigns the generated ID.
	Create(ctx context.Context, m *StockMovement) error

	// GetByID retrieves a movement by ID.
	GetByID(ctx context.Context, id int64) (*StockMovement, error)

	// GetByIDForUpdate retrieves a movement under a row-level lock so the
	// stored impact cannot change between read and reversal. The caller must
	// be inside a transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*StockMovement, error)

	// Update persists all fields of an existing movement.
	Update(ctx context.Context, m *StockMovement) error

	// Delete removes the movement row.
	Delete(ctx context.Context, id int64) error

	// List retrieves movements with generic filtering and pagination.
	List(ctx context.Context, flt domain.ListFilter) (domain.ListResult[*StockMovement], error)

	// Search retrieves movements matching the field-level filter.
	Search(ctx context.Context, flt SearchFilter) (domain.ListResult[*StockMovement], error)

	// Distinct lookups backing the search form's dropdowns.
	DistinctProductIDs(ctx context.Context) ([]int64, error)
	DistinctEmployeeIDs(ctx context.Context) ([]int64, error)
	DistinctSupplierIDs(ctx context.Context) ([]int64, error)
	DistinctTypes(ctx context.Context) ([]Type, error)
	DistinctDates(ctx context.Context) ([]time.Time, error)
	DistinctProcessNumbers(ctx context.Context) ([]int64, error)
}
