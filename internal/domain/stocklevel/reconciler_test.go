package stocklevel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
	"warelog/internal/domain"
)

type levelKey struct {
	productID   int64
	warehouseID int64
}

// memRepo is an in-memory Repository for reconciler tests.
type memRepo struct {
	nextID int64
	rows   map[levelKey]*StockLevel
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[levelKey]*StockLevel{}}
}

func (r *memRepo) Create(_ context.Context, level *StockLevel) error {
	r.nextID++
	level.ID = r.nextID
	cp := *level
	r.rows[levelKey{level.ProductID, level.WarehouseID}] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*StockLevel, error) {
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("stock level", id)
}

func (r *memRepo) GetByKey(_ context.Context, productID, warehouseID int64) (*StockLevel, error) {
	row, ok := r.rows[levelKey{productID, warehouseID}]
	if !ok {
		return nil, apperror.NewNotFound("stock level", productID)
	}
	cp := *row
	return &cp, nil
}

func (r *memRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*StockLevel, error) {
	return r.GetByKey(ctx, productID, warehouseID)
}

func (r *memRepo) UpdateQuantity(_ context.Context, id int64, quantity types.Quantity) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.CurrentQuantity = quantity
			return nil
		}
	}
	return apperror.NewNotFound("stock level", id)
}

func (r *memRepo) SetReorderPolicy(_ context.Context, id int64, level, quantity *types.Quantity) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.ReorderLevel = level
			row.ReorderQuantity = quantity
			return nil
		}
	}
	return apperror.NewNotFound("stock level", id)
}

func (r *memRepo) RecordStockTake(_ context.Context, id int64, takenAt time.Time) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.LastStockTakeDate = &takenAt
			return nil
		}
	}
	return apperror.NewNotFound("stock level", id)
}

func (r *memRepo) List(_ context.Context, flt domain.ListFilter) (domain.ListResult[*StockLevel], error) {
	result := domain.ListResult[*StockLevel]{Limit: flt.Limit, Offset: flt.Offset}
	for _, row := range r.rows {
		cp := *row
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memRepo) ListBelowReorder(_ context.Context) ([]*StockLevel, error) {
	var out []*StockLevel
	for _, row := range r.rows {
		if row.BelowReorderLevel() {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) quantity(productID, warehouseID int64) types.Quantity {
	row, ok := r.rows[levelKey{productID, warehouseID}]
	if !ok {
		return types.Zero()
	}
	return row.CurrentQuantity
}

func TestReconcilerAdjust_CreatesRowOnPositiveDelta(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo)
	ctx := context.Background()

	err := rec.Adjust(ctx, 1, 10, types.MustQuantity("50"))
	require.NoError(t, err)

	assert.True(t, repo.quantity(1, 10).Equal(types.MustQuantity("50")))
}

func TestReconcilerAdjust_SubtractFromMissingRow(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo)
	ctx := context.Background()

	err := rec.Adjust(ctx, 1, 10, types.MustQuantity("-5"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeStockLevelNotFound))

	// no row was created as a side effect
	_, err = repo.GetByKey(ctx, 1, 10)
	assert.Error(t, err)
}

func TestReconcilerAdjust_Underflow(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo)
	ctx := context.Background()

	require.NoError(t, rec.Adjust(ctx, 1, 10, types.MustQuantity("20")))

	err := rec.Adjust(ctx, 1, 10, types.MustQuantity("-25"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// the row keeps its prior value
	assert.True(t, repo.quantity(1, 10).Equal(types.MustQuantity("20")))
}

func TestReconcilerAdjust_ZeroDeltaIsNoop(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo)
	ctx := context.Background()

	require.NoError(t, rec.Adjust(ctx, 1, 10, types.Zero()))

	// zero delta must not create a row
	_, err := repo.GetByKey(ctx, 1, 10)
	assert.Error(t, err)
}

func TestReconcilerAdjust_DrainToZero(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo)
	ctx := context.Background()

	require.NoError(t, rec.Adjust(ctx, 1, 10, types.MustQuantity("30")))
	require.NoError(t, rec.Adjust(ctx, 1, 10, types.MustQuantity("-30")))

	assert.True(t, repo.quantity(1, 10).IsZero())
}
