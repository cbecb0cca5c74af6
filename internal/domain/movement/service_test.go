package movement

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
	"warelog/internal/core/types"
	"warelog/internal/domain"
	"warelog/internal/domain/batch"
	"warelog/internal/domain/stocklevel"
)

// The fixtures below run the real Reconciler and Tracker against in-memory
// repositories, with a snapshotting transaction manager so a failing
// operation rolls every aggregate back exactly like Postgres would.

type stockKey struct {
	productID   int64
	warehouseID int64
}

type memStockRepo struct {
	nextID int64
	rows   map[stockKey]*stocklevel.StockLevel
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{rows: map[stockKey]*stocklevel.StockLevel{}}
}

func (r *memStockRepo) Create(_ context.Context, level *stocklevel.StockLevel) error {
	r.nextID++
	level.ID = r.nextID
	cp := *level
	r.rows[stockKey{level.ProductID, level.WarehouseID}] = &cp
	return nil
}

func (r *memStockRepo) GetByID(_ context.Context, id int64) (*stocklevel.StockLevel, error) {
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("stock level", id)
}

func (r *memStockRepo) GetByKey(_ context.Context, productID, warehouseID int64) (*stocklevel.StockLevel, error) {
	row, ok := r.rows[stockKey{productID, warehouseID}]
	if !ok {
		return nil, apperror.NewNotFound("stock level", productID)
	}
	cp := *row
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*stocklevel.StockLevel, error) {
	return r.GetByKey(ctx, productID, warehouseID)
}

func (r *memStockRepo) UpdateQuantity(_ context.Context, id int64, quantity types.Quantity) error {
	for _, row := range r.rows {
		if row.ID == id {
			row.CurrentQuantity = quantity
			return nil
		}
	}
	return apperror.NewNotFound("stock level", id)
}

func (r *memStockRepo) SetReorderPolicy(_ context.Context, id int64, level, quantity *types.Quantity) error {
	return nil
}

func (r *memStockRepo) RecordStockTake(_ context.Context, id int64, takenAt time.Time) error {
	return nil
}

func (r *memStockRepo) List(_ context.Context, flt domain.ListFilter) (domain.ListResult[*stocklevel.StockLevel], error) {
	return domain.ListResult[*stocklevel.StockLevel]{}, nil
}

func (r *memStockRepo) ListBelowReorder(_ context.Context) ([]*stocklevel.StockLevel, error) {
	return nil, nil
}

func (r *memStockRepo) snapshot() map[stockKey]*stocklevel.StockLevel {
	cp := make(map[stockKey]*stocklevel.StockLevel, len(r.rows))
	for k, v := range r.rows {
		row := *v
		cp[k] = &row
	}
	return cp
}

func (r *memStockRepo) quantity(productID, warehouseID int64) types.Quantity {
	row, ok := r.rows[stockKey{productID, warehouseID}]
	if !ok {
		return types.Zero()
	}
	return row.CurrentQuantity
}

type memBatchRepo struct {
	rows map[int64]*batch.Batch
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{rows: map[int64]*batch.Batch{}}
}

func (r *memBatchRepo) Create(_ context.Context, b *batch.Batch) error {
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *memBatchRepo) GetByID(_ context.Context, id int64) (*batch.Batch, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFound("batch", id)
	}
	cp := *row
	return &cp, nil
}

func (r *memBatchRepo) GetForUpdate(ctx context.Context, id int64) (*batch.Batch, error) {
	return r.GetByID(ctx, id)
}

func (r *memBatchRepo) Update(_ context.Context, b *batch.Batch) error {
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *memBatchRepo) Delete(_ context.Context, id int64) error {
	delete(r.rows, id)
	return nil
}

func (r *memBatchRepo) List(_ context.Context, flt domain.ListFilter) (domain.ListResult[*batch.Batch], error) {
	return domain.ListResult[*batch.Batch]{}, nil
}

func (r *memBatchRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memBatchRepo) UpdateQuantity(_ context.Context, id int64, quantity types.Quantity) error {
	row, ok := r.rows[id]
	if !ok {
		return apperror.NewNotFound("batch", id)
	}
	row.Quantity = quantity
	return nil
}

func (r *memBatchRepo) snapshot() map[int64]*batch.Batch {
	cp := make(map[int64]*batch.Batch, len(r.rows))
	for k, v := range r.rows {
		row := *v
		cp[k] = &row
	}
	return cp
}

func (r *memBatchRepo) quantity(id int64) types.Quantity {
	row, ok := r.rows[id]
	if !ok {
		return types.Zero()
	}
	return row.Quantity
}

type memMovementRepo struct {
	nextID int64
	rows   map[int64]*StockMovement

	// stale, when set, is served by the unlocked GetByID in place of the
	// current row, standing in for a snapshot read racing a committed edit.
	stale map[int64]*StockMovement
}

func newMemMovementRepo() *memMovementRepo {
	return &memMovementRepo{rows: map[int64]*StockMovement{}}
}

func (r *memMovementRepo) Create(_ context.Context, m *StockMovement) error {
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.rows[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id int64) (*StockMovement, error) {
	if row, ok := r.stale[id]; ok {
		cp := *row
		return &cp, nil
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFound("stock movement", id)
	}
	cp := *row
	return &cp, nil
}

func (r *memMovementRepo) GetByIDForUpdate(_ context.Context, id int64) (*StockMovement, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFound("stock movement", id)
	}
	cp := *row
	return &cp, nil
}

func (r *memMovementRepo) Update(_ context.Context, m *StockMovement) error {
	if _, ok := r.rows[m.ID]; !ok {
		return apperror.NewNotFound("stock movement", m.ID)
	}
	cp := *m
	r.rows[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return apperror.NewNotFound("stock movement", id)
	}
	delete(r.rows, id)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, flt domain.ListFilter) (domain.ListResult[*StockMovement], error) {
	return domain.ListResult[*StockMovement]{}, nil
}

func (r *memMovementRepo) Search(_ context.Context, flt SearchFilter) (domain.ListResult[*StockMovement], error) {
	return domain.ListResult[*StockMovement]{}, nil
}

func (r *memMovementRepo) DistinctProductIDs(_ context.Context) ([]int64, error)     { return nil, nil }
func (r *memMovementRepo) DistinctEmployeeIDs(_ context.Context) ([]int64, error)    { return nil, nil }
func (r *memMovementRepo) DistinctSupplierIDs(_ context.Context) ([]int64, error)    { return nil, nil }
func (r *memMovementRepo) DistinctTypes(_ context.Context) ([]Type, error)           { return nil, nil }
func (r *memMovementRepo) DistinctDates(_ context.Context) ([]time.Time, error)      { return nil, nil }
func (r *memMovementRepo) DistinctProcessNumbers(_ context.Context) ([]int64, error) { return nil, nil }

func (r *memMovementRepo) snapshot() map[int64]*StockMovement {
	cp := make(map[int64]*StockMovement, len(r.rows))
	for k, v := range r.rows {
		row := *v
		cp[k] = &row
	}
	return cp
}

// snapshotTxManager restores every store to its pre-transaction state when
// the function fails.
type snapshotTxManager struct {
	stock     *memStockRepo
	batches   *memBatchRepo
	movements *memMovementRepo
}

func (m *snapshotTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	stockSnap := m.stock.snapshot()
	batchSnap := m.batches.snapshot()
	movementSnap := m.movements.snapshot()
	movementNextID := m.movements.nextID

	if err := fn(ctx); err != nil {
		m.stock.rows = stockSnap
		m.batches.rows = batchSnap
		m.movements.rows = movementSnap
		m.movements.nextID = movementNextID
		return err
	}
	return nil
}

type fixture struct {
	service   *Service
	stock     *memStockRepo
	batches   *memBatchRepo
	movements *memMovementRepo
}

const (
	testProduct  = int64(1)
	testBatch    = int64(2)
	testEmployee = int64(3)
	warehouseA   = int64(10)
	warehouseB   = int64(20)
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	stockRepo := newMemStockRepo()
	batchRepo := newMemBatchRepo()
	movementRepo := newMemMovementRepo()

	require.NoError(t, batchRepo.Create(context.Background(), &batch.Batch{
		BaseEntity:   entity.BaseEntity{ID: testBatch},
		ProductID:    testProduct,
		SerialNumber: "SN-1",
		LotNumber:    "LOT-1",
		Quantity:     types.Zero(),
		BatchStatus:  batch.StatusActive,
	}))

	refs := References{
		Products:   setChecker{testProduct: true},
		Batches:    batchRepo,
		Warehouses: setChecker{warehouseA: true, warehouseB: true},
		Employees:  setChecker{testEmployee: true},
		Suppliers:  setChecker{},
	}

	txm := &snapshotTxManager{stock: stockRepo, batches: batchRepo, movements: movementRepo}
	svc := NewService(
		movementRepo,
		refs,
		stocklevel.NewReconciler(stockRepo),
		batch.NewTracker(batchRepo),
		txm,
		nil,
	)

	return &fixture{service: svc, stock: stockRepo, batches: batchRepo, movements: movementRepo}
}

func (f *fixture) record(t *testing.T, mt Type, qty string, src, dst *int64) *StockMovement {
	t.Helper()
	m, err := f.service.Create(context.Background(), f.movement(mt, qty, src, dst))
	require.NoError(t, err)
	return m
}

func (f *fixture) movement(mt Type, qty string, src, dst *int64) *StockMovement {
	return &StockMovement{
		MovementType:           mt,
		ProductID:              testProduct,
		BatchID:                testBatch,
		Quantity:               types.MustQuantity(qty),
		SourceWarehouseID:      src,
		DestinationWarehouseID: dst,
		EmployeeID:             testEmployee,
		ReferenceDocument:      "DOC-1",
	}
}

func TestServiceCreate_InboundSetsStockAndBatch(t *testing.T) {
	f := newFixture(t)

	m := f.record(t, TypeInbound, "50", nil, ptr(warehouseA))

	assert.NotZero(t, m.ID)
	assert.False(t, m.MovementTimestamp.IsZero())
	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(types.MustQuantity("50")))
	assert.True(t, f.batches.quantity(testBatch).Equal(types.MustQuantity("50")))
}

func TestServiceCreate_FailureLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)

	// outbound against an empty warehouse
	_, err := f.service.Create(context.Background(), f.movement(TypeOutbound, "5", ptr(warehouseA), nil))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeStockLevelNotFound))

	assert.Empty(t, f.movements.rows)
	assert.True(t, f.stock.quantity(testProduct, warehouseA).IsZero())
	assert.True(t, f.batches.quantity(testBatch).IsZero())
}

func TestServiceCreate_UnknownReferenceRejected(t *testing.T) {
	f := newFixture(t)

	m := f.movement(TypeInbound, "5", nil, ptr(int64(999)))
	_, err := f.service.Create(context.Background(), m)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeReferenceNotFound))
	assert.Empty(t, f.movements.rows)
}

// The canonical lifecycle walk: receive 50 into A, issue 20, move 10 to B,
// fail to issue 25, then retract the transfer.
func TestServiceLifecycle_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.record(t, TypeInbound, "50", nil, ptr(warehouseA))
	f.record(t, TypeOutbound, "20", ptr(warehouseA), nil)
	transfer := f.record(t, TypeTransfer, "10", ptr(warehouseA), ptr(warehouseB))

	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(types.MustQuantity("20")))
	assert.True(t, f.stock.quantity(testProduct, warehouseB).Equal(types.MustQuantity("10")))
	assert.True(t, f.batches.quantity(testBatch).Equal(types.MustQuantity("30")))

	// issuing 25 from A must fail and change nothing
	_, err := f.service.Create(ctx, f.movement(TypeOutbound, "25", ptr(warehouseA), nil))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(types.MustQuantity("20")))
	assert.True(t, f.stock.quantity(testProduct, warehouseB).Equal(types.MustQuantity("10")))

	// retracting the transfer puts the 10 back
	require.NoError(t, f.service.Delete(ctx, transfer.ID))
	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(types.MustQuantity("30")))
	assert.True(t, f.stock.quantity(testProduct, warehouseB).IsZero())
	assert.True(t, f.batches.quantity(testBatch).Equal(types.MustQuantity("30")))
}

func TestServiceDelete_ExactlyUndoesCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.record(t, TypeInbound, "40", nil, ptr(warehouseA))
	require.NoError(t, f.service.Delete(ctx, m.ID))

	assert.True(t, f.stock.quantity(testProduct, warehouseA).IsZero())
	assert.True(t, f.batches.quantity(testBatch).IsZero())

	_, err := f.service.GetByID(ctx, m.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceUpdate_EquivalentToDeleteAndCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.record(t, TypeInbound, "100", nil, ptr(warehouseA))
	m := f.record(t, TypeOutbound, "30", ptr(warehouseA), nil)

	newQty := types.MustQuantity("10")
	updated, err := f.service.Update(ctx, m.ID, UpdateFields{Quantity: &newQty})
	require.NoError(t, err)

	assert.True(t, updated.Quantity.Equal(newQty))
	// 100 in, 10 out
	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(types.MustQuantity("90")))
	assert.True(t, f.batches.quantity(testBatch).Equal(types.MustQuantity("90")))
}

func TestServiceUpdate_RetargetsWarehouse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.record(t, TypeInbound, "50", nil, ptr(warehouseA))

	updated, err := f.service.Update(ctx, m.ID, UpdateFields{DestinationWarehouseID: ptr(warehouseB)})
	require.NoError(t, err)

	assert.Equal(t, warehouseB, *updated.DestinationWarehouseID)
	assert.True(t, f.stock.quantity(testProduct, warehouseA).IsZero())
	assert.True(t, f.stock.quantity(testProduct, warehouseB).Equal(types.MustQuantity("50")))
}

func TestServiceUpdate_FailureRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.record(t, TypeInbound, "50", nil, ptr(warehouseA))
	m := f.record(t, TypeOutbound, "10", ptr(warehouseA), nil)

	// raising the issue to 60 underflows warehouse A
	newQty := types.MustQuantity("60")
	_, err := f.service.Update(ctx, m.ID, UpdateFields{Quantity: &newQty})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// stored row and aggregates are unchanged
	stored, getErr := f.service.GetByID(ctx, m.ID)
	require.NoError(t, getErr)
	assert.True(t, stored.Quantity.Equal(types.MustQuantity("10")))
	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(types.MustQuantity("40")))
	assert.True(t, f.batches.quantity(testBatch).Equal(types.MustQuantity("40")))
}

func TestServiceUpdate_InvalidShapeRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.record(t, TypeInbound, "50", nil, ptr(warehouseA))

	// adding a source to an inbound breaks the shape
	_, err := f.service.Update(ctx, m.ID, UpdateFields{SourceWarehouseID: ptr(warehouseB)})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidMovementShape))

	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(types.MustQuantity("50")))
}

func TestServiceDelete_ReversalFailureBlocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.record(t, TypeInbound, "50", nil, ptr(warehouseA))

	// drain the batch behind the engine's back so the inverse cannot apply
	require.NoError(t, f.batches.UpdateQuantity(ctx, testBatch, types.MustQuantity("5")))

	err := f.service.Delete(ctx, m.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsReversalFailure(err))

	// the movement survives and nothing was partially reversed
	_, getErr := f.service.GetByID(ctx, m.ID)
	assert.NoError(t, getErr)
	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(types.MustQuantity("50")))
	assert.True(t, f.batches.quantity(testBatch).Equal(types.MustQuantity("5")))
}

// Reversal must act on the movement row as currently stored, not on a
// snapshot read outside the row lock. The repo fake serves a stale copy to
// unlocked reads; if the service used one, deleting the edited movement
// below would reverse 50 instead of 30.
func TestServiceDelete_ReversesCurrentRowNotStaleRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.record(t, TypeInbound, "50", nil, ptr(warehouseA))
	original := *m

	newQty := types.MustQuantity("30")
	_, err := f.service.Update(ctx, m.ID, UpdateFields{Quantity: &newQty})
	require.NoError(t, err)

	f.movements.stale = map[int64]*StockMovement{m.ID: &original}

	require.NoError(t, f.service.Delete(ctx, m.ID))
	assert.True(t, f.stock.quantity(testProduct, warehouseA).IsZero())
	assert.True(t, f.batches.quantity(testBatch).IsZero())
}

func TestServiceUpdate_ReversesCurrentRowNotStaleRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.record(t, TypeInbound, "50", nil, ptr(warehouseA))
	original := *m

	firstQty := types.MustQuantity("30")
	_, err := f.service.Update(ctx, m.ID, UpdateFields{Quantity: &firstQty})
	require.NoError(t, err)

	f.movements.stale = map[int64]*StockMovement{m.ID: &original}

	secondQty := types.MustQuantity("10")
	_, err = f.service.Update(ctx, m.ID, UpdateFields{Quantity: &secondQty})
	require.NoError(t, err)

	assert.True(t, f.stock.quantity(testProduct, warehouseA).Equal(secondQty))
	assert.True(t, f.batches.quantity(testBatch).Equal(secondQty))
}

func TestServiceDelete_MissingMovement(t *testing.T) {
	f := newFixture(t)

	err := f.service.Delete(context.Background(), 999)
	assert.True(t, apperror.IsNotFound(err))
}

// Randomized sequences of lifecycle operations must never drive any stock
// level or the batch negative, regardless of which operations fail.
func TestServiceRandomized_NonNegativity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	var created []int64
	for i := 0; i < 300; i++ {
		qty := types.NewQuantity(float64(rng.Intn(20) + 1))
		var m *StockMovement
		switch rng.Intn(5) {
		case 0:
			m = &StockMovement{MovementType: TypeInbound, DestinationWarehouseID: ptr(warehouseA)}
		case 1:
			m = &StockMovement{MovementType: TypeOutbound, SourceWarehouseID: ptr(warehouseA)}
		case 2:
			m = &StockMovement{MovementType: TypeTransfer, SourceWarehouseID: ptr(warehouseA), DestinationWarehouseID: ptr(warehouseB)}
		case 3:
			m = &StockMovement{MovementType: TypeProcessing, SourceWarehouseID: ptr(warehouseB)}
		case 4:
			if len(created) > 0 {
				idx := rng.Intn(len(created))
				_ = f.service.Delete(ctx, created[idx])
				created = append(created[:idx], created[idx+1:]...)
			}
		}

		if m != nil {
			m.ProductID = testProduct
			m.BatchID = testBatch
			m.EmployeeID = testEmployee
			m.Quantity = qty
			m.ReferenceDocument = "DOC-R"
			if stored, err := f.service.Create(ctx, m); err == nil {
				created = append(created, stored.ID)
			}
		}

		assert.False(t, f.stock.quantity(testProduct, warehouseA).IsNegative(), "warehouse A went negative at step %d", i)
		assert.False(t, f.stock.quantity(testProduct, warehouseB).IsNegative(), "warehouse B went negative at step %d", i)
		assert.False(t, f.batches.quantity(testBatch).IsNegative(), "batch went negative at step %d", i)
	}
}
