package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
	"warelog/internal/domain"
)

// memRepo is an in-memory Repository for tracker tests.
type memRepo struct {
	nextID int64
	rows   map[int64]*Batch
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[int64]*Batch{}}
}

func (r *memRepo) Create(_ context.Context, b *Batch) error {
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*Batch, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, apperror.NewNotFound("batch", id)
	}
	cp := *row
	return &cp, nil
}

func (r *memRepo) GetForUpdate(ctx context.Context, id int64) (*Batch, error) {
	return r.GetByID(ctx, id)
}

func (r *memRepo) Update(_ context.Context, b *Batch) error {
	if _, ok := r.rows[b.ID]; !ok {
		return apperror.NewNotFound("batch", b.ID)
	}
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return apperror.NewNotFound("batch", id)
	}
	delete(r.rows, id)
	return nil
}

func (r *memRepo) List(_ context.Context, flt domain.ListFilter) (domain.ListResult[*Batch], error) {
	result := domain.ListResult[*Batch]{Limit: flt.Limit, Offset: flt.Offset}
	for _, row := range r.rows {
		cp := *row
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memRepo) UpdateQuantity(_ context.Context, id int64, quantity types.Quantity) error {
	row, ok := r.rows[id]
	if !ok {
		return apperror.NewNotFound("batch", id)
	}
	row.Quantity = quantity
	return nil
}

func seedBatch(t *testing.T, repo *memRepo, quantity string) int64 {
	t.Helper()
	b := &Batch{
		ProductID:    1,
		SerialNumber: "SN-1",
		LotNumber:    "LOT-1",
		Quantity:     types.MustQuantity(quantity),
		BatchStatus:  StatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b.ID
}

func TestTrackerAdjust_AddAndSubtract(t *testing.T) {
	repo := newMemRepo()
	tracker := NewTracker(repo)
	ctx := context.Background()

	id := seedBatch(t, repo, "100")

	require.NoError(t, tracker.Adjust(ctx, id, types.MustQuantity("50")))
	require.NoError(t, tracker.Adjust(ctx, id, types.MustQuantity("-30")))

	b, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, b.Quantity.Equal(types.MustQuantity("120")))
}

func TestTrackerAdjust_Underflow(t *testing.T) {
	repo := newMemRepo()
	tracker := NewTracker(repo)
	ctx := context.Background()

	id := seedBatch(t, repo, "10")

	err := tracker.Adjust(ctx, id, types.MustQuantity("-15"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientBatchQty))

	b, getErr := repo.GetByID(ctx, id)
	require.NoError(t, getErr)
	assert.True(t, b.Quantity.Equal(types.MustQuantity("10")))
}

func TestTrackerAdjust_MissingBatch(t *testing.T) {
	repo := newMemRepo()
	tracker := NewTracker(repo)

	err := tracker.Adjust(context.Background(), 999, types.MustQuantity("5"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeReferenceNotFound))
}

func TestTrackerAdjust_ZeroDeltaIsNoop(t *testing.T) {
	repo := newMemRepo()
	tracker := NewTracker(repo)

	// zero delta never touches storage, even for a missing batch
	assert.NoError(t, tracker.Adjust(context.Background(), 999, types.Zero()))
}
