package stock_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
	"warelog/internal/domain/batch"
	"warelog/internal/infrastructure/storage/postgres"
	"warelog/internal/infrastructure/storage/postgres/catalog_repo"
)

const batchesTable = "batches"

// BatchRepo implements batch.Repository: generic catalog CRUD plus the locked
// read and quantity write the Tracker uses.
type BatchRepo struct {
	*catalog_repo.BaseCatalogRepo[*batch.Batch]
	txManager *postgres.TxManager
}

// NewBatchRepo creates the batch repository.
func NewBatchRepo(txManager *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo(
			txManager,
			batchesTable,
			postgres.ExtractDBColumns[batch.Batch](),
			[]string{"serial_number", "lot_number"},
			func() *batch.Batch { return &batch.Batch{} },
		),
		txManager: txManager,
	}
}

// GetForUpdate loads the batch row with a pessimistic lock.
// Must run inside a transaction.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id int64) (*batch.Batch, error) {
	var b batch.Batch

	sql := `
		SELECT id, created_at, updated_at, product_id, serial_number, lot_number,
		       production_date, expiration_date, purchase_price, sale_price,
		       quantity, batch_status, note
		FROM batches
		WHERE id = $1
		FOR UPDATE
	`

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &b, sql, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(batchesTable, id)
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return &b, nil
}

// UpdateQuantity persists a new remaining quantity.
func (r *BatchRepo) UpdateQuantity(ctx context.Context, id int64, quantity types.Quantity) error {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update(batchesTable).
		Set("quantity", quantity).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(batchesTable, id)
	}
	return nil
}
