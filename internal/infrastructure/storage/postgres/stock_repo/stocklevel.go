// Package stock_repo provides PostgreSQL storage for the reconciliation
// engine's aggregates and movement rows.
package stock_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
	"warelog/internal/domain"
	"warelog/internal/domain/stocklevel"
	"warelog/internal/infrastructure/storage/postgres"
)

const stockLevelsTable = "stock_levels"

var stockLevelCols = postgres.ExtractDBColumns[stocklevel.StockLevel]()

// StockLevelRepo implements stocklevel.Repository.
type StockLevelRepo struct {
	txManager *postgres.TxManager
}

// NewStockLevelRepo creates the stock level repository.
func NewStockLevelRepo(txManager *postgres.TxManager) *StockLevelRepo {
	return &StockLevelRepo{txManager: txManager}
}

func (r *StockLevelRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new row and assigns the generated ID.
func (r *StockLevelRepo) Create(ctx context.Context, level *stocklevel.StockLevel) error {
	now := time.Now().UTC()
	level.TouchCreated(now)

	data := postgres.StructToMap(level)
	delete(data, "id")

	q := r.builder().
		Insert(stockLevelsTable).
		SetMap(data).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&level.ID); err != nil {
		return fmt.Errorf("insert stock level: %w", err)
	}
	return nil
}

// GetByID retrieves a row by primary key.
func (r *StockLevelRepo) GetByID(ctx context.Context, id int64) (*stocklevel.StockLevel, error) {
	var level stocklevel.StockLevel

	q := r.builder().
		Select(stockLevelCols...).
		From(stockLevelsTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &level, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(stockLevelsTable, id)
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &level, nil
}

// GetByKey retrieves the row for a (product, warehouse) pair.
func (r *StockLevelRepo) GetByKey(ctx context.Context, productID, warehouseID int64) (*stocklevel.StockLevel, error) {
	var level stocklevel.StockLevel

	q := r.builder().
		Select(stockLevelCols...).
		From(stockLevelsTable).
		Where(squirrel.Eq{"product_id": productID, "warehouse_id": warehouseID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &level, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(stockLevelsTable, fmt.Sprintf("%d/%d", productID, warehouseID))
		}
		return nil, fmt.Errorf("get stock level by key: %w", err)
	}
	return &level, nil
}

// GetForUpdate retrieves the row for a (product, warehouse) pair with a
// pessimistic lock. Must run inside a transaction.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*stocklevel.StockLevel, error) {
	var level stocklevel.StockLevel

	sql := `
		SELECT id, created_at, updated_at, product_id, warehouse_id,
		       current_quantity, reorder_level, reorder_quantity, last_stock_take_date
		FROM stock_levels
		WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE
	`

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &level, sql, productID, warehouseID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(stockLevelsTable, fmt.Sprintf("%d/%d", productID, warehouseID))
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &level, nil
}

// UpdateQuantity persists a new on-hand quantity.
func (r *StockLevelRepo) UpdateQuantity(ctx context.Context, id int64, quantity types.Quantity) error {
	q := r.builder().
		Update(stockLevelsTable).
		Set("current_quantity", quantity).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock level quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(stockLevelsTable, id)
	}
	return nil
}

// SetReorderPolicy updates the reorder threshold and reorder quantity.
func (r *StockLevelRepo) SetReorderPolicy(ctx context.Context, id int64, level, quantity *types.Quantity) error {
	q := r.builder().
		Update(stockLevelsTable).
		Set("reorder_level", level).
		Set("reorder_quantity", quantity).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set reorder policy: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(stockLevelsTable, id)
	}
	return nil
}

// RecordStockTake stamps the last physical count date.
func (r *StockLevelRepo) RecordStockTake(ctx context.Context, id int64, takenAt time.Time) error {
	q := r.builder().
		Update(stockLevelsTable).
		Set("last_stock_take_date", takenAt).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("record stock take: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(stockLevelsTable, id)
	}
	return nil
}

// List retrieves rows with filtering and pagination.
func (r *StockLevelRepo) List(ctx context.Context, flt domain.ListFilter) (domain.ListResult[*stocklevel.StockLevel], error) {
	result := domain.ListResult[*stocklevel.StockLevel]{
		Limit:  flt.Limit,
		Offset: flt.Offset,
	}

	q := r.builder().
		Select(stockLevelCols...).
		From(stockLevelsTable)

	if len(flt.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": flt.IDs})
	}
	for _, item := range flt.AdvancedFilters {
		switch item.Field {
		case "product_id", "warehouse_id":
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		default:
			return result, apperror.NewValidation(fmt.Sprintf("invalid filter column: %s", item.Field))
		}
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("product_id ASC", "warehouse_id ASC")
	if flt.Limit > 0 {
		q = q.Limit(uint64(flt.Limit))
	}
	if flt.Offset > 0 {
		q = q.Offset(uint64(flt.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list stock levels: %w", err)
	}
	return result, nil
}

// ListBelowReorder retrieves rows at or under their reorder threshold.
func (r *StockLevelRepo) ListBelowReorder(ctx context.Context) ([]*stocklevel.StockLevel, error) {
	q := r.builder().
		Select(stockLevelCols...).
		From(stockLevelsTable).
		Where("reorder_level IS NOT NULL AND current_quantity <= reorder_level").
		OrderBy("product_id ASC", "warehouse_id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var levels []*stocklevel.StockLevel
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &levels, sql, args...); err != nil {
		return nil, fmt.Errorf("list below reorder: %w", err)
	}
	return levels, nil
}
