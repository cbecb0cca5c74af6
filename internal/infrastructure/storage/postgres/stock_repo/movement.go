package stock_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"warelog/internal/core/apperror"
	"warelog/internal/domain"
	"warelog/internal/domain/movement"
	"warelog/internal/infrastructure/storage/postgres"
)

const movementsTable = "stock_movements"

var movementCols = postgres.ExtractDBColumns[movement.StockMovement]()

// MovementRepo implements movement.Repository.
type MovementRepo struct {
	txManager *postgres.TxManager
}

// NewMovementRepo creates the movement repository.
func NewMovementRepo(txManager *postgres.TxManager) *MovementRepo {
	return &MovementRepo{txManager: txManager}
}

func (r *MovementRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new movement and assigns the generated ID.
func (r *MovementRepo) Create(ctx context.Context, m *movement.StockMovement) error {
	now := time.Now().UTC()
	m.TouchCreated(now)

	data := postgres.StructToMap(m)
	delete(data, "id")

	q := r.builder().
		Insert(movementsTable).
		SetMap(data).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&m.ID); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID retrieves a movement by ID.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*movement.StockMovement, error) {
	var m movement.StockMovement

	q := r.builder().
		Select(movementCols...).
		From(movementsTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(movementsTable, id)
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// GetByIDForUpdate retrieves a movement with a pessimistic lock so its stored
// impact cannot change before reversal. Must run inside a transaction.
func (r *MovementRepo) GetByIDForUpdate(ctx context.Context, id int64) (*movement.StockMovement, error) {
	var m movement.StockMovement

	q := r.builder().
		Select(movementCols...).
		From(movementsTable).
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(movementsTable, id)
		}
		return nil, fmt.Errorf("get movement for update: %w", err)
	}
	return &m, nil
}

// Update persists all fields of an existing movement.
func (r *MovementRepo) Update(ctx context.Context, m *movement.StockMovement) error {
	m.TouchUpdated(time.Now().UTC())

	data := postgres.StructToMap(m)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(movementsTable).
		SetMap(data).
		Where(squirrel.Eq{"id": m.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(movementsTable, m.ID)
	}
	return nil
}

// Delete removes the movement row.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	q := r.builder().
		Delete(movementsTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(movementsTable, id)
	}
	return nil
}

// List retrieves movements with generic filtering and pagination.
func (r *MovementRepo) List(ctx context.Context, flt domain.ListFilter) (domain.ListResult[*movement.StockMovement], error) {
	result := domain.ListResult[*movement.StockMovement]{
		Limit:  flt.Limit,
		Offset: flt.Offset,
	}

	q := r.builder().
		Select(movementCols...).
		From(movementsTable)

	if flt.Search != "" {
		pattern := "%" + flt.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"reference_document": pattern},
			squirrel.ILike{"note": pattern},
		})
	}
	if len(flt.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": flt.IDs})
	}

	return r.paginate(ctx, q, result, flt.OrderBy)
}

// Search retrieves movements matching the field-level filter.
func (r *MovementRepo) Search(ctx context.Context, flt movement.SearchFilter) (domain.ListResult[*movement.StockMovement], error) {
	result := domain.ListResult[*movement.StockMovement]{
		Limit:  flt.Limit,
		Offset: flt.Offset,
	}

	q := r.builder().
		Select(movementCols...).
		From(movementsTable)

	if flt.ProcessNumber != nil {
		q = q.Where(squirrel.Eq{"process_number": *flt.ProcessNumber})
	}
	if flt.MovementType != nil {
		q = q.Where(squirrel.Eq{"movement_type": string(*flt.MovementType)})
	}
	if flt.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *flt.ProductID})
	}
	if flt.BatchID != nil {
		q = q.Where(squirrel.Eq{"batch_id": *flt.BatchID})
	}
	if flt.SourceWarehouseID != nil {
		q = q.Where(squirrel.Eq{"source_warehouse_id": *flt.SourceWarehouseID})
	}
	if flt.DestinationWarehouseID != nil {
		q = q.Where(squirrel.Eq{"destination_warehouse_id": *flt.DestinationWarehouseID})
	}
	if flt.EmployeeID != nil {
		q = q.Where(squirrel.Eq{"employee_id": *flt.EmployeeID})
	}
	if flt.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *flt.SupplierID})
	}
	if flt.ReferenceDocument != nil {
		q = q.Where(squirrel.ILike{"reference_document": "%" + *flt.ReferenceDocument + "%"})
	}
	if flt.Note != nil {
		q = q.Where(squirrel.ILike{"note": "%" + *flt.Note + "%"})
	}
	if flt.Quantity != nil {
		q = q.Where(squirrel.Eq{"quantity": *flt.Quantity})
	}
	if flt.MovementDateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"movement_timestamp": *flt.MovementDateFrom})
	}
	if flt.MovementDateTo != nil {
		q = q.Where(squirrel.LtOrEq{"movement_timestamp": *flt.MovementDateTo})
	}

	return r.paginate(ctx, q, result, flt.OrderBy)
}

// paginate counts, orders and pages a movement select.
func (r *MovementRepo) paginate(
	ctx context.Context,
	q squirrel.SelectBuilder,
	result domain.ListResult[*movement.StockMovement],
	orderBy string,
) (domain.ListResult[*movement.StockMovement], error) {
	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	order, err := r.parseOrderBy(orderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(order)

	if result.Limit > 0 {
		q = q.Limit(uint64(result.Limit))
	}
	if result.Offset > 0 {
		q = q.Offset(uint64(result.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list movements: %w", err)
	}
	return result, nil
}

func (r *MovementRepo) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "movement_timestamp DESC", nil
	}

	col := orderBy
	dir := "ASC"
	if col[0] == '-' {
		col = col[1:]
		dir = "DESC"
	}
	for _, valid := range movementCols {
		if col == valid {
			return col + " " + dir, nil
		}
	}
	return "", apperror.NewValidation(fmt.Sprintf("invalid order column: %s", col))
}

// --- Distinct lookups ---

func (r *MovementRepo) distinctInt64(ctx context.Context, column string) ([]int64, error) {
	sql := fmt.Sprintf(
		"SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL ORDER BY %s",
		column, movementsTable, column, column,
	)

	var values []int64
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &values, sql); err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

// DistinctProductIDs returns the distinct products that appear in movements.
func (r *MovementRepo) DistinctProductIDs(ctx context.Context) ([]int64, error) {
	return r.distinctInt64(ctx, "product_id")
}

// DistinctEmployeeIDs returns the distinct employees that appear in movements.
func (r *MovementRepo) DistinctEmployeeIDs(ctx context.Context) ([]int64, error) {
	return r.distinctInt64(ctx, "employee_id")
}

// DistinctSupplierIDs returns the distinct suppliers that appear in movements.
func (r *MovementRepo) DistinctSupplierIDs(ctx context.Context) ([]int64, error) {
	return r.distinctInt64(ctx, "supplier_id")
}

// DistinctProcessNumbers returns the distinct process numbers.
func (r *MovementRepo) DistinctProcessNumbers(ctx context.Context) ([]int64, error) {
	return r.distinctInt64(ctx, "process_number")
}

// DistinctTypes returns the distinct movement types recorded.
func (r *MovementRepo) DistinctTypes(ctx context.Context) ([]movement.Type, error) {
	sql := "SELECT DISTINCT movement_type FROM stock_movements ORDER BY movement_type"

	var values []movement.Type
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &values, sql); err != nil {
		return nil, fmt.Errorf("distinct movement types: %w", err)
	}
	return values, nil
}

// DistinctDates returns the distinct movement dates (day precision).
func (r *MovementRepo) DistinctDates(ctx context.Context) ([]time.Time, error) {
	sql := "SELECT DISTINCT date_trunc('day', movement_timestamp) AS day FROM stock_movements ORDER BY day DESC"

	var values []time.Time
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &values, sql); err != nil {
		return nil, fmt.Errorf("distinct movement dates: %w", err)
	}
	return values, nil
}
