package auth_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"warelog/internal/core/apperror"
	"warelog/internal/domain/auth"
	"warelog/internal/infrastructure/storage/postgres"
)

const warehouseAccessTable = "warehouse_access"

var accessCols = postgres.ExtractDBColumns[auth.WarehouseAccess]()

// WarehouseAccessRepo implements auth.WarehouseAccessRepository.
type WarehouseAccessRepo struct {
	txManager *postgres.TxManager
}

// NewWarehouseAccessRepo creates the warehouse access repository.
func NewWarehouseAccessRepo(txManager *postgres.TxManager) *WarehouseAccessRepo {
	return &WarehouseAccessRepo{txManager: txManager}
}

func (r *WarehouseAccessRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create stores a new grant.
func (r *WarehouseAccessRepo) Create(ctx context.Context, access *auth.WarehouseAccess) error {
	now := time.Now().UTC()
	access.TouchCreated(now)

	data := postgres.StructToMap(access)
	delete(data, "id")

	q := r.builder().
		Insert(warehouseAccessTable).
		SetMap(data).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&access.ID); err != nil {
		return fmt.Errorf("insert warehouse access: %w", err)
	}
	return nil
}

// GetByID retrieves a grant by ID.
func (r *WarehouseAccessRepo) GetByID(ctx context.Context, id int64) (*auth.WarehouseAccess, error) {
	var access auth.WarehouseAccess

	q := r.builder().
		Select(accessCols...).
		From(warehouseAccessTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &access, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("warehouse access", id)
		}
		return nil, fmt.Errorf("get warehouse access: %w", err)
	}
	return &access, nil
}

// Update updates a grant.
func (r *WarehouseAccessRepo) Update(ctx context.Context, access *auth.WarehouseAccess) error {
	access.TouchUpdated(time.Now().UTC())

	data := postgres.StructToMap(access)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(warehouseAccessTable).
		SetMap(data).
		Where(squirrel.Eq{"id": access.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update warehouse access: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("warehouse access", access.ID)
	}
	return nil
}

// ListByEmployee retrieves all grants for an employee.
func (r *WarehouseAccessRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]auth.WarehouseAccess, error) {
	q := r.builder().
		Select(accessCols...).
		From(warehouseAccessTable).
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("assignment_date DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var grants []auth.WarehouseAccess
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &grants, sql, args...); err != nil {
		return nil, fmt.Errorf("list warehouse access: %w", err)
	}
	return grants, nil
}

// ActiveWarehouseIDsByUser resolves active grants through the employee linked
// to the login account.
func (r *WarehouseAccessRepo) ActiveWarehouseIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	sql := `
		SELECT wa.warehouse_id
		FROM warehouse_access wa
		JOIN employees e ON e.id = wa.employee_id
		WHERE e.user_id = $1 AND wa.is_active
		ORDER BY wa.warehouse_id
	`

	var ids []int64
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &ids, sql, userID); err != nil {
		return nil, fmt.Errorf("active warehouse ids: %w", err)
	}
	return ids, nil
}

// FindActive returns the active grant for an employee/warehouse pair, if any.
func (r *WarehouseAccessRepo) FindActive(ctx context.Context, employeeID, warehouseID int64) (*auth.WarehouseAccess, error) {
	var access auth.WarehouseAccess

	q := r.builder().
		Select(accessCols...).
		From(warehouseAccessTable).
		Where(squirrel.Eq{
			"employee_id":  employeeID,
			"warehouse_id": warehouseID,
			"is_active":    true,
		}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &access, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active grant: %w", err)
	}
	return &access, nil
}
