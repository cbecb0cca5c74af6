// Package auth_repo provides PostgreSQL storage for users and warehouse
// access grants.
package auth_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"warelog/internal/core/apperror"
	"warelog/internal/domain/auth"
	"warelog/internal/infrastructure/storage/postgres"
)

const usersTable = "users"

var userCols = postgres.ExtractDBColumns[auth.User]()

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txManager *postgres.TxManager
}

// NewUserRepo creates the user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{txManager: txManager}
}

func (r *UserRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	now := time.Now().UTC()
	user.TouchCreated(now)

	data := postgres.StructToMap(user)
	delete(data, "id")

	q := r.builder().
		Insert(usersTable).
		SetMap(data).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
		// Unique violation (23505) on username or email.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("user", pgErr.ConstraintName, user.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*auth.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": userID}, userID)
}

// GetByUsername retrieves user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getBy(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) getBy(ctx context.Context, where squirrel.Eq, key any) (*auth.User, error) {
	var user auth.User

	q := r.builder().
		Select(userCols...).
		From(usersTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Update updates user data.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	user.TouchUpdated(time.Now().UTC())

	data := postgres.StructToMap(user)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(usersTable).
		SetMap(data).
		Where(squirrel.Eq{"id": user.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID)
	}
	return nil
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, userID int64) error {
	q := r.builder().
		Delete(usersTable).
		Where(squirrel.Eq{"id": userID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID)
	}
	return nil
}

// List retrieves users with filtering.
func (r *UserRepo) List(ctx context.Context, flt auth.UserFilter) ([]auth.User, int64, error) {
	q := r.builder().
		Select(userCols...).
		From(usersTable)

	if flt.Search != "" {
		pattern := "%" + flt.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"username": pattern},
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}
	if flt.IsActive != nil {
		q = q.Where(squirrel.Eq{"is_active": *flt.IsActive})
	}
	if flt.UserRole != "" {
		q = q.Where(squirrel.Eq{"user_role": flt.UserRole})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	q = q.OrderBy("username ASC")
	if flt.Limit > 0 {
		q = q.Limit(uint64(flt.Limit))
	}
	if flt.Offset > 0 {
		q = q.Offset(uint64(flt.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	var users []auth.User
	if err := pgxscan.Select(ctx, querier, &users, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// ExistsByUsername checks if username is taken.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"username": username})
}

// ExistsByEmail checks if email is taken.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepo) exists(ctx context.Context, where squirrel.Eq) (bool, error) {
	q := r.builder().
		Select("1").
		From(usersTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}
