// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID int64) (*User, error)

	// GetByUsername retrieves user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Update updates user data.
	Update(ctx context.Context, user *User) error

	// Delete removes a user.
	Delete(ctx context.Context, userID int64) error

	// List retrieves users with filtering.
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)

	// ExistsByUsername checks if username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// WarehouseAccessRepository defines warehouse grant storage operations.
type WarehouseAccessRepository interface {
	// Create stores a new grant.
	Create(ctx context.Context, access *WarehouseAccess) error

	// GetByID retrieves a grant by ID.
	GetByID(ctx context.Context, id int64) (*WarehouseAccess, error)

	// Update updates a grant (used for revocation).
	Update(ctx context.Context, access *WarehouseAccess) error

	// ListByEmployee retrieves all grants for an employee.
	ListByEmployee(ctx context.Context, employeeID int64) ([]WarehouseAccess, error)

	// ActiveWarehouseIDsByUser resolves the warehouses a login account may
	// operate on, via its linked employee record.
	ActiveWarehouseIDsByUser(ctx context.Context, userID int64) ([]int64, error)

	// FindActive returns the active grant for an employee/warehouse pair, if any.
	FindActive(ctx context.Context, employeeID, warehouseID int64) (*WarehouseAccess, error)
}

// UserFilter for listing users.
type UserFilter struct {
	Search   string
	IsActive *bool
	UserRole string
	Limit    int
	Offset   int
}
