// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
	"time"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
)

// User roles.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleWorker  = "Worker"
)

// User represents a login account.
type User struct {
	entity.BaseEntity

	Username       string     `db:"username" json:"username"`
	FirstName      string     `db:"first_name" json:"firstName"`
	LastName       string     `db:"last_name" json:"lastName"`
	Email          string     `db:"email" json:"email"`
	HashedPassword string     `db:"hashed_password" json:"-"`
	IsActive       bool       `db:"is_active" json:"isActive"`
	LastLoginAt    *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	UserRole       string     `db:"user_role" json:"userRole"`
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	switch u.UserRole {
	case RoleAdmin, RoleManager, RoleWorker:
	default:
		return apperror.NewValidation("unknown user role").WithDetail("field", "userRole")
	}
	return nil
}

// CanLogin checks if user can login.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	return nil
}

// RecordSuccessfulLogin stamps the last login time.
func (u *User) RecordSuccessfulLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.UserRole == RoleAdmin
}

// FullName returns user's full name.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// WarehouseAccess grants an employee the right to work against a warehouse.
// A revoked grant keeps its row with is_active=false and a revocation date.
type WarehouseAccess struct {
	entity.BaseEntity

	EmployeeID     int64      `db:"employee_id" json:"employeeId"`
	WarehouseID    int64      `db:"warehouse_id" json:"warehouseId"`
	IsActive       bool       `db:"is_active" json:"isActive"`
	AssignmentDate time.Time  `db:"assignment_date" json:"assignmentDate"`
	RevocationDate *time.Time `db:"revocation_date" json:"revocationDate,omitempty"`
}

// Validate validates the grant.
func (a *WarehouseAccess) Validate(ctx context.Context) error {
	if a.EmployeeID == 0 {
		return apperror.NewValidation("employee is required").WithDetail("field", "employeeId")
	}
	if a.WarehouseID == 0 {
		return apperror.NewValidation("warehouse is required").WithDetail("field", "warehouseId")
	}
	return nil
}

// Revoke deactivates the grant.
func (a *WarehouseAccess) Revoke(at time.Time) {
	a.IsActive = false
	a.RevocationDate = &at
}

// TokenPair contains the issued access token.
type TokenPair struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// Credentials for login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest for user registration.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	UserRole  string `json:"userRole,omitempty"`
}
