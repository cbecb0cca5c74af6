// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"warelog/internal/core/apperror"
	"warelog/internal/core/tx"
	"warelog/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// Service provides authentication and authorization logic.
type Service struct {
	userRepo   UserRepository
	accessRepo WarehouseAccessRepository
	txManager  tx.Manager
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo UserRepository,
	accessRepo WarehouseAccessRepository,
	txManager tx.Manager,
	jwtService *JWTService,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:   userRepo,
		accessRepo: accessRepo,
		txManager:  txManager,
		jwtService: jwtService,
		config:     config,
	}
}

// Register registers a new user.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if req.Username == "" {
		return nil, apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if req.Email == "" {
		return nil, apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if taken {
		return nil, apperror.NewDuplicate("user", "username", req.Username)
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if taken {
		return nil, apperror.NewDuplicate("user", "email", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.UserRole
	if role == "" {
		role = RoleWorker
	}
	user := &User{
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		HashedPassword: string(hash),
		IsActive:       true,
		UserRole:       role,
	}
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "username", user.Username, "role", user.UserRole)
	return user, nil
}

// Login authenticates credentials and issues an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, *User, error) {
	user, err := s.userRepo.GetByUsername(ctx, creds.Username)
	if err != nil {
		// Same response for unknown user and bad password.
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(creds.Password)); err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	warehouseIDs, err := s.accessRepo.ActiveWarehouseIDsByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load warehouse access: %w", err)
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(
		user.ID, user.Username, user.UserRole, warehouseIDs, user.IsAdmin(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("generate token: %w", err)
	}

	user.RecordSuccessfulLogin()
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Update(ctx, user)
	})
	if err != nil {
		logger.Warn(ctx, "failed to record login time", "user_id", user.ID, "error", err)
	}

	logger.Info(ctx, "user logged in", "username", user.Username)
	return &TokenPair{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, user, nil
}

// UserUpdate carries a partial user edit. Nil fields keep their stored value.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	UserRole  *string
	IsActive  *bool
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, userID int64) (*User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ListUsers lists users with filtering and pagination.
func (s *Service) ListUsers(ctx context.Context, flt UserFilter) ([]User, int64, error) {
	return s.userRepo.List(ctx, flt)
}

// UpdateUser applies a partial edit to a user account. Usernames and password
// hashes are not editable through this path.
func (s *Service) UpdateUser(ctx context.Context, userID int64, upd UserUpdate) (*User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.UserRole != nil {
		user.UserRole = *upd.UserRole
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a login account.
func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Delete(ctx, userID)
	})
}

// GrantWarehouseAccess creates an active grant for an employee/warehouse pair.
func (s *Service) GrantWarehouseAccess(ctx context.Context, employeeID, warehouseID int64) (*WarehouseAccess, error) {
	existing, err := s.accessRepo.FindActive(ctx, employeeID, warehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("access already granted").
			WithDetail("employee_id", employeeID).
			WithDetail("warehouse_id", warehouseID)
	}

	access := &WarehouseAccess{
		EmployeeID:     employeeID,
		WarehouseID:    warehouseID,
		IsActive:       true,
		AssignmentDate: time.Now(),
	}
	if err := access.Validate(ctx); err != nil {
		return nil, err
	}
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.accessRepo.Create(ctx, access)
	})
	if err != nil {
		return nil, err
	}
	return access, nil
}

// RevokeWarehouseAccess deactivates a grant.
func (s *Service) RevokeWarehouseAccess(ctx context.Context, accessID int64) error {
	access, err := s.accessRepo.GetByID(ctx, accessID)
	if err != nil {
		return err
	}
	if !access.IsActive {
		return apperror.NewConflict("access already revoked").WithDetail("id", accessID)
	}
	access.Revoke(time.Now())
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.accessRepo.Update(ctx, access)
	})
}

// ListEmployeeAccess lists all grants for an employee.
func (s *Service) ListEmployeeAccess(ctx context.Context, employeeID int64) ([]WarehouseAccess, error) {
	return s.accessRepo.ListByEmployee(ctx, employeeID)
}
