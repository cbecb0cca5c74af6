package dto

import (
	"time"

	"warelog/internal/domain/auth"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts request to domain credentials.
func (r LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{Username: r.Username, Password: r.Password}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserRole  string `json:"userRole"`
}

// ToAuthRequest converts to the domain registration request.
func (r RegisterRequest) ToAuthRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Username:  r.Username,
		Password:  r.Password,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserRole:  r.UserRole,
	}
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	UserRole    string     `json:"userRole"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// FromUser maps a domain user into its response form.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		UserRole:    u.UserRole,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
	}
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// FromTokenPair maps domain tokens into the response form.
func FromTokenPair(t *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken: t.AccessToken,
		ExpiresAt:   t.ExpiresAt,
		TokenType:   t.TokenType,
	}
}

// LoginResponse bundles tokens with the authenticated user.
type LoginResponse struct {
	Tokens TokenResponse `json:"tokens"`
	User   UserResponse  `json:"user"`
}

// UpdateUserRequest is a partial user account edit. Username and password are
// not editable here.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	UserRole  *string `json:"userRole"`
	IsActive  *bool   `json:"isActive"`
}

// ToUserUpdate converts to the domain update.
func (r UpdateUserRequest) ToUserUpdate() auth.UserUpdate {
	return auth.UserUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		UserRole:  r.UserRole,
		IsActive:  r.IsActive,
	}
}

// UserListRequest filters the user listing.
type UserListRequest struct {
	Search   string `form:"search"`
	UserRole string `form:"userRole"`
	IsActive *bool  `form:"isActive"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

// ToUserFilter converts to the domain filter.
func (r UserListRequest) ToUserFilter() auth.UserFilter {
	limit := r.Limit
	if limit <= 0 {
		limit = 50
	}
	return auth.UserFilter{
		Search:   r.Search,
		UserRole: r.UserRole,
		IsActive: r.IsActive,
		Limit:    limit,
		Offset:   r.Offset,
	}
}

// GrantAccessRequest assigns an employee to a warehouse.
type GrantAccessRequest struct {
	EmployeeID  int64 `json:"employeeId" binding:"required"`
	WarehouseID int64 `json:"warehouseId" binding:"required"`
}
