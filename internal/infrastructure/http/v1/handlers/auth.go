package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warelog/internal/domain/auth"
	"warelog/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication and warehouse access endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(ctx, req.ToAuthRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, user, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Tokens: dto.FromTokenPair(tokens),
		User:   dto.FromUser(user),
	})
}

// ListUsers handles GET /users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UserListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	users, total, err := h.service.ListUsers(ctx, req.ToUserFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.FromUser(&users[i]))
	}
	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: total,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
}

// GetUser handles GET /users/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(ctx, id)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// UpdateUser handles PATCH /users/:id
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateUser(ctx, id, req.ToUserUpdate())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// DeleteUser handles DELETE /users/:id
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(ctx, id); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// GrantAccess handles POST /warehouse-access
func (h *AuthHandler) GrantAccess(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GrantAccessRequest
	if !h.BindJSON(c, &req) {
		return
	}

	access, err := h.service.GrantWarehouseAccess(ctx, req.EmployeeID, req.WarehouseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, access)
}

// RevokeAccess handles POST /warehouse-access/:id/revoke
func (h *AuthHandler) RevokeAccess(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.RevokeWarehouseAccess(ctx, id); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "warehouse access revoked")
}

// ListEmployeeAccess handles GET /warehouse-access/employee/:id
func (h *AuthHandler) ListEmployeeAccess(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	access, err := h.service.ListEmployeeAccess(ctx, id)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": access})
}
