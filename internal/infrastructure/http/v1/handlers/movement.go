package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"warelog/internal/core/apperror"
	appctx "warelog/internal/core/context"
	"warelog/internal/domain"
	"warelog/internal/domain/movement"
	"warelog/internal/infrastructure/http/v1/dto"
)

// MovementHandler handles stock movement endpoints. All mutations go through
// the movement service so stock levels and batch quantities stay consistent.
type MovementHandler struct {
	*BaseHandler
	service *movement.Service
}

// NewMovementHandler creates a new movement handler.
func NewMovementHandler(base *BaseHandler, service *movement.Service) *MovementHandler {
	return &MovementHandler{
		BaseHandler: base,
		service:     service,
	}
}

// checkWarehouseScope rejects the request unless the caller holds an active
// grant for every warehouse it names.
func (h *MovementHandler) checkWarehouseScope(c *gin.Context, ids ...*int64) bool {
	ctx := c.Request.Context()
	for _, id := range ids {
		if id == nil {
			continue
		}
		if !appctx.HasWarehouseAccess(ctx, *id) {
			h.Error(c, apperror.NewForbidden("no access to warehouse").
				WithDetail("warehouse_id", *id))
			return false
		}
	}
	return true
}

// Create handles POST /stock-movements
func (h *MovementHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if !h.checkWarehouseScope(c, req.SourceWarehouseID, req.DestinationWarehouseID) {
		return
	}

	m, err := req.ToMovement()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(ctx, m)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get handles GET /stock-movements/:id
func (h *MovementHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	m, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// List handles GET /stock-movements
func (h *MovementHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	flt := domain.DefaultListFilter()
	flt.Search = c.Query("search")
	flt.Limit = h.ParseIntQuery(c, "limit", flt.Limit)
	flt.Offset = h.ParseIntQuery(c, "offset", 0)
	flt.OrderBy = c.DefaultQuery("orderBy", "-movement_timestamp")

	result, err := h.service.List(ctx, flt)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Search handles GET /stock-movements/search - field-level filtering.
func (h *MovementHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MovementSearchRequest
	if !h.BindQuery(c, &req) {
		return
	}

	flt, err := req.ToSearchFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Search(ctx, flt)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Lookups handles GET /stock-movements/lookups - distinct filter values.
func (h *MovementHandler) Lookups(c *gin.Context) {
	ctx := c.Request.Context()

	lookups, err := h.service.DistinctLookups(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LookupsResponse{
		ProductIDs:     lookups.ProductIDs,
		EmployeeIDs:    lookups.EmployeeIDs,
		SupplierIDs:    lookups.SupplierIDs,
		MovementTypes:  lookups.Types,
		MovementDates:  lookups.Dates,
		ProcessNumbers: lookups.ProcessNumbers,
	})
}

// Update handles PATCH /stock-movements/:id
func (h *MovementHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if !h.checkWarehouseScope(c, req.SourceWarehouseID, req.DestinationWarehouseID) {
		return
	}

	fields, err := req.ToUpdateFields()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.service.Update(ctx, id, fields)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /stock-movements/:id
func (h *MovementHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
