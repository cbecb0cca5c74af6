package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"warelog/internal/core/apperror"
	"warelog/internal/domain"
	"warelog/internal/domain/filter"
	"warelog/internal/domain/stocklevel"
	"warelog/internal/infrastructure/http/v1/dto"
)

func eqFilter(field string, value any) filter.Item {
	return filter.Item{Field: field, Operator: filter.Equal, Value: value}
}

// StockLevelHandler handles read and policy endpoints for stock level rows.
// Quantities themselves are only ever changed by movement processing.
type StockLevelHandler struct {
	*BaseHandler
	service *stocklevel.Service
}

// NewStockLevelHandler creates a new stock level handler.
func NewStockLevelHandler(base *BaseHandler, service *stocklevel.Service) *StockLevelHandler {
	return &StockLevelHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /stock-levels
func (h *StockLevelHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	flt := domain.DefaultListFilter()
	flt.Limit = h.ParseIntQuery(c, "limit", flt.Limit)
	flt.Offset = h.ParseIntQuery(c, "offset", 0)

	if productID := c.Query("productId"); productID != "" {
		id, err := strconv.ParseInt(productID, 10, 64)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId"))
			return
		}
		flt.AdvancedFilters = append(flt.AdvancedFilters, eqFilter("product_id", id))
	}
	if warehouseID := c.Query("warehouseId"); warehouseID != "" {
		id, err := strconv.ParseInt(warehouseID, 10, 64)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid warehouseId"))
			return
		}
		flt.AdvancedFilters = append(flt.AdvancedFilters, eqFilter("warehouse_id", id))
	}

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

// Get handles GET /stock-levels/:id
func (h *StockLevelHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	level, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, level)
}

// GetByKey handles GET /stock-levels/by-key?productId=&warehouseId=
func (h *StockLevelHandler) GetByKey(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := strconv.ParseInt(c.Query("productId"), 10, 64)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId"))
		return
	}
	warehouseID, err := strconv.ParseInt(c.Query("warehouseId"), 10, 64)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouseId"))
		return
	}

	level, err := h.service.GetByKey(ctx, productID, warehouseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, level)
}

// BelowReorder handles GET /stock-levels/below-reorder
func (h *StockLevelHandler) BelowReorder(c *gin.Context) {
	ctx := c.Request.Context()

	levels, err := h.service.ListBelowReorder(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": levels})
}

// SetReorderPolicy handles PUT /stock-levels/:id/reorder-policy
func (h *StockLevelHandler) SetReorderPolicy(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.ReorderPolicyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetReorderPolicy(ctx, id, req.ReorderLevel, req.ReorderQuantity); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "reorder policy updated")
}

// RecordStockTake handles POST /stock-levels/:id/stock-take
func (h *StockLevelHandler) RecordStockTake(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.StockTakeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	takenAt := time.Now().UTC()
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}

	if err := h.service.RecordStockTake(ctx, id, takenAt); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "stock take recorded")
}
