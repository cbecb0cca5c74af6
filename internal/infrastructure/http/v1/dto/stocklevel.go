package dto

import (
	"time"

	"warelog/internal/core/types"
)

// ReorderPolicyRequest sets reorder thresholds on a stock level row.
type ReorderPolicyRequest struct {
	ReorderLevel    *types.Quantity `json:"reorderLevel"`
	ReorderQuantity *types.Quantity `json:"reorderQuantity"`
}

// StockTakeRequest records a physical stock count. When TakenAt is absent
// the current time is used.
type StockTakeRequest struct {
	TakenAt *time.Time `json:"takenAt"`
}
