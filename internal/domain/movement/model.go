// Package movement implements the stock-movement reconciliation engine:
// recording inventory events and propagating their effect onto stock levels
// and batch quantities, with exact reversal on edit and delete.
package movement

import (
	"context"
	"fmt"
	"time"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
	"warelog/internal/core/types"
)

// Type is the closed movement type enumeration. Any other string is rejected
// at the boundary; every switch over Type handles all four cases explicitly.
type Type string

const (
	TypeInbound    Type = "Inbound"
	TypeOutbound   Type = "Outbound"
	TypeTransfer   Type = "Transfer"
	TypeProcessing Type = "Processing"
)

// ParseType validates a movement type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeInbound, TypeOutbound, TypeTransfer, TypeProcessing:
		return Type(s), nil
	default:
		return "", apperror.NewValidation(fmt.Sprintf("unknown movement type %q", s)).
			WithDetail("field", "movementType")
	}
}

// Valid reports whether t is a member of the enumeration.
func (t Type) Valid() bool {
	switch t {
	case TypeInbound, TypeOutbound, TypeTransfer, TypeProcessing:
		return true
	}
	return false
}

// StockMovement is a recorded inventory event. Editing or deleting a stored
// movement first rolls its aggregate effect back through the Reversal path.
type StockMovement struct {
	entity.BaseEntity

	ProcessNumber          *int64         `db:"process_number" json:"processNumber,omitempty"`
	MovementTimestamp      time.Time      `db:"movement_timestamp" json:"movementTimestamp"`
	MovementType           Type           `db:"movement_type" json:"movementType"`
	ProductID              int64          `db:"product_id" json:"productId"`
	BatchID                int64          `db:"batch_id" json:"batchId"`
	Quantity               types.Quantity `db:"quantity" json:"quantity"`
	SourceWarehouseID      *int64         `db:"source_warehouse_id" json:"sourceWarehouseId,omitempty"`
	DestinationWarehouseID *int64         `db:"destination_warehouse_id" json:"destinationWarehouseId,omitempty"`
	EmployeeID             int64          `db:"employee_id" json:"employeeId"`
	SupplierID             *int64         `db:"supplier_id" json:"supplierId,omitempty"`
	ReferenceDocument      string         `db:"reference_document" json:"referenceDocument"`
	Note                   *string        `db:"note" json:"note,omitempty"`
}

// Validate implements entity.Validatable. It checks field invariants and the
// per-type routing shape; reference existence is the validator's job.
func (m *StockMovement) Validate(ctx context.Context) error {
	if !m.MovementType.Valid() {
		return apperror.NewValidation(fmt.Sprintf("unknown movement type %q", m.MovementType)).
			WithDetail("field", "movementType")
	}
	if m.ProductID == 0 {
		return apperror.NewValidation("product is required").WithDetail("field", "productId")
	}
	if m.BatchID == 0 {
		return apperror.NewValidation("batch is required").WithDetail("field", "batchId")
	}
	if m.EmployeeID == 0 {
		return apperror.NewValidation("employee is required").WithDetail("field", "employeeId")
	}
	if !m.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").WithDetail("field", "quantity")
	}
	if m.ReferenceDocument == "" {
		return apperror.NewValidation("reference document is required").
			WithDetail("field", "referenceDocument")
	}
	return m.ValidateShape()
}

// ValidateShape enforces the source/destination combination allowed for the
// movement type:
//
//	Inbound     destination only
//	Outbound    source only
//	Transfer    both
//	Processing  exactly one of the two
func (m *StockMovement) ValidateShape() error {
	src := m.SourceWarehouseID != nil
	dst := m.DestinationWarehouseID != nil

	ok := false
	switch m.MovementType {
	case TypeInbound:
		ok = !src && dst
	case TypeOutbound:
		ok = src && !dst
	case TypeTransfer:
		ok = src && dst
	case TypeProcessing:
		ok = src != dst
	}
	if !ok {
		return apperror.NewInvalidMovementShape(string(m.MovementType), src, dst)
	}
	return nil
}
