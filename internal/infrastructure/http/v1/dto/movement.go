package dto

import (
	"time"

	"warelog/internal/core/types"
	"warelog/internal/domain/movement"
)

// CreateMovementRequest is the payload for registering a stock movement.
type CreateMovementRequest struct {
	ProcessNumber          *int64          `json:"processNumber"`
	MovementTimestamp      *time.Time      `json:"movementTimestamp"`
	MovementType           string          `json:"movementType" binding:"required"`
	ProductID              int64           `json:"productId" binding:"required"`
	BatchID                int64           `json:"batchId" binding:"required"`
	Quantity               types.Quantity  `json:"quantity" binding:"required"`
	SourceWarehouseID      *int64          `json:"sourceWarehouseId"`
	DestinationWarehouseID *int64          `json:"destinationWarehouseId"`
	EmployeeID             int64           `json:"employeeId" binding:"required"`
	SupplierID             *int64          `json:"supplierId"`
	ReferenceDocument      string          `json:"referenceDocument" binding:"required"`
	Note                   *string         `json:"note"`
}

// ToMovement maps the request onto a domain movement. Unknown movement type
// strings are rejected here, before anything touches the engine.
func (r CreateMovementRequest) ToMovement() (*movement.StockMovement, error) {
	mt, err := movement.ParseType(r.MovementType)
	if err != nil {
		return nil, err
	}

	m := &movement.StockMovement{
		ProcessNumber:          r.ProcessNumber,
		MovementType:           mt,
		ProductID:              r.ProductID,
		BatchID:                r.BatchID,
		Quantity:               r.Quantity,
		SourceWarehouseID:      r.SourceWarehouseID,
		DestinationWarehouseID: r.DestinationWarehouseID,
		EmployeeID:             r.EmployeeID,
		SupplierID:             r.SupplierID,
		ReferenceDocument:      r.ReferenceDocument,
		Note:                   r.Note,
	}
	if r.MovementTimestamp != nil {
		m.MovementTimestamp = *r.MovementTimestamp
	}
	return m, nil
}

// UpdateMovementRequest edits an existing movement. Absent fields keep their
// stored value; the clear flags null out optional routing fields.
type UpdateMovementRequest struct {
	ProcessNumber             *int64          `json:"processNumber"`
	MovementTimestamp         *time.Time      `json:"movementTimestamp"`
	MovementType              *string         `json:"movementType"`
	ProductID                 *int64          `json:"productId"`
	BatchID                   *int64          `json:"batchId"`
	Quantity                  *types.Quantity `json:"quantity"`
	SourceWarehouseID         *int64          `json:"sourceWarehouseId"`
	ClearSourceWarehouse      bool            `json:"clearSourceWarehouse"`
	DestinationWarehouseID    *int64          `json:"destinationWarehouseId"`
	ClearDestinationWarehouse bool            `json:"clearDestinationWarehouse"`
	EmployeeID                *int64          `json:"employeeId"`
	SupplierID                *int64          `json:"supplierId"`
	ClearSupplier             bool            `json:"clearSupplier"`
	ReferenceDocument         *string         `json:"referenceDocument"`
	Note                      *string         `json:"note"`
}

// ToUpdateFields maps the request onto the domain edit set.
func (r UpdateMovementRequest) ToUpdateFields() (movement.UpdateFields, error) {
	f := movement.UpdateFields{
		ProcessNumber:             r.ProcessNumber,
		MovementTimestamp:         r.MovementTimestamp,
		ProductID:                 r.ProductID,
		BatchID:                   r.BatchID,
		Quantity:                  r.Quantity,
		SourceWarehouseID:         r.SourceWarehouseID,
		ClearSourceWarehouse:      r.ClearSourceWarehouse,
		DestinationWarehouseID:    r.DestinationWarehouseID,
		ClearDestinationWarehouse: r.ClearDestinationWarehouse,
		EmployeeID:                r.EmployeeID,
		SupplierID:                r.SupplierID,
		ClearSupplier:             r.ClearSupplier,
		ReferenceDocument:         r.ReferenceDocument,
		Note:                      r.Note,
	}
	if r.MovementType != nil {
		t, err := movement.ParseType(*r.MovementType)
		if err != nil {
			return movement.UpdateFields{}, err
		}
		f.MovementType = &t
	}
	return f, nil
}

// MovementSearchRequest carries the search filter as query parameters.
type MovementSearchRequest struct {
	ProcessNumber          *int64          `form:"processNumber"`
	MovementType           *string         `form:"movementType"`
	ProductID              *int64          `form:"productId"`
	BatchID                *int64          `form:"batchId"`
	SourceWarehouseID      *int64          `form:"sourceWarehouseId"`
	DestinationWarehouseID *int64          `form:"destinationWarehouseId"`
	EmployeeID             *int64          `form:"employeeId"`
	SupplierID             *int64          `form:"supplierId"`
	ReferenceDocument      *string         `form:"referenceDocument"`
	Note                   *string         `form:"note"`
	Quantity               *types.Quantity `form:"quantity"`
	MovementDateFrom       *time.Time      `form:"movementDateFrom" time_format:"2006-01-02"`
	MovementDateTo         *time.Time      `form:"movementDateTo" time_format:"2006-01-02"`

	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit"`
	Offset  int    `form:"offset"`
}

// ToSearchFilter maps the request onto the repository filter.
func (r MovementSearchRequest) ToSearchFilter() (movement.SearchFilter, error) {
	f := movement.SearchFilter{
		ProcessNumber:          r.ProcessNumber,
		ProductID:              r.ProductID,
		BatchID:                r.BatchID,
		SourceWarehouseID:      r.SourceWarehouseID,
		DestinationWarehouseID: r.DestinationWarehouseID,
		EmployeeID:             r.EmployeeID,
		SupplierID:             r.SupplierID,
		ReferenceDocument:      r.ReferenceDocument,
		Note:                   r.Note,
		Quantity:               r.Quantity,
		MovementDateFrom:       r.MovementDateFrom,
		MovementDateTo:         r.MovementDateTo,
		OrderBy:                r.OrderBy,
		Limit:                  r.Limit,
		Offset:                 r.Offset,
	}
	if r.MovementType != nil {
		t, err := movement.ParseType(*r.MovementType)
		if err != nil {
			return movement.SearchFilter{}, err
		}
		f.MovementType = &t
	}
	return f, nil
}

// LookupsResponse returns the distinct values used by search dropdowns.
type LookupsResponse struct {
	ProductIDs     []int64         `json:"productIds"`
	EmployeeIDs    []int64         `json:"employeeIds"`
	SupplierIDs    []int64         `json:"supplierIds"`
	MovementTypes  []movement.Type `json:"movementTypes"`
	MovementDates  []time.Time     `json:"movementDates"`
	ProcessNumbers []int64         `json:"processNumbers"`
}
