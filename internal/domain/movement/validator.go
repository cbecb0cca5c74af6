package movement

import (
	"context"
	"fmt"

	"warelog/internal/core/apperror"
)

// References bundles the existence checks for every foreign entity a movement
// can name. All checks are read-only.
type References struct {
	Products   ExistenceChecker
	Batches    ExistenceChecker
	Warehouses ExistenceChecker
	Employees  ExistenceChecker
	Suppliers  ExistenceChecker
}

type refCheck struct {
	kind    string
	id      int64
	checker ExistenceChecker
}

// Validate confirms that every non-null reference on the movement exists.
// Fails with REFERENCE_NOT_FOUND on the first missing one; callers must not
// proceed past a failure.
func (r References) Validate(ctx context.Context, m *StockMovement) error {
	checks := []refCheck{
		{"product", m.ProductID, r.Products},
		{"batch", m.BatchID, r.Batches},
		{"employee", m.EmployeeID, r.Employees},
	}
	if m.SourceWarehouseID != nil {
		checks = append(checks, refCheck{"warehouse", *m.SourceWarehouseID, r.Warehouses})
	}
	if m.DestinationWarehouseID != nil {
		checks = append(checks, refCheck{"warehouse", *m.DestinationWarehouseID, r.Warehouses})
	}
	if m.SupplierID != nil {
		checks = append(checks, refCheck{"supplier", *m.SupplierID, r.Suppliers})
	}

	for _, c := range checks {
		exists, err := c.checker.Exists(ctx, c.id)
		if err != nil {
			return fmt.Errorf("check %s %d: %w", c.kind, c.id, err)
		}
		if !exists {
			return apperror.NewReferenceNotFound(c.kind, c.id)
		}
	}
	return nil
}
