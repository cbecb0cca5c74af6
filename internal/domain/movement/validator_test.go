package movement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warelog/internal/core/apperror"
)

// setChecker reports existence from a fixed ID set.
type setChecker map[int64]bool

func (s setChecker) Exists(_ context.Context, id int64) (bool, error) {
	return s[id], nil
}

func allRefs() References {
	return References{
		Products:   setChecker{1: true},
		Batches:    setChecker{2: true},
		Warehouses: setChecker{10: true, 20: true},
		Employees:  setChecker{3: true},
		Suppliers:  setChecker{4: true},
	}
}

func TestReferencesValidate_AllPresent(t *testing.T) {
	m := validMovement(TypeTransfer)
	m.SupplierID = ptr(int64(4))

	assert.NoError(t, allRefs().Validate(context.Background(), m))
}

func TestReferencesValidate_MissingReference(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *StockMovement)
	}{
		{"product", func(m *StockMovement) { m.ProductID = 99 }},
		{"batch", func(m *StockMovement) { m.BatchID = 99 }},
		{"employee", func(m *StockMovement) { m.EmployeeID = 99 }},
		{"source warehouse", func(m *StockMovement) { m.SourceWarehouseID = ptr(int64(99)) }},
		{"destination warehouse", func(m *StockMovement) { m.DestinationWarehouseID = ptr(int64(99)) }},
		{"supplier", func(m *StockMovement) { m.SupplierID = ptr(int64(99)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMovement(TypeTransfer)
			tt.mutate(m)

			err := allRefs().Validate(context.Background(), m)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeReferenceNotFound))
		})
	}
}

func TestReferencesValidate_NilOptionalRefsSkipped(t *testing.T) {
	m := validMovement(TypeOutbound)
	m.SupplierID = nil

	// supplier checker that would fail if consulted
	refs := allRefs()
	refs.Suppliers = setChecker{}

	assert.NoError(t, refs.Validate(context.Background(), m))
}
