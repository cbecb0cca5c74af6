package movement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
)

func ptr[T any](v T) *T { return &v }

func validMovement(mt Type) *StockMovement {
	m := &StockMovement{
		MovementType:      mt,
		ProductID:         1,
		BatchID:           2,
		Quantity:          types.MustQuantity("10"),
		EmployeeID:        3,
		ReferenceDocument: "DOC-1",
	}
	switch mt {
	case TypeInbound:
		m.DestinationWarehouseID = ptr(int64(20))
	case TypeOutbound:
		m.SourceWarehouseID = ptr(int64(10))
	case TypeTransfer:
		m.SourceWarehouseID = ptr(int64(10))
		m.DestinationWarehouseID = ptr(int64(20))
	case TypeProcessing:
		m.SourceWarehouseID = ptr(int64(10))
	}
	return m
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"Inbound", "Outbound", "Transfer", "Processing"} {
		mt, err := ParseType(s)
		assert.NoError(t, err)
		assert.Equal(t, Type(s), mt)
	}

	for _, s := range []string{"", "inbound", "INBOUND", "Adjustment"} {
		_, err := ParseType(s)
		assert.Error(t, err, "expected error for %q", s)
	}
}

func TestValidateShape(t *testing.T) {
	src := ptr(int64(10))
	dst := ptr(int64(20))

	tests := []struct {
		name string
		mt   Type
		src  *int64
		dst  *int64
		ok   bool
	}{
		{"inbound dest only", TypeInbound, nil, dst, true},
		{"inbound with source", TypeInbound, src, dst, false},
		{"inbound neither", TypeInbound, nil, nil, false},
		{"outbound source only", TypeOutbound, src, nil, true},
		{"outbound with dest", TypeOutbound, src, dst, false},
		{"outbound neither", TypeOutbound, nil, nil, false},
		{"transfer both", TypeTransfer, src, dst, true},
		{"transfer source only", TypeTransfer, src, nil, false},
		{"transfer dest only", TypeTransfer, nil, dst, false},
		{"processing source only", TypeProcessing, src, nil, true},
		{"processing dest only", TypeProcessing, nil, dst, true},
		{"processing both", TypeProcessing, src, dst, false},
		{"processing neither", TypeProcessing, nil, nil, false},
		{"unknown type", Type("Adjustment"), src, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &StockMovement{
				MovementType:           tt.mt,
				SourceWarehouseID:      tt.src,
				DestinationWarehouseID: tt.dst,
			}
			err := m.ValidateShape()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.IsCode(err, apperror.CodeInvalidMovementShape))
			}
		})
	}
}

func TestValidate_FieldChecks(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, validMovement(TypeInbound).Validate(ctx))

	m := validMovement(TypeInbound)
	m.ProductID = 0
	assert.Error(t, m.Validate(ctx))

	m = validMovement(TypeInbound)
	m.BatchID = 0
	assert.Error(t, m.Validate(ctx))

	m = validMovement(TypeInbound)
	m.EmployeeID = 0
	assert.Error(t, m.Validate(ctx))

	m = validMovement(TypeInbound)
	m.ReferenceDocument = ""
	assert.Error(t, m.Validate(ctx))

	m = validMovement(TypeInbound)
	m.Quantity = types.Zero()
	assert.Error(t, m.Validate(ctx))

	m = validMovement(TypeInbound)
	m.Quantity = types.MustQuantity("-1")
	assert.Error(t, m.Validate(ctx))
}
