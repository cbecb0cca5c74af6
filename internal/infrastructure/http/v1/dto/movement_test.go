package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
	"warelog/internal/domain/movement"
)

func TestCreateMovementRequest_ToMovement(t *testing.T) {
	dst := int64(20)
	req := CreateMovementRequest{
		MovementType:           "Inbound",
		ProductID:              1,
		BatchID:                2,
		Quantity:               types.MustQuantity("10"),
		DestinationWarehouseID: &dst,
		EmployeeID:             3,
		ReferenceDocument:      "DOC-1",
	}

	m, err := req.ToMovement()
	require.NoError(t, err)
	assert.Equal(t, movement.TypeInbound, m.MovementType)
	assert.Equal(t, dst, *m.DestinationWarehouseID)
}

func TestCreateMovementRequest_RejectsUnknownType(t *testing.T) {
	for _, raw := range []string{"inbound", "Adjustment", ""} {
		req := CreateMovementRequest{MovementType: raw}
		_, err := req.ToMovement()
		require.Error(t, err, "type %q", raw)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	}
}

func TestUpdateMovementRequest_TypeHandling(t *testing.T) {
	raw := "Transfer"
	fields, err := UpdateMovementRequest{MovementType: &raw}.ToUpdateFields()
	require.NoError(t, err)
	assert.Equal(t, movement.TypeTransfer, *fields.MovementType)

	bad := "transfer"
	_, err = UpdateMovementRequest{MovementType: &bad}.ToUpdateFields()
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	// absent type stays absent
	fields, err = UpdateMovementRequest{}.ToUpdateFields()
	require.NoError(t, err)
	assert.Nil(t, fields.MovementType)
}

func TestMovementSearchRequest_TypeHandling(t *testing.T) {
	raw := "Outbound"
	flt, err := MovementSearchRequest{MovementType: &raw}.ToSearchFilter()
	require.NoError(t, err)
	assert.Equal(t, movement.TypeOutbound, *flt.MovementType)

	bad := "OUT"
	_, err = MovementSearchRequest{MovementType: &bad}.ToSearchFilter()
	require.Error(t, err)
}
