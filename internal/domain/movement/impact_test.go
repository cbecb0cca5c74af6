package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
)

func TestComputeImpact_Inbound(t *testing.T) {
	m := validMovement(TypeInbound)

	impact, err := ComputeImpact(m)
	require.NoError(t, err)

	require.Len(t, impact.Stock, 1)
	assert.Equal(t, int64(1), impact.Stock[0].ProductID)
	assert.Equal(t, int64(20), impact.Stock[0].WarehouseID)
	assert.True(t, impact.Stock[0].Delta.Equal(types.MustQuantity("10")))

	require.NotNil(t, impact.Batch)
	assert.Equal(t, int64(2), impact.Batch.BatchID)
	assert.True(t, impact.Batch.Delta.Equal(types.MustQuantity("10")))
}

func TestComputeImpact_Outbound(t *testing.T) {
	m := validMovement(TypeOutbound)

	impact, err := ComputeImpact(m)
	require.NoError(t, err)

	require.Len(t, impact.Stock, 1)
	assert.Equal(t, int64(10), impact.Stock[0].WarehouseID)
	assert.True(t, impact.Stock[0].Delta.Equal(types.MustQuantity("-10")))

	require.NotNil(t, impact.Batch)
	assert.True(t, impact.Batch.Delta.Equal(types.MustQuantity("-10")))
}

func TestComputeImpact_Transfer(t *testing.T) {
	m := validMovement(TypeTransfer)

	impact, err := ComputeImpact(m)
	require.NoError(t, err)

	// source drained first, destination filled second
	require.Len(t, impact.Stock, 2)
	assert.Equal(t, int64(10), impact.Stock[0].WarehouseID)
	assert.True(t, impact.Stock[0].Delta.Equal(types.MustQuantity("-10")))
	assert.Equal(t, int64(20), impact.Stock[1].WarehouseID)
	assert.True(t, impact.Stock[1].Delta.Equal(types.MustQuantity("10")))

	// transfer relocates; the batch total never changes
	assert.Nil(t, impact.Batch)
}

func TestComputeImpact_ProcessingSourceSide(t *testing.T) {
	m := validMovement(TypeProcessing)

	impact, err := ComputeImpact(m)
	require.NoError(t, err)

	require.Len(t, impact.Stock, 1)
	assert.Equal(t, int64(10), impact.Stock[0].WarehouseID)
	assert.True(t, impact.Stock[0].Delta.Equal(types.MustQuantity("-10")))

	require.NotNil(t, impact.Batch)
	assert.True(t, impact.Batch.Delta.Equal(types.MustQuantity("-10")))
}

func TestComputeImpact_ProcessingDestinationSide(t *testing.T) {
	m := validMovement(TypeProcessing)
	m.SourceWarehouseID = nil
	m.DestinationWarehouseID = ptr(int64(20))

	impact, err := ComputeImpact(m)
	require.NoError(t, err)

	require.Len(t, impact.Stock, 1)
	assert.Equal(t, int64(20), impact.Stock[0].WarehouseID)
	assert.True(t, impact.Stock[0].Delta.Equal(types.MustQuantity("10")))

	require.NotNil(t, impact.Batch)
	assert.True(t, impact.Batch.Delta.Equal(types.MustQuantity("10")))
}

func TestComputeImpact_RejectsBadShape(t *testing.T) {
	m := validMovement(TypeInbound)
	m.SourceWarehouseID = ptr(int64(10))

	_, err := ComputeImpact(m)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidMovementShape))
}

func TestInverse_RoundTrip(t *testing.T) {
	for _, mt := range []Type{TypeInbound, TypeOutbound, TypeTransfer, TypeProcessing} {
		impact, err := ComputeImpact(validMovement(mt))
		require.NoError(t, err)

		inv := impact.Inverse()

		require.Len(t, inv.Stock, len(impact.Stock))
		for i := range impact.Stock {
			assert.Equal(t, impact.Stock[i].ProductID, inv.Stock[i].ProductID)
			assert.Equal(t, impact.Stock[i].WarehouseID, inv.Stock[i].WarehouseID)
			assert.True(t, impact.Stock[i].Delta.Add(inv.Stock[i].Delta).IsZero())
		}
		if impact.Batch == nil {
			assert.Nil(t, inv.Batch)
		} else {
			require.NotNil(t, inv.Batch)
			assert.Equal(t, impact.Batch.BatchID, inv.Batch.BatchID)
			assert.True(t, impact.Batch.Delta.Add(inv.Batch.Delta).IsZero())
		}
	}
}
