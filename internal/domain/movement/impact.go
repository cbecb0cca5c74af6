package movement

import (
	"warelog/internal/core/apperror"
	"warelog/internal/core/types"
)

// StockDelta is one signed stock-level adjustment.
type StockDelta struct {
	ProductID   int64
	WarehouseID int64
	Delta       types.Quantity
}

// BatchDelta is a signed batch remaining-quantity adjustment.
type BatchDelta struct {
	BatchID int64
	Delta   types.Quantity
}

// Impact is the full aggregate effect of one movement: the stock-level
// adjustments it implies plus the batch adjustment, if any.
type Impact struct {
	Stock []StockDelta
	Batch *BatchDelta
}

// ComputeImpact derives the aggregate effect of a movement. Pure, no I/O.
//
//	Inbound     +quantity at destination, batch +quantity
//	Outbound    -quantity at source, batch -quantity
//	Transfer    -quantity at source, +quantity at destination, batch untouched
//	Processing  one-sided: the set side's sign carries over to the batch
//
// A routing shape outside the table fails with INVALID_MOVEMENT_SHAPE rather
// than silently defaulting.
func ComputeImpact(m *StockMovement) (Impact, error) {
	if err := m.ValidateShape(); err != nil {
		return Impact{}, err
	}

	qty := m.Quantity
	switch m.MovementType {
	case TypeInbound:
		return Impact{
			Stock: []StockDelta{{m.ProductID, *m.DestinationWarehouseID, qty}},
			Batch: &BatchDelta{m.BatchID, qty},
		}, nil

	case TypeOutbound:
		return Impact{
			Stock: []StockDelta{{m.ProductID, *m.SourceWarehouseID, qty.Neg()}},
			Batch: &BatchDelta{m.BatchID, qty.Neg()},
		}, nil

	case TypeTransfer:
		// Relocation only; the batch's total remains constant.
		return Impact{
			Stock: []StockDelta{
				{m.ProductID, *m.SourceWarehouseID, qty.Neg()},
				{m.ProductID, *m.DestinationWarehouseID, qty},
			},
		}, nil

	case TypeProcessing:
		if m.SourceWarehouseID != nil {
			return Impact{
				Stock: []StockDelta{{m.ProductID, *m.SourceWarehouseID, qty.Neg()}},
				Batch: &BatchDelta{m.BatchID, qty.Neg()},
			}, nil
		}
		return Impact{
			Stock: []StockDelta{{m.ProductID, *m.DestinationWarehouseID, qty}},
			Batch: &BatchDelta{m.BatchID, qty},
		}, nil
	}

	// Unreachable: ValidateShape rejects unknown types.
	return Impact{}, apperror.NewInvalidMovementShape(
		string(m.MovementType), m.SourceWarehouseID != nil, m.DestinationWarehouseID != nil)
}

// Inverse negates every delta, preserving routing. Applying an impact and
// then its inverse restores every touched quantity to its prior value.
func (i Impact) Inverse() Impact {
	inv := Impact{Stock: make([]StockDelta, len(i.Stock))}
	for n, d := range i.Stock {
		inv.Stock[n] = StockDelta{d.ProductID, d.WarehouseID, d.Delta.Neg()}
	}
	if i.Batch != nil {
		inv.Batch = &BatchDelta{i.Batch.BatchID, i.Batch.Delta.Neg()}
	}
	return inv
}
