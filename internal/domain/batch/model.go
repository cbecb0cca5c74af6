// Package batch contains the batch model and its remaining-quantity tracker.
package batch

import (
	"context"
	"time"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
	"warelog/internal/core/types"
)

// Batch statuses.
const (
	StatusActive     = "Active"
	StatusDepleted   = "Depleted"
	StatusExpired    = "Expired"
	StatusQuarantine = "Quarantine"
)

// Batch is a production lot of a product with its own remaining-quantity
// counter, expiry and pricing. The Quantity column is mutated only through
// the Tracker.
type Batch struct {
	entity.BaseEntity

	ProductID      int64           `db:"product_id" json:"productId"`
	SerialNumber   string          `db:"serial_number" json:"serialNumber"`
	LotNumber      string          `db:"lot_number" json:"lotNumber"`
	ProductionDate *time.Time      `db:"production_date" json:"productionDate,omitempty"`
	ExpirationDate *time.Time      `db:"expiration_date" json:"expirationDate,omitempty"`
	PurchasePrice  *types.Money    `db:"purchase_price" json:"purchasePrice,omitempty"`
	SalePrice      *types.Money    `db:"sale_price" json:"salePrice,omitempty"`
	Quantity       types.Quantity  `db:"quantity" json:"quantity"`
	BatchStatus    string          `db:"batch_status" json:"batchStatus"`
	Note           *string         `db:"note" json:"note,omitempty"`
}

// Validate implements entity.Validatable.
func (b *Batch) Validate(ctx context.Context) error {
	if b.ProductID == 0 {
		return apperror.NewValidation("product is required").WithDetail("field", "productId")
	}
	if b.SerialNumber == "" {
		return apperror.NewValidation("serial number is required").WithDetail("field", "serialNumber")
	}
	if b.LotNumber == "" {
		return apperror.NewValidation("lot number is required").WithDetail("field", "lotNumber")
	}
	if b.Quantity.IsNegative() {
		return apperror.NewValidation("quantity cannot be negative").WithDetail("field", "quantity")
	}
	if b.ProductionDate != nil && b.ExpirationDate != nil && b.ExpirationDate.Before(*b.ProductionDate) {
		return apperror.NewValidation("expiration date precedes production date").
			WithDetail("field", "expirationDate")
	}
	return nil
}

// IsExpired reports whether the batch is past its expiration date.
func (b *Batch) IsExpired(now time.Time) bool {
	return b.ExpirationDate != nil && now.After(*b.ExpirationDate)
}
