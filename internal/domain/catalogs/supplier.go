package catalogs

import (
	"context"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
)

// Supplier is an external party goods are received from.
type Supplier struct {
	entity.BaseEntity

	SupplierName  string  `db:"supplier_name" json:"supplierName"`
	LocationID    *int64  `db:"location_id" json:"locationId,omitempty"`
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`
	Phone         *string `db:"phone" json:"phone,omitempty"`
	Email         *string `db:"email" json:"email,omitempty"`

	// JIB and PDVNumber are the tax registration identifiers
	JIB       *string `db:"jib" json:"jib,omitempty"`
	PDVNumber *string `db:"pdv_number" json:"pdvNumber,omitempty"`

	IsActive bool    `db:"is_active" json:"isActive"`
	Note     *string `db:"note" json:"note,omitempty"`
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.SupplierName == "" {
		return apperror.NewValidation("supplier name is required").WithDetail("field", "supplierName")
	}
	return nil
}
