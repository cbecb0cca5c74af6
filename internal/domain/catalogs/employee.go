package catalogs

import (
	"context"
	"time"

	"warelog/internal/core/apperror"
	"warelog/internal/core/entity"
)

// Employee is a member of staff who performs and signs off stock movements.
type Employee struct {
	entity.BaseEntity

	// UserID links the employee to a login account (nullable, unique)
	UserID *int64 `db:"user_id" json:"userId,omitempty"`

	FirstName      string    `db:"first_name" json:"firstName"`
	LastName       string    `db:"last_name" json:"lastName"`
	Position       *string   `db:"position" json:"position,omitempty"`
	EmploymentDate time.Time `db:"employment_date" json:"employmentDate"`
	ContactPhone   *string   `db:"contact_phone" json:"contactPhone,omitempty"`
	IsActive       bool      `db:"is_active" json:"isActive"`
}

// Validate implements entity.Validatable.
func (e *Employee) Validate(ctx context.Context) error {
	if e.FirstName == "" {
		return apperror.NewValidation("first name is required").WithDetail("field", "firstName")
	}
	if e.LastName == "" {
		return apperror.NewValidation("last name is required").WithDetail("field", "lastName")
	}
	if e.EmploymentDate.IsZero() {
		return apperror.NewValidation("employment date is required").WithDetail("field", "employmentDate")
	}
	return nil
}

// FullName returns the display name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
