// Package entity contains base types shared by all persisted models.
package entity

import (
	"context"
	"time"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Identifiable is implemented by entities with a numeric primary key.
type Identifiable interface {
	GetID() int64
	SetID(id int64)
}

// Entity combines the requirements of generic repositories and services.
type Entity interface {
	Validatable
	Identifiable
}

// BaseEntity contains common fields for all persisted models.
type BaseEntity struct {
	// ID is the primary key (BIGSERIAL)
	ID int64 `db:"id" json:"id"`

	Timestamps
}

// GetID implements Identifiable.
func (b *BaseEntity) GetID() int64 { return b.ID }

// SetID implements Identifiable.
func (b *BaseEntity) SetID(id int64) { b.ID = id }

// Timestamps carries row bookkeeping columns maintained by the repository layer.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TouchCreated stamps both timestamps for a fresh row.
func (t *Timestamps) TouchCreated(now time.Time) {
	t.CreatedAt = now
	t.UpdatedAt = now
}

// TouchUpdated moves the update timestamp forward.
func (t *Timestamps) TouchUpdated(now time.Time) {
	t.UpdatedAt = now
}
