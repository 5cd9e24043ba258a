package entity

import (
	"context"
	"time"

	"backoffice/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity contains common fields for all persisted entities.
// This is the unified base that eliminates code duplication.
//
// Lifecycle invariant: DeletedAt is set if and only if the entity was
// soft-deleted, and a set DeletedAt always implies IsActive == false.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// IsActive is false for soft-deactivated entities
	IsActive bool `db:"is_active" json:"isActive"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Attributes stores custom fields (JSONB in PostgreSQL)
	Attributes Attributes `db:"attributes" json:"attributes,omitempty"`

	// Audit timestamps
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
}

// NewBaseEntity creates a new active BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        id.New(),
		IsActive:  true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp and increments version
// (for optimistic locking).
func (b *BaseEntity) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// Deactivate soft-deletes the entity: clears IsActive and stamps DeletedAt.
// Calling it on an already inactive entity is a no-op.
func (b *BaseEntity) Deactivate() {
	if !b.IsActive && b.DeletedAt != nil {
		return
	}
	now := time.Now().UTC()
	b.IsActive = false
	b.DeletedAt = &now
}

// Restore reverses a soft delete.
func (b *BaseEntity) Restore() {
	b.IsActive = true
	b.DeletedAt = nil
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}

// SetUpdatedAt updates the updated_at timestamp (used by repository).
func (b *BaseEntity) SetUpdatedAt(t time.Time) {
	b.UpdatedAt = t
}

// SetAttribute is a convenience method for setting custom fields.
func (b *BaseEntity) SetAttribute(key string, value any) {
	if b.Attributes == nil {
		b.Attributes = make(Attributes)
	}
	b.Attributes[key] = value
}

// GetAttribute is a convenience method for getting custom fields.
func (b *BaseEntity) GetAttribute(key string) any {
	if b.Attributes == nil {
		return nil
	}
	return b.Attributes[key]
}
