// Package id defines the identifier type shared by every persisted entity.
// Identifiers are UUIDv7: time-ordered, so rows sort naturally by creation
// time and cluster well in B-tree indexes.
package id

import (
	"github.com/google/uuid"
)

// ID is the entity identifier. An alias (not a named type) so pgx and the
// json package handle it through the uuid integrations directly.
type ID = uuid.UUID

// New generates a UUIDv7 per RFC 9562. The first 48 bits carry a Unix
// timestamp, which gives chronological ordering without a separate
// created_at index.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to V4.
		return uuid.New()
	}
	return id
}

// Parse converts a string to an ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts a string to an ID and panics on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero-value ID.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether the ID is the zero value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
