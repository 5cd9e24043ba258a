package entity

import (
	"context"
	"strings"

	"backoffice/internal/core/apperror"
)

// ContactInfo is a trait for entities that carry reachability details.
// Used for composition in models like Customer and Contact.
type ContactInfo struct {
	Email string `db:"email" json:"email,omitempty"`
	Phone string `db:"phone" json:"phone,omitempty"`
}

// ValidateContactInfo performs a shallow sanity check of the fields.
// Both fields are optional; a non-empty email must at least contain "@".
func (c *ContactInfo) ValidateContactInfo(ctx context.Context) error {
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return apperror.NewValidation("invalid email").
			WithDetail("field", "email")
	}
	return nil
}

// HasContactInfo reports whether any contact detail is present.
func (c *ContactInfo) HasContactInfo() bool {
	return c.Email != "" || c.Phone != ""
}

// IContactInfo is an interface for any entity that exposes contact details.
type IContactInfo interface {
	HasContactInfo() bool
	ValidateContactInfo(ctx context.Context) error
}
