package customer

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain"
)

// RelationContacts is the cascade relation name for the customer's contacts.
const RelationContacts = "contacts"

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByTaxID retrieves customer by tax id.
	FindByTaxID(ctx context.Context, taxID string) (*Customer, error)

	// GetForUpdate retrieves customer with row lock (for transactional updates).
	GetForUpdate(ctx context.Context, id id.ID) (*Customer, error)

	// ListContacts returns the customer's contacts.
	ListContacts(ctx context.Context, customerID id.ID, includeInactive bool) ([]Contact, error)

	// CountActiveContacts returns the number of active contacts.
	CountActiveContacts(ctx context.Context, customerID id.ID) (int, error)

	// CreateContact inserts a contact row.
	CreateContact(ctx context.Context, contact *Contact) error

	// ImportContacts bulk-inserts contact rows. Transactional.
	ImportContacts(ctx context.Context, contacts []Contact) (int64, error)

	// UpdateContact modifies a contact row.
	UpdateContact(ctx context.Context, contact *Contact) error
}
