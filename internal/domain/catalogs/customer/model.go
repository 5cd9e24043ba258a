// Package customer provides the Customer catalog and its Contact relation.
package customer

import (
	"context"
	"regexp"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
)

// Pre-compiled regex patterns for validation (performance optimization)
var (
	whitespaceRE = regexp.MustCompile(`\s`)
	digitsOnlyRE = regexp.MustCompile(`^\d+$`)
	emailRE      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// CustomerType defines the type of customer.
type CustomerType string

const (
	TypeCompany    CustomerType = "company"
	TypeIndividual CustomerType = "individual"
	TypeGovernment CustomerType = "government"
)

// Customer represents a business customer.
type Customer struct {
	entity.Catalog

	// Type defines the customer's legal status
	Type CustomerType `db:"type" json:"type"`

	// FullName is the official registered name
	FullName *string `db:"full_name" json:"fullName,omitempty"`

	// TaxID is the customer's tax identification number
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	// BillingAddress is the invoicing address
	BillingAddress *string `db:"billing_address" json:"billingAddress,omitempty"`

	// ShippingAddress is the delivery address
	ShippingAddress *string `db:"shipping_address" json:"shippingAddress,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Comment is a free-form note
	Comment *string `db:"comment" json:"comment,omitempty"`

	// Loaded relations
	Contacts []Contact `db:"-" json:"contacts,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string, custType CustomerType) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
		Type:    custType,
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Type validation
	if !isValidCustomerType(c.Type) {
		return apperror.NewValidation("invalid customer type").
			WithDetail("field", "type").
			WithDetail("value", string(c.Type))
	}

	// Tax ID validation (if provided)
	if c.TaxID != nil && *c.TaxID != "" {
		if err := validateTaxID(*c.TaxID); err != nil {
			return err
		}
	}

	// Email validation (if provided)
	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// IsCompany returns true for legal entities.
func (c *Customer) IsCompany() bool {
	return c.Type == TypeCompany || c.Type == TypeGovernment
}

// Contact is a person attached to a customer. Contacts follow the customer's
// lifecycle: deactivating a customer with cascade "contacts" deactivates them.
type Contact struct {
	entity.BaseEntity

	// CustomerID is the owning customer
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	FirstName string  `db:"first_name" json:"firstName"`
	LastName  string  `db:"last_name" json:"lastName,omitempty"`
	Position  *string `db:"position" json:"position,omitempty"`

	entity.ContactInfo

	// IsPrimary marks the main contact for the customer
	IsPrimary bool `db:"is_primary" json:"isPrimary"`
}

// NewContact creates a contact for the given customer.
func NewContact(customerID id.ID, firstName string) *Contact {
	return &Contact{
		BaseEntity: entity.NewBaseEntity(),
		CustomerID: customerID,
		FirstName:  firstName,
	}
}

// Validate implements entity.Validatable interface.
func (c *Contact) Validate(ctx context.Context) error {
	if id.IsNil(c.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if c.FirstName == "" {
		return apperror.NewValidation("first name is required").
			WithDetail("field", "firstName")
	}
	return c.ValidateContactInfo(ctx)
}

// FullName returns the contact's display name.
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// --- Validation Helpers ---

func isValidCustomerType(t CustomerType) bool {
	switch t {
	case TypeCompany, TypeIndividual, TypeGovernment:
		return true
	}
	return false
}

func validateTaxID(taxID string) error {
	cleaned := whitespaceRE.ReplaceAllString(taxID, "")

	if len(cleaned) < 8 || len(cleaned) > 15 {
		return apperror.NewValidation("tax id must be 8 to 15 digits").
			WithDetail("field", "taxId")
	}
	if !digitsOnlyRE.MatchString(cleaned) {
		return apperror.NewValidation("tax id must contain only digits").
			WithDetail("field", "taxId")
	}
	return nil
}
