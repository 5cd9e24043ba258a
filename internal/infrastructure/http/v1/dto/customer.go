package dto

import (
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code            string                `json:"code"`
	Name            string                `json:"name" binding:"required"`
	Type            customer.CustomerType `json:"type" binding:"required"`
	FullName        *string               `json:"fullName"`
	TaxID           *string               `json:"taxId"`
	BillingAddress  *string               `json:"billingAddress"`
	ShippingAddress *string               `json:"shippingAddress"`
	Phone           *string               `json:"phone"`
	Email           *string               `json:"email"`
	Comment         *string               `json:"comment"`
	Attributes      entity.Attributes     `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name, r.Type)
	c.FullName = r.FullName
	c.TaxID = r.TaxID
	c.BillingAddress = r.BillingAddress
	c.ShippingAddress = r.ShippingAddress
	c.Phone = r.Phone
	c.Email = r.Email
	c.Comment = r.Comment
	c.Attributes = r.Attributes
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code            string                `json:"code"`
	Name            string                `json:"name" binding:"required"`
	Type            customer.CustomerType `json:"type" binding:"required"`
	FullName        *string               `json:"fullName"`
	TaxID           *string               `json:"taxId"`
	BillingAddress  *string               `json:"billingAddress"`
	ShippingAddress *string               `json:"shippingAddress"`
	Phone           *string               `json:"phone"`
	Email           *string               `json:"email"`
	Comment         *string               `json:"comment"`
	Attributes      entity.Attributes     `json:"attributes"`
	Version         int                   `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	c.Code = r.Code
	c.Name = r.Name
	c.Type = r.Type
	c.FullName = r.FullName
	c.TaxID = r.TaxID
	c.BillingAddress = r.BillingAddress
	c.ShippingAddress = r.ShippingAddress
	c.Phone = r.Phone
	c.Email = r.Email
	c.Comment = r.Comment
	c.Attributes = r.Attributes
	c.Version = r.Version
}

// CreateContactRequest is the request body for adding a contact to a customer.
type CreateContactRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName"`
	Position  *string `json:"position"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	IsPrimary bool    `json:"isPrimary"`
}

// ToEntity converts DTO to a contact owned by the given customer.
func (r *CreateContactRequest) ToEntity(customerID id.ID) *customer.Contact {
	c := customer.NewContact(customerID, r.FirstName)
	c.LastName = r.LastName
	c.Position = r.Position
	c.Email = r.Email
	c.Phone = r.Phone
	c.IsPrimary = r.IsPrimary
	return c
}

// ImportContactsRequest is the request body for bulk contact import.
type ImportContactsRequest struct {
	Contacts []CreateContactRequest `json:"contacts" binding:"required,min=1,dive"`
}

// ToEntities converts the import payload to contacts owned by the customer.
func (r *ImportContactsRequest) ToEntities(customerID id.ID) []customer.Contact {
	contacts := make([]customer.Contact, len(r.Contacts))
	for i := range r.Contacts {
		contacts[i] = *r.Contacts[i].ToEntity(customerID)
	}
	return contacts
}

// --- Response DTOs ---

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	BaseResponse
	Code            string                `json:"code"`
	Name            string                `json:"name"`
	Type            customer.CustomerType `json:"type"`
	FullName        *string               `json:"fullName,omitempty"`
	TaxID           *string               `json:"taxId,omitempty"`
	BillingAddress  *string               `json:"billingAddress,omitempty"`
	ShippingAddress *string               `json:"shippingAddress,omitempty"`
	Phone           *string               `json:"phone,omitempty"`
	Email           *string               `json:"email,omitempty"`
	Comment         *string               `json:"comment,omitempty"`
	Contacts        []ContactResponse     `json:"contacts,omitempty"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(c *customer.Customer) *CustomerResponse {
	resp := &CustomerResponse{
		BaseResponse:    FromBaseEntity(c.BaseEntity),
		Code:            c.Code,
		Name:            c.Name,
		Type:            c.Type,
		FullName:        c.FullName,
		TaxID:           c.TaxID,
		BillingAddress:  c.BillingAddress,
		ShippingAddress: c.ShippingAddress,
		Phone:           c.Phone,
		Email:           c.Email,
		Comment:         c.Comment,
	}
	for _, contact := range c.Contacts {
		resp.Contacts = append(resp.Contacts, FromContact(contact))
	}
	return resp
}

// ContactResponse is the response body for a customer contact.
type ContactResponse struct {
	BaseResponse
	CustomerID string  `json:"customerId"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName,omitempty"`
	Position   *string `json:"position,omitempty"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	IsPrimary  bool    `json:"isPrimary"`
}

// FromContact creates response DTO from domain entity.
func FromContact(c customer.Contact) ContactResponse {
	return ContactResponse{
		BaseResponse: FromBaseEntity(c.BaseEntity),
		CustomerID:   c.CustomerID.String(),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Position:     c.Position,
		Email:        c.Email,
		Phone:        c.Phone,
		IsPrimary:    c.IsPrimary,
	}
}
