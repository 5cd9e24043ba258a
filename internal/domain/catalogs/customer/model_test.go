package customer

import (
	"context"
	"testing"

	"backoffice/internal/core/id"
)

func strPtr(s string) *string { return &s }

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Customer)
		wantErr bool
	}{
		{
			name:    "valid company",
			mutate:  func(c *Customer) {},
			wantErr: false,
		},
		{
			name:    "empty name",
			mutate:  func(c *Customer) { c.Name = "" },
			wantErr: true,
		},
		{
			name:    "invalid type",
			mutate:  func(c *Customer) { c.Type = "partnership" },
			wantErr: true,
		},
		{
			name:    "valid tax id",
			mutate:  func(c *Customer) { c.TaxID = strPtr("123456789") },
			wantErr: false,
		},
		{
			name:    "tax id with letters",
			mutate:  func(c *Customer) { c.TaxID = strPtr("12345abc9") },
			wantErr: true,
		},
		{
			name:    "tax id too short",
			mutate:  func(c *Customer) { c.TaxID = strPtr("1234") },
			wantErr: true,
		},
		{
			name:    "tax id with spaces is cleaned",
			mutate:  func(c *Customer) { c.TaxID = strPtr("123 456 789") },
			wantErr: false,
		},
		{
			name:    "valid email",
			mutate:  func(c *Customer) { c.Email = strPtr("billing@acme.example") },
			wantErr: false,
		},
		{
			name:    "invalid email",
			mutate:  func(c *Customer) { c.Email = strPtr("not-an-email") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCustomer("CUST-001", "Acme Inc.", TypeCompany)
			tt.mutate(c)

			err := c.Validate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestContact_Validate(t *testing.T) {
	custID := id.New()

	tests := []struct {
		name    string
		mutate  func(c *Contact)
		wantErr bool
	}{
		{"valid", func(c *Contact) {}, false},
		{"missing customer", func(c *Contact) { c.CustomerID = id.Nil() }, true},
		{"missing first name", func(c *Contact) { c.FirstName = "" }, true},
		{"bad email", func(c *Contact) { c.Email = "nope" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContact(custID, "Jordan")
			tt.mutate(c)

			err := c.Validate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestContact_FullName(t *testing.T) {
	c := NewContact(id.New(), "Jordan")
	if got := c.FullName(); got != "Jordan" {
		t.Errorf("FullName() = %q, want %q", got, "Jordan")
	}

	c.LastName = "Lee"
	if got := c.FullName(); got != "Jordan Lee" {
		t.Errorf("FullName() = %q, want %q", got, "Jordan Lee")
	}
}
