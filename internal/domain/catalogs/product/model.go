// Package product provides the Product catalog.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
)

// ProductType defines the kind of sellable item.
type ProductType string

const (
	TypeGoods   ProductType = "goods"
	TypeService ProductType = "service"
	TypeDigital ProductType = "digital"
)

// Product represents a sellable item.
type Product struct {
	entity.Catalog

	// Type defines item category
	Type ProductType `db:"type" json:"type"`

	// SKU is the stock keeping unit (unique)
	SKU *string `db:"sku" json:"sku,omitempty"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// Price is the list price
	Price decimal.Decimal `db:"price" json:"price"`

	// Weight in kg (for logistics)
	Weight decimal.Decimal `db:"weight" json:"weight"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`

	// ImageURL is the item image URL
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, productType ProductType) *Product {
	return &Product{
		Catalog: entity.NewCatalog(code, name),
		Type:    productType,
		Price:   decimal.Zero,
		Weight:  decimal.Zero,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Type validation
	if !isValidProductType(p.Type) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	// Price must be non-negative
	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	// Weight must be non-negative
	if p.Weight.IsNegative() {
		return apperror.NewValidation("weight cannot be negative").
			WithDetail("field", "weight")
	}

	// Services have no weight
	if p.Type == TypeService && !p.Weight.IsZero() {
		return apperror.NewValidation("services cannot have weight").
			WithDetail("field", "weight")
	}

	return nil
}

// IsPhysical returns true if item has physical presence.
func (p *Product) IsPhysical() bool {
	return p.Type == TypeGoods
}

// --- Validation Helpers ---

func isValidProductType(t ProductType) bool {
	switch t {
	case TypeGoods, TypeService, TypeDigital:
		return true
	}
	return false
}
