package dto

import (
	"github.com/shopspring/decimal"

	"backoffice/internal/core/entity"
	"backoffice/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Type        product.ProductType `json:"type" binding:"required"`
	SKU         *string             `json:"sku"`
	Barcode     *string             `json:"barcode"`
	Price       decimal.Decimal     `json:"price"`
	Weight      decimal.Decimal     `json:"weight"`
	Description *string             `json:"description"`
	ImageURL    *string             `json:"imageUrl"`
	Attributes  entity.Attributes   `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Type)
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.Price = r.Price
	p.Weight = r.Weight
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.Attributes = r.Attributes
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name" binding:"required"`
	Type        product.ProductType `json:"type" binding:"required"`
	SKU         *string             `json:"sku"`
	Barcode     *string             `json:"barcode"`
	Price       decimal.Decimal     `json:"price"`
	Weight      decimal.Decimal     `json:"weight"`
	Description *string             `json:"description"`
	ImageURL    *string             `json:"imageUrl"`
	Attributes  entity.Attributes   `json:"attributes"`
	Version     int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Type = r.Type
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.Price = r.Price
	p.Weight = r.Weight
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	BaseResponse
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Type        product.ProductType `json:"type"`
	SKU         *string             `json:"sku,omitempty"`
	Barcode     *string             `json:"barcode,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	Weight      decimal.Decimal     `json:"weight"`
	Description *string             `json:"description,omitempty"`
	ImageURL    *string             `json:"imageUrl,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		BaseResponse: FromBaseEntity(p.BaseEntity),
		Code:         p.Code,
		Name:         p.Name,
		Type:         p.Type,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Price:        p.Price,
		Weight:       p.Weight,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
	}
}
