// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/deactivate"
)

// --- Pagination ---

// PaginationRequest contains pagination parameters.
type PaginationRequest struct {
	Page     int `form:"page" binding:"min=1"`
	PageSize int `form:"pageSize" binding:"min=1,max=100"`
}

// Defaults sets default pagination values.
func (p *PaginationRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 20
	}
}

// Offset calculates SQL offset.
func (p *PaginationRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginationResponse creates pagination response.
func NewPaginationResponse(page, pageSize int, totalItems int64) PaginationResponse {
	totalPages := int(totalItems) / pageSize
	if int(totalItems)%pageSize > 0 {
		totalPages++
	}
	return PaginationResponse{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// GenericListResponse wraps list results with pagination (generic version).
type GenericListResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// --- Common Filters ---

// BaseFilter contains common filter parameters.
type BaseFilter struct {
	Search          string     `form:"search"`
	IDs             []string   `form:"ids"`
	IncludeInactive bool       `form:"includeInactive"`
	CreatedFrom     *time.Time `form:"createdFrom"`
	CreatedTo       *time.Time `form:"createdTo"`
}

// --- Base DTOs ---

// BaseResponse contains common response fields.
type BaseResponse struct {
	ID         string            `json:"id"`
	IsActive   bool              `json:"isActive"`
	Version    int               `json:"version"`
	Attributes entity.Attributes `json:"attributes,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	DeletedAt  *time.Time        `json:"deletedAt,omitempty"`
}

// FromBaseEntity creates BaseResponse from entity.BaseEntity.
func FromBaseEntity(b entity.BaseEntity) BaseResponse {
	return BaseResponse{
		ID:         b.ID.String(),
		IsActive:   b.IsActive,
		Version:    b.Version,
		Attributes: b.Attributes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
		DeletedAt:  b.DeletedAt,
	}
}

// --- Catalog DTOs ---

// CatalogResponse contains catalog fields.
type CatalogResponse struct {
	BaseResponse
	Code string `json:"code"`
	Name string `json:"name"`
}

// FromCatalog creates CatalogResponse from entity.Catalog.
func FromCatalog(c entity.Catalog) CatalogResponse {
	return CatalogResponse{
		BaseResponse: FromBaseEntity(c.BaseEntity),
		Code:         c.Code,
		Name:         c.Name,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Deactivation ---

// DeactivateRequest is the body of a deactivation call.
type DeactivateRequest struct {
	Strategy         string   `json:"strategy"`
	CascadeRelations []string `json:"cascadeRelations"`
	SkipRestrictions []string `json:"skipRestrictions"`
}

// ToCommand converts the request into a deactivation command for the entity.
func (r DeactivateRequest) ToCommand(entityID id.ID) deactivate.Command {
	return deactivate.Command{
		ID:               entityID,
		Strategy:         deactivate.Strategy(r.Strategy),
		Cascade:          deactivate.Cascade{Relations: r.CascadeRelations},
		SkipRestrictions: r.SkipRestrictions,
	}
}
