package product

import (
	"context"
	"strings"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.EntityService for common CRUD operations.
type Service struct {
	*domain.EntityService[*Product] // Embedded for delegation
	repo                            Repository
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, audit domain.AuditRecorder) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Audit:      audit,
		EntityName: "product",
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
	}

	// Register hooks for entity-specific logic
	base.Hooks().OnBeforeCreate(svc.prepareForWrite)
	base.Hooks().OnBeforeUpdate(svc.prepareForWrite)

	return svc
}

// prepareForWrite handles code generation and SKU uniqueness checks.
func (s *Service) prepareForWrite(ctx context.Context, p *Product) error {
	// Generate code if not provided
	if p.Code == "" {
		p.Code = "PRD-" + strings.ToUpper(p.ID.String()[:8])
	}

	// Check SKU uniqueness
	if p.SKU != nil && *p.SKU != "" {
		existing, err := s.repo.FindBySKU(ctx, *p.SKU)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil
			}
			return err
		}
		if existing.ID != p.ID {
			return apperror.NewDuplicate("product", "sku", *p.SKU)
		}
	}

	return nil
}

// FindBySKU retrieves product by SKU.
func (s *Service) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.repo.FindBySKU(ctx, sku)
}

// GetForUpdate retrieves product with row lock.
func (s *Service) GetForUpdate(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetForUpdate(ctx, productID)
}
