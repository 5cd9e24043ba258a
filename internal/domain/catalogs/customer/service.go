package customer

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
	"backoffice/internal/domain/deactivate"
)

// RestrictionActiveContacts blocks deactivation while the customer still has
// active contacts, unless the command cascades into them.
const RestrictionActiveContacts = "active_contacts"

// Service provides business logic for the Customer catalog.
// Uses composition with domain.EntityService for common CRUD operations.
type Service struct {
	*domain.EntityService[*Customer] // Embedded for delegation
	repo                             Repository
	txManager                        tx.Manager
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, audit domain.AuditRecorder) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		Audit:      audit,
		EntityName: "customer",
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		txManager:     txManager,
	}

	// Register hooks for entity-specific logic
	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	base.RegisterRestriction(RestrictionActiveContacts, svc.checkActiveContacts)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks before create.
func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	// Generate code if not provided
	if c.Code == "" {
		c.Code = "CUST-" + strings.ToUpper(c.ID.String()[:8])
	}

	// Check tax id uniqueness
	if c.TaxID != nil && *c.TaxID != "" {
		exists, err := s.checkTaxIDExists(ctx, *c.TaxID, c.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConflict("customer with this tax id already exists").
				WithDetail("taxId", c.TaxID)
		}
	}

	return nil
}

// prepareForUpdate handles uniqueness checks before update.
func (s *Service) prepareForUpdate(ctx context.Context, c *Customer) error {
	// Check tax id uniqueness (exclude current record)
	if c.TaxID != nil && *c.TaxID != "" {
		exists, err := s.checkTaxIDExists(ctx, *c.TaxID, c.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConflict("customer with this tax id already exists").
				WithDetail("taxId", c.TaxID)
		}
	}

	return nil
}

// checkActiveContacts blocks deactivation when active contacts remain and the
// command does not cascade into them.
func (s *Service) checkActiveContacts(ctx context.Context, c *Customer, cmd deactivate.Command) error {
	for _, rel := range cmd.Cascade.Relations {
		if rel == RelationContacts {
			return nil // contacts are deactivated together with the customer
		}
	}

	count, err := s.repo.CountActiveContacts(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("count contacts: %w", err)
	}
	if count > 0 {
		return apperror.NewRestriction(RestrictionActiveContacts, "customer has active contacts").
			WithDetail("count", count)
	}
	return nil
}

// --- Entity-specific methods (not in base EntityService) ---

// FindByTaxID retrieves customer by tax id.
func (s *Service) FindByTaxID(ctx context.Context, taxID string) (*Customer, error) {
	return s.repo.FindByTaxID(ctx, taxID)
}

// ListContacts returns the customer's contacts.
func (s *Service) ListContacts(ctx context.Context, customerID id.ID, includeInactive bool) ([]Contact, error) {
	if _, err := s.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListContacts(ctx, customerID, includeInactive)
}

// AddContact validates and persists a new contact for the customer.
func (s *Service) AddContact(ctx context.Context, contact *Contact) error {
	if err := contact.Validate(ctx); err != nil {
		return err
	}
	cust, err := s.GetByID(ctx, contact.CustomerID)
	if err != nil {
		return err
	}
	if !cust.IsActive {
		return apperror.NewConflict("cannot add contact to inactive customer").
			WithDetail("customerId", cust.ID.String())
	}
	return s.repo.CreateContact(ctx, contact)
}

// ImportContacts validates and bulk-inserts contacts for the customer.
// All contacts are written in one transaction over the COPY protocol;
// a single invalid contact fails the whole import.
func (s *Service) ImportContacts(ctx context.Context, customerID id.ID, contacts []Contact) (int64, error) {
	cust, err := s.GetByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if !cust.IsActive {
		return 0, apperror.NewConflict("cannot import contacts into inactive customer").
			WithDetail("customerId", cust.ID.String())
	}

	for i := range contacts {
		contacts[i].CustomerID = customerID
		if err := contacts[i].Validate(ctx); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return 0, appErr.WithDetail("index", i)
			}
			return 0, err
		}
	}

	var inserted int64
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := s.repo.ImportContacts(ctx, contacts)
		if err != nil {
			return fmt.Errorf("import contacts: %w", err)
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// checkTaxIDExists checks if tax id is already used by another customer.
func (s *Service) checkTaxIDExists(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByTaxID(ctx, taxID)
	if err != nil {
		// Not found is OK; other errors must be propagated (DB errors, timeouts, etc.).
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	// If found and it's a different record
	return existing.ID != excludeID, nil
}
