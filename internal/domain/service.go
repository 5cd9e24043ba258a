package domain

import (
	"context"
	"fmt"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain/deactivate"
	"backoffice/pkg/logger"
)

// Restriction is a named precondition that must hold before an entity may be
// deactivated. Check returns nil when deactivation is allowed, or an AppError
// describing why it is blocked.
//
// A soft-delete command may bypass individual restrictions by naming them in
// SkipRestrictions; hard deletes always enforce all of them.
type Restriction[T any] struct {
	Name  string
	Check func(ctx context.Context, entity T, cmd deactivate.Command) error
}

// AuditRecorder persists change history entries. Implemented by the postgres
// audit store; nil disables auditing.
type AuditRecorder interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action string, payload any) error
}

// EntityService provides business logic for catalog entities.
type EntityService[T entity.Validatable] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	audit     AuditRecorder
	hooks     *HookRegistry[T]

	restrictions []Restriction[T]

	// entityName for error messages and audit entries
	entityName string
}

// EntityServiceConfig configures the entity service.
type EntityServiceConfig[T entity.Validatable] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	Audit      AuditRecorder // optional
	EntityName string
}

// NewEntityService creates a new entity service.
func NewEntityService[T entity.Validatable](cfg EntityServiceConfig[T]) *EntityService[T] {
	return &EntityService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		audit:      cfg.Audit,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *EntityService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// RegisterRestriction adds a named deactivation restriction.
func (s *EntityService[T]) RegisterRestriction(name string, check func(ctx context.Context, entity T, cmd deactivate.Command) error) {
	s.restrictions = append(s.restrictions, Restriction[T]{Name: name, Check: check})
}

func (s *EntityService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *EntityService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but ensure not-found is mapped to the correct entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

func (s *EntityService[T]) recordAudit(ctx context.Context, entityID id.ID, action string, payload any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, s.entityName, entityID, action, payload); err != nil {
		logger.Warn(ctx, "audit record failed",
			"entity", s.entityName, "id", entityID.String(), "action", action, "error", err)
	}
}

// Create creates a new catalog entity.
func (s *EntityService[T]) Create(ctx context.Context, ent T) error {
	// 1. Validate entity invariants
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	// 2. Run before-create hooks
	if err := s.hooks.Run(ctx, BeforeCreate, ent); err != nil {
		return err
	}

	// 3. Create in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, ent); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Run after-create hooks (outside transaction)
	if err := s.hooks.Run(ctx, AfterCreate, ent); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// GetByID retrieves entity by ID.
func (s *EntityService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return ent, s.normalizeGetErr(err, entityID.String())
	}
	return ent, nil
}

// GetByCode retrieves entity by code.
func (s *EntityService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	ent, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return ent, s.normalizeGetErr(err, code)
	}
	return ent, nil
}

// Update updates an existing entity.
func (s *EntityService[T]) Update(ctx context.Context, ent T) error {
	// 1. Validate entity invariants
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	// 2. Run before-update hooks
	if err := s.hooks.Run(ctx, BeforeUpdate, ent); err != nil {
		return err
	}

	// 3. Update in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, ent); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Run after-update hooks
	if err := s.hooks.Run(ctx, AfterUpdate, ent); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// checkRestrictions runs every registered restriction against the entity,
// honoring the command's skip list.
func (s *EntityService[T]) checkRestrictions(ctx context.Context, ent T, cmd deactivate.Command) error {
	for _, r := range s.restrictions {
		if cmd.Skips(r.Name) {
			logger.Info(ctx, "deactivation restriction skipped",
				"entity", s.entityName, "restriction", r.Name)
			continue
		}
		if err := r.Check(ctx, ent, cmd); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return apperror.NewRestriction(r.Name, err.Error())
		}
	}
	return nil
}

// Deactivate executes a deactivation command: soft delete with optional
// one-hop cascade, or hard delete. Returns the resulting entity state
// (for hard deletes, the last persisted state before removal).
func (s *EntityService[T]) Deactivate(ctx context.Context, cmd deactivate.Command) (T, error) {
	var zero T

	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return zero, err
	}

	// 1. Load current state (for restrictions and hooks)
	ent, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return zero, s.normalizeGetErr(err, cmd.ID.String())
	}

	// 2. Enforce restrictions (hard deletes never skip any)
	if err := s.checkRestrictions(ctx, ent, cmd); err != nil {
		return zero, err
	}

	// 3. Run before-deactivate hooks
	if err := s.hooks.Run(ctx, BeforeDeactivate, ent); err != nil {
		return zero, err
	}

	// 4. Execute in one transaction so partial cascades are never visible
	var result T
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		updated, err := s.repo.ToggleIsActive(ctx, cmd)
		if err != nil {
			return fmt.Errorf("deactivate %s: %w", s.entityName, err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return zero, err
	}

	// 5. Run after-deactivate hooks and record audit
	if err := s.hooks.Run(ctx, AfterDeactivate, result); err != nil {
		logger.Warn(ctx, "after-deactivate hook failed", "entity", s.entityName, "error", err)
	}
	s.recordAudit(ctx, cmd.ID, string(cmd.Strategy)+"_delete", map[string]any{
		"strategy": string(cmd.Strategy),
		"cascade":  cmd.Cascade.Relations,
		"skipped":  cmd.SkipRestrictions,
	})

	return result, nil
}

// Restore reverses a soft deactivation.
func (s *EntityService[T]) Restore(ctx context.Context, entityID id.ID) (T, error) {
	var result T
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		restored, err := s.repo.Restore(ctx, entityID)
		if err != nil {
			return err
		}
		result = restored
		return nil
	})
	if err != nil {
		var zero T
		return zero, s.normalizeGetErr(err, entityID.String())
	}

	if err := s.hooks.Run(ctx, AfterRestore, result); err != nil {
		logger.Warn(ctx, "after-restore hook failed", "entity", s.entityName, "error", err)
	}
	s.recordAudit(ctx, entityID, "restore", nil)

	return result, nil
}

// List retrieves entities with filtering.
func (s *EntityService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if entity exists.
func (s *EntityService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}
