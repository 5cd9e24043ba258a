// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/deactivate"
	"backoffice/internal/domain/filter"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search performs full-text search on searchable fields
	Search string

	// IDs filters by specific IDs
	IDs []id.ID

	// IncludeInactive includes soft-deactivated records
	IncludeInactive bool

	// AdvancedFilters is a list of arbitrary field conditions
	AdvancedFilters []filter.Item

	// OrderBy specifies sorting (e.g., "name", "-created_at")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "name",
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Repository Interfaces ---

// CatalogRepository defines CRUD operations for catalog entities.
type CatalogRepository[T entity.Validatable] interface {
	// Create inserts a new entity
	Create(ctx context.Context, entity T) error

	// GetByID retrieves entity by ID
	GetByID(ctx context.Context, id id.ID) (T, error)

	// GetByCode retrieves entity by code
	GetByCode(ctx context.Context, code string) (T, error)

	// Update modifies existing entity (with optimistic locking)
	Update(ctx context.Context, entity T) error

	// ToggleIsActive executes a deactivation command and returns the
	// resulting entity state.
	//
	// Soft strategy: sets is_active=false and stamps deleted_at, cascading
	// one hop into each relation the command names. Re-applying to an
	// already inactive entity is a no-op. Hard strategy: physically deletes
	// the row and returns its last persisted state; a foreign-key violation
	// from non-cascaded relations surfaces as a Conflict error.
	ToggleIsActive(ctx context.Context, cmd deactivate.Command) (T, error)

	// Restore reverses a soft deactivation (is_active=true, deleted_at cleared).
	Restore(ctx context.Context, id id.ID) (T, error)

	// List retrieves entities with filtering and pagination
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)

	// Exists checks if entity with given ID exists
	Exists(ctx context.Context, id id.ID) (bool, error)

	// ExistsByCode checks if entity with given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate     HookEvent = "before_create"
	AfterCreate      HookEvent = "after_create"
	BeforeUpdate     HookEvent = "before_update"
	AfterUpdate      HookEvent = "after_update"
	BeforeDeactivate HookEvent = "before_deactivate"
	AfterDeactivate  HookEvent = "after_deactivate"
	AfterRestore     HookEvent = "after_restore"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
// Uses event-based approach for cleaner code.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// Convenience methods

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.On(BeforeCreate, hook)
}

// OnAfterCreate registers a hook to run after create.
func (r *HookRegistry[T]) OnAfterCreate(hook Hook[T]) {
	r.On(AfterCreate, hook)
}

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) {
	r.On(BeforeUpdate, hook)
}

// OnAfterUpdate registers a hook to run after update.
func (r *HookRegistry[T]) OnAfterUpdate(hook Hook[T]) {
	r.On(AfterUpdate, hook)
}

// OnBeforeDeactivate registers a hook to run before deactivation.
func (r *HookRegistry[T]) OnBeforeDeactivate(hook Hook[T]) {
	r.On(BeforeDeactivate, hook)
}

// OnAfterDeactivate registers a hook to run after deactivation.
func (r *HookRegistry[T]) OnAfterDeactivate(hook Hook[T]) {
	r.On(AfterDeactivate, hook)
}
