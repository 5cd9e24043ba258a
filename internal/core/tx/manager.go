// Package tx defines the transaction contract domain services depend on.
// Keeping the interface here decouples business logic from pgx: the concrete
// implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs functions within database transactions.
type Manager interface {
	// RunInTransaction executes fn within a transaction: rollback when fn
	// returns an error, commit otherwise.
	//
	// Nested calls reuse the transaction already carried by the context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transactions, for query
// paths that must not take write locks.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction; writes fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
