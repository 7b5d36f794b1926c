package ports

import (
	"context"
)

// Transactor runs a block of work atomically.
type Transactor interface {
	// DoTransactional begins a transaction, makes it the current session for
	// every collaborator bound to this unit of work and runs fn. It commits when
	// fn returns nil and rolls back otherwise, returning fn's error unchanged.
	// Calling it again from inside fn fails with errs.ErrNestedTransaction.
	DoTransactional(ctx context.Context, fn func(ctx context.Context) error) error
}

// UnitOfWork represents a business transaction boundary. One instance serves
// exactly one request and must not be shared between goroutines.
type UnitOfWork interface {
	Transactor

	// Begin starts a new database transaction.
	// Returns errs.ErrNestedTransaction if one is already active.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error
}
