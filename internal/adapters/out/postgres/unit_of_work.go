// Package postgres provides the GORM-based persistence session and Unit of Work.
// The Unit of Work maintains the session every repository of one request
// writes through, and coordinates committing or discarding those writes
// together.
//
// Key Features:
//   - One current Session shared by all repositories bound to the unit of work
//   - Scoped transactions through DoTransactional with commit on success,
//     rollback on error or panic
//   - Aggregate tracking with after-commit publishing
//   - Storage integrity failures classified as errs.ConstraintViolationError
//
// Usage Patterns:
//
// Scoped Transaction:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	repo := orderrepo.NewGormOrderRepository(uow, uow)
//
//	err := uow.DoTransactional(ctx, func(ctx context.Context) error {
//	    saved, err := repo.SaveOrder(ctx, o)
//	    if err != nil {
//	        return err // everything written so far is rolled back
//	    }
//	    item, err := saved.NewItem("widget", 3)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = repo.SaveOrderItem(ctx, item)
//	    return err
//	})
//
// Explicit Lifecycle:
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if _, err := repo.SaveOrder(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - A unit of work holds mutable session state and serves exactly one request
//   - Concurrent requests use separate instances from the same factory
//   - Transactions do not nest; starting one inside another fails with
//     errs.ErrNestedTransaction
package postgres

import (
	"context"
	"fmt"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tracerName = "orders/internal/adapters/out/postgres"

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each request gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// FactoryOption configures units of work produced by a factory.
type FactoryOption func(*GormUnitOfWorkFactory)

// WithEventPublisher hands tracked aggregates to publisher once their
// transaction has committed.
func WithEventPublisher(publisher ports.EventPublisher) FactoryOption {
	return func(f *GormUnitOfWorkFactory) {
		f.publisher = publisher
	}
}

func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *GormUnitOfWorkFactory) {
		f.logger = logger
	}
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
//
// Example:
//
//	db, err := postgres.Open(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db, WithLogger(logger))
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...FactoryOption) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// Create produces a new UnitOfWork whose current session is the auto-commit
// session of the factory's database.
func (f *GormUnitOfWorkFactory) Create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		ambient:   NewSession(f.db),
		publisher: f.publisher,
		logger:    f.logger,
		tracer:    otel.Tracer(tracerName),
	}
}

// GormUnitOfWork coordinates one request's database session and transaction.
// Repositories built with it ask Manager for the current session on every call,
// so they follow the unit of work into and out of transactions.
//
// The unit of work tracks aggregates created during the transaction and
// publishes them only after a successful commit.
type GormUnitOfWork struct {
	db      *gorm.DB
	ambient *Session

	tx        *gorm.DB
	txSession *Session

	trackedAggregates []any

	publisher ports.EventPublisher
	logger    *zap.Logger
	tracer    trace.Tracer
}

// Manager returns the current session: the transactional one while a
// transaction is active, the auto-commit one otherwise. Within one transaction
// every call returns the same instance.
func (uow *GormUnitOfWork) Manager() *Session {
	if uow.txSession != nil {
		return uow.txSession
	}
	return uow.ambient
}

// InTransaction reports whether a transaction is active.
func (uow *GormUnitOfWork) InTransaction() bool {
	return uow.tx != nil
}

// DoTransactional runs fn inside a new transaction. The transactional session
// is current for the whole call and the auto-commit session is restored
// afterwards. fn's error is returned unchanged after the rollback; a panic in
// fn rolls back and is re-raised.
//
// Example:
//
//	err := uow.DoTransactional(ctx, func(ctx context.Context) error {
//	    _, err := handler.Handle(ctx, cmd)
//	    return err
//	})
func (uow *GormUnitOfWork) DoTransactional(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, span := uow.tracer.Start(ctx, "uow.transaction")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			uow.rollbackAfterFailure(ctx, fmt.Errorf("panic: %v", r))
			panic(r)
		}
	}()

	if err = fn(ctx); err != nil {
		uow.rollbackAfterFailure(ctx, err)
		return err
	}

	span.SetAttributes(attribute.Int("uow.tracked_aggregates", len(uow.trackedAggregates)))
	return uow.Commit(ctx)
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations will execute within this transaction.
// Returns errs.ErrNestedTransaction if a transaction is already active.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return errs.ErrNestedTransaction
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewTransactionFailedErrorWithCause("begin", tx.Error)
	}

	uow.tx = tx
	uow.txSession = NewSession(tx)
	uow.trackedAggregates = nil
	return nil
}

// Commit finalizes all changes made within the current transaction and
// publishes the aggregates tracked during it.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active and
// errs.TransactionFailedError if the storage engine rejects the commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	committed := uow.trackedAggregates
	uow.release()

	if err != nil {
		return errs.NewTransactionFailedErrorWithCause("commit", err)
	}

	uow.publish(ctx, committed)
	return nil
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.release()
	return err
}

// TrackAggregate registers an aggregate created through this unit of work.
// Inside a transaction it is published after commit; outside one the write has
// already committed and it is published right away.
func (uow *GormUnitOfWork) TrackAggregate(ctx context.Context, aggregate any) {
	if uow.tx == nil {
		uow.publish(ctx, []any{aggregate})
		return
	}
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

func (uow *GormUnitOfWork) release() {
	uow.tx = nil
	uow.txSession = nil
	uow.trackedAggregates = nil
}

func (uow *GormUnitOfWork) rollbackAfterFailure(ctx context.Context, cause error) {
	if uow.tx == nil {
		return
	}
	if err := uow.Rollback(ctx); err != nil {
		uow.logger.Warn("rollback failed", zap.Error(err), zap.NamedError("cause", cause))
	}
}

func (uow *GormUnitOfWork) publish(ctx context.Context, aggregates []any) {
	if uow.publisher == nil || len(aggregates) == 0 {
		return
	}
	if err := uow.publisher.Publish(ctx, aggregates); err != nil {
		uow.logger.Error("publish committed aggregates",
			zap.Error(err), zap.Int("aggregates", len(aggregates)))
	}
}
