package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/testdb"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

// recordingPublisher remembers every batch handed to Publish.
type recordingPublisher struct {
	mu      sync.Mutex
	batches [][]any
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, aggregates []any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, aggregates)
	return p.err
}

// UnitOfWorkTestSuite exercises transaction scoping and session propagation
// against SQLite, so it runs without Docker.
type UnitOfWorkTestSuite struct {
	suite.Suite
	db        *gorm.DB
	publisher *recordingPublisher
	logs      *observer.ObservedLogs
	uow       *postgres.GormUnitOfWork
	repo      *orderrepo.GormOrderRepository
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	suite.db = testdb.SQLite(suite.T())
	suite.publisher = &recordingPublisher{}

	core, logs := observer.New(zapcore.DebugLevel)
	suite.logs = logs

	factory := postgres.NewGormUnitOfWorkFactory(suite.db,
		postgres.WithEventPublisher(suite.publisher),
		postgres.WithLogger(zap.New(core)),
	)
	suite.uow = factory.Create()
	suite.repo = orderrepo.NewGormOrderRepository(suite.uow, suite.uow)
}

func (suite *UnitOfWorkTestSuite) TestManager_OutsideTransaction_ReturnsAmbientSession() {
	suite.False(suite.uow.InTransaction())
	suite.Same(suite.uow.Manager(), suite.uow.Manager())
}

func (suite *UnitOfWorkTestSuite) TestDoTransactional_ManagerIsStableInsideTransaction() {
	ambient := suite.uow.Manager()

	var first, second *postgres.Session
	err := suite.uow.DoTransactional(context.Background(), func(ctx context.Context) error {
		suite.True(suite.uow.InTransaction())
		first = suite.uow.Manager()
		if _, err := suite.repo.SaveOrder(ctx, suite.newOrder("test")); err != nil {
			return err
		}
		second = suite.uow.Manager()
		return nil
	})
	suite.Require().NoError(err)

	suite.Same(first, second)
	suite.NotSame(ambient, first)
	suite.Same(ambient, suite.uow.Manager())
	suite.False(suite.uow.InTransaction())
}

func (suite *UnitOfWorkTestSuite) TestDoTransactional_Commit_PersistsEveryWrite() {
	err := suite.uow.DoTransactional(context.Background(), func(ctx context.Context) error {
		return suite.saveOrderWithItems(ctx, "widget", "gadget")
	})
	suite.Require().NoError(err)

	suite.assertRowCounts(1, 2)
}

func (suite *UnitOfWorkTestSuite) TestDoTransactional_FnError_RollsBackAndReturnsErrorUnchanged() {
	failure := errors.New("second item failed")

	err := suite.uow.DoTransactional(context.Background(), func(ctx context.Context) error {
		if err := suite.saveOrderWithItems(ctx, "widget"); err != nil {
			return err
		}
		return failure
	})

	suite.Same(failure, err)
	suite.False(suite.uow.InTransaction())
	suite.assertRowCounts(0, 0)
}

func (suite *UnitOfWorkTestSuite) TestDoTransactional_Panic_RollsBackAndRepanics() {
	suite.PanicsWithValue("boom", func() {
		_ = suite.uow.DoTransactional(context.Background(), func(ctx context.Context) error {
			if err := suite.saveOrderWithItems(ctx, "widget"); err != nil {
				return err
			}
			panic("boom")
		})
	})

	suite.False(suite.uow.InTransaction())
	suite.assertRowCounts(0, 0)

	// The unit of work stays usable.
	err := suite.uow.DoTransactional(context.Background(), func(ctx context.Context) error {
		return suite.saveOrderWithItems(ctx)
	})
	suite.Require().NoError(err)
	suite.assertRowCounts(1, 0)
}

func (suite *UnitOfWorkTestSuite) TestDoTransactional_Nested_IsRejected() {
	err := suite.uow.DoTransactional(context.Background(), func(ctx context.Context) error {
		outer := suite.uow.Manager()

		nestedErr := suite.uow.DoTransactional(ctx, func(context.Context) error {
			suite.Fail("nested block must not run")
			return nil
		})
		suite.Require().ErrorIs(nestedErr, errs.ErrNestedTransaction)
		suite.Same(outer, suite.uow.Manager())

		return suite.saveOrderWithItems(ctx, "widget")
	})
	suite.Require().NoError(err)

	suite.assertRowCounts(1, 1)
}

func (suite *UnitOfWorkTestSuite) TestExplicitLifecycle() {
	ctx := context.Background()

	suite.Require().ErrorIs(suite.uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(suite.uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(suite.uow.Begin(ctx))
	suite.Require().ErrorIs(suite.uow.Begin(ctx), errs.ErrNestedTransaction)
	suite.Require().NoError(suite.saveOrderWithItems(ctx, "widget"))
	suite.Require().NoError(suite.uow.Rollback(ctx))
	suite.assertRowCounts(0, 0)

	suite.Require().NoError(suite.uow.Begin(ctx))
	suite.Require().NoError(suite.saveOrderWithItems(ctx, "widget"))
	suite.Require().NoError(suite.uow.Commit(ctx))
	suite.assertRowCounts(1, 1)
}

func (suite *UnitOfWorkTestSuite) TestBegin_ClosedDatabase_ReturnsTransactionFailed() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())

	called := false
	err = suite.uow.DoTransactional(context.Background(), func(context.Context) error {
		called = true
		return nil
	})

	suite.False(called)
	suite.Require().ErrorIs(err, errs.ErrTransactionFailed)
	var txErr *errs.TransactionFailedError
	suite.Require().ErrorAs(err, &txErr)
	suite.Equal("begin", txErr.Operation)
}

func (suite *UnitOfWorkTestSuite) TestPublish_OnlyAfterCommit() {
	ctx := context.Background()

	var created *order.Order
	err := suite.uow.DoTransactional(ctx, func(ctx context.Context) error {
		created = suite.newOrder("committed")
		if _, err := suite.repo.SaveOrder(ctx, created); err != nil {
			return err
		}
		suite.Empty(suite.publisher.batches)
		return nil
	})
	suite.Require().NoError(err)

	suite.Require().Len(suite.publisher.batches, 1)
	suite.Equal([]any{created}, suite.publisher.batches[0])

	err = suite.uow.DoTransactional(ctx, func(ctx context.Context) error {
		if _, err := suite.repo.SaveOrder(ctx, suite.newOrder("discarded")); err != nil {
			return err
		}
		return errors.New("abort")
	})
	suite.Require().Error(err)
	suite.Len(suite.publisher.batches, 1)
}

func (suite *UnitOfWorkTestSuite) TestTrackAggregate_OutsideTransaction_PublishesImmediately() {
	created, err := suite.repo.SaveOrder(context.Background(), suite.newOrder("auto-commit"))
	suite.Require().NoError(err)

	suite.Require().Len(suite.publisher.batches, 1)
	suite.Equal([]any{created}, suite.publisher.batches[0])
}

func (suite *UnitOfWorkTestSuite) TestPublishError_IsLoggedNotReturned() {
	suite.publisher.err = errors.New("broker unavailable")

	err := suite.uow.DoTransactional(context.Background(), func(ctx context.Context) error {
		return suite.saveOrderWithItems(ctx)
	})
	suite.Require().NoError(err)

	suite.assertRowCounts(1, 0)
	entries := suite.logs.FilterMessage("publish committed aggregates").All()
	suite.Require().Len(entries, 1)
	suite.Equal(zapcore.ErrorLevel, entries[0].Level)
}

func (suite *UnitOfWorkTestSuite) TestFactory_CreatesIndependentUnits() {
	other := postgres.NewGormUnitOfWorkFactory(suite.db).Create()

	suite.Require().NoError(suite.uow.Begin(context.Background()))
	defer func() { _ = suite.uow.Rollback(context.Background()) }()

	suite.True(suite.uow.InTransaction())
	suite.False(other.InTransaction())
	suite.NotSame(suite.uow.Manager(), other.Manager())
}

func (suite *UnitOfWorkTestSuite) TestDoTransactional_RecordsSpan() {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	uow := postgres.NewGormUnitOfWorkFactory(suite.db).Create()
	_ = uow.DoTransactional(context.Background(), func(context.Context) error { return nil })
	_ = uow.DoTransactional(context.Background(), func(context.Context) error { return errors.New("abort") })

	spans := recorder.Ended()
	suite.Require().Len(spans, 2)
	suite.Equal("uow.transaction", spans[0].Name())
	suite.Equal(codes.Unset, spans[0].Status().Code)
	suite.Equal(codes.Error, spans[1].Status().Code)
	suite.Equal("abort", spans[1].Status().Description)
}

func (suite *UnitOfWorkTestSuite) newOrder(description string) *order.Order {
	o, err := order.NewOrder(orderDate, description)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkTestSuite) saveOrderWithItems(ctx context.Context, names ...string) error {
	o, err := suite.repo.SaveOrder(ctx, suite.newOrder("test"))
	if err != nil {
		return err
	}
	for _, name := range names {
		item, err := o.NewItem(name, 1)
		if err != nil {
			return err
		}
		if _, err = suite.repo.SaveOrderItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (suite *UnitOfWorkTestSuite) assertRowCounts(orders, items int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(orders, count, "order rows")
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&count).Error)
	suite.Equal(items, count, "item rows")
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
