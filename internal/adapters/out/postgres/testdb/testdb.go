// Package testdb opens throwaway databases with the orders schema for tests.
package testdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"orders/db"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLite opens a file backed SQLite database in a temporary directory with
// foreign keys enforced, and migrates the order tables.
func SQLite(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "orders.db")
	gormDB, err := postgres.OpenDialector(
		sqlite.Open("file:"+path+"?_foreign_keys=on&_busy_timeout=5000"),
		zap.NewNop(),
	)
	require.NoError(tb, err)
	require.NoError(tb, gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))

	sqlDB, err := gormDB.DB()
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	return gormDB
}

// Postgres is a disposable PostgreSQL container with the orders schema applied.
type Postgres struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

func StartPostgres(ctx context.Context) (*Postgres, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	gormDB, err := postgres.OpenDialector(gormpostgres.Open(dsn), zap.NewNop())
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	for _, stmt := range db.Statements() {
		if err = gormDB.WithContext(ctx).Exec(stmt).Error; err != nil {
			_ = container.Terminate(ctx)
			return nil, err
		}
	}

	return &Postgres{Container: container, DB: gormDB, DSN: dsn}, nil
}

// Truncate removes all rows and resets identity sequences.
func (p *Postgres) Truncate(ctx context.Context) error {
	return p.DB.WithContext(ctx).
		Exec(`TRUNCATE TABLE order_item, "order" RESTART IDENTITY CASCADE`).Error
}

func (p *Postgres) Terminate(ctx context.Context) error {
	if sqlDB, err := p.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return p.Container.Terminate(ctx)
}
