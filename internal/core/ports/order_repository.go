// Package ports defines the contracts between the application core and its
// adapters. The core depends only on these interfaces; adapters implement them.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations run every call on the current session of the unit of work
// they were built with, so writes made inside DoTransactional share one
// transaction.
type OrderRepository interface {
	// GetAll returns every order with its items eagerly loaded, ordered by identity.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetByID returns one order with its items.
	// Fails with errs.ErrObjectNotFound when no order has this identity.
	GetByID(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetLatest returns up to limit orders, newest identity first.
	GetLatest(ctx context.Context, limit int) ([]*order.Order, error)

	// SaveOrder inserts or updates the order row only (never its items) and
	// returns the order with its identity populated.
	SaveOrder(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// SaveOrderItem inserts or updates one item row and returns it with its
	// identity populated. The item must reference a persisted order.
	SaveOrderItem(ctx context.Context, item *order.Item) (*order.Item, error)
}
