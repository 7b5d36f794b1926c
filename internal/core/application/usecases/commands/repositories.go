// Package commands contains business operations that modify system state.
// Handlers work through the repositories of the caller's unit of work and never
// manage transactions themselves: the caller runs them inside
// ports.Transactor.DoTransactional, usually via Transactional.
package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// OrderSaver is the write side of ports.OrderRepository.
type OrderSaver interface {
	SaveOrder(ctx context.Context, aggregate *order.Order) (*order.Order, error)
	SaveOrderItem(ctx context.Context, item *order.Item) (*order.Item, error)
}
