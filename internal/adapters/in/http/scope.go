package http

import (
	"context"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"
)

// RequestScope bundles the handlers of one request. Every handler in a scope
// shares one unit of work, which Transactor controls.
type RequestScope struct {
	Transactor ports.Transactor

	CreateOrder  *commands.CreateOrderCommandHandler
	GetAllOrders *queries.GetAllOrdersQueryHandler
	GetOrder     *queries.GetOrderQueryHandler
}

// ScopeFactory builds a fresh RequestScope for every request. Scopes are never
// shared between requests.
type ScopeFactory interface {
	NewRequestScope() RequestScope
}

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
