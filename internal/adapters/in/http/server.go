// Package http exposes the order operations over HTTP.
package http

import (
	"context"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// Each request gets its own RequestScope, so no state is shared between
// concurrent requests.
type Server struct {
	scopes ScopeFactory
	health HealthChecker
	logger *zap.Logger
}

// NewServer creates a new HTTP server on top of the given scope factory.
func NewServer(scopes ScopeFactory, health HealthChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		scopes: scopes,
		health: health,
		logger: logger,
	}
}

// GetOrders handles GET /v1/order - retrieves all orders with their items.
func (s *Server) GetOrders(ctx echo.Context) error {
	scope := s.scopes.NewRequestScope()

	orders, err := scope.GetAllOrders.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderListResponse(orders))
}

// GetOrder handles GET /v1/order/{id} - retrieves one order with its items.
func (s *Server) GetOrder(ctx echo.Context, id int64) error {
	orderID, err := kernel.NewID(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	scope := s.scopes.NewRequestScope()
	found, err := scope.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(found))
}

// CreateOrder handles POST /v1/order - creates an order and its items in a
// single transaction.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := newCreateOrderCommand(body)
	if err != nil {
		return s.writeError(ctx, err)
	}

	scope := s.scopes.NewRequestScope()
	created, err := commands.Transactional(ctx.Request().Context(), scope.Transactor,
		func(txCtx context.Context) (*order.Order, error) {
			return scope.CreateOrder.Handle(txCtx, cmd)
		},
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	s.logger.Info("order created",
		zap.Int64("order_id", created.ID().Int64()),
		zap.Int("items", len(created.Items())),
	)

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetHealth handles GET /health - reports whether the database answers.
func (s *Server) GetHealth(ctx echo.Context) error {
	if err := s.health.Ping(ctx.Request().Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		return ctx.String(http.StatusServiceUnavailable, "Unhealthy")
	}

	return ctx.String(http.StatusOK, "Healthy")
}
