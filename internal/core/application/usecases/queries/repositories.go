package queries

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

type (
	// AllOrdersReader lists every order.
	AllOrdersReader interface {
		GetAll(ctx context.Context) ([]*order.Order, error)
	}

	// OrderReader loads one order by identity.
	OrderReader interface {
		GetByID(ctx context.Context, id kernel.ID) (*order.Order, error)
	}

	// LatestOrdersReader lists the newest orders.
	LatestOrdersReader interface {
		GetLatest(ctx context.Context, limit int) ([]*order.Order, error)
	}
)
