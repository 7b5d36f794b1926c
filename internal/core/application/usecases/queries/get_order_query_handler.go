package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// GetOrderQueryHandler loads a single order with its items.
//
// Orders never change after creation, so when a cache is configured a hit is
// served without touching storage and a miss fills the cache.
type GetOrderQueryHandler struct {
	repo  OrderReader
	cache ports.OrderCache
}

// NewGetOrderQueryHandler creates the handler. cache may be nil.
func NewGetOrderQueryHandler(repo OrderReader, cache ports.OrderCache) *GetOrderQueryHandler {
	return &GetOrderQueryHandler{
		repo:  repo,
		cache: cache,
	}
}

// Handle returns errs.ObjectNotFoundError when no order has the identity.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		if cached, ok := h.cache.Get(query.ID()); ok {
			return cached, nil
		}
	}

	found, err := h.repo.GetByID(ctx, query.ID())
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Set(found)
	}

	return found, nil
}
