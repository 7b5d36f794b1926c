package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// GetAllOrdersQueryHandler lists all orders with their items, in identity order.
type GetAllOrdersQueryHandler struct {
	repo AllOrdersReader
}

func NewGetAllOrdersQueryHandler(repo AllOrdersReader) *GetAllOrdersQueryHandler {
	return &GetAllOrdersQueryHandler{repo: repo}
}

// Handle returns an empty, non-nil slice when nothing is stored.
func (h *GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*order.Order{}
	}

	return orders, nil
}
