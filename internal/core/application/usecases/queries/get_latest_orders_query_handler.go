package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// GetLatestOrdersQueryHandler lists the newest orders, highest identity first.
type GetLatestOrdersQueryHandler struct {
	repo LatestOrdersReader
}

func NewGetLatestOrdersQueryHandler(repo LatestOrdersReader) *GetLatestOrdersQueryHandler {
	return &GetLatestOrdersQueryHandler{repo: repo}
}

func (h *GetLatestOrdersQueryHandler) Handle(ctx context.Context, query GetLatestOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.GetLatest(ctx, query.Limit())
}
