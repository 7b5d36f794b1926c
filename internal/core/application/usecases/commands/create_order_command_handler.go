package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// CreateOrderCommandHandler records a new order and its items.
//
// The order row is written first so storage issues its identity; every item is
// then created against that identity and written in request order. The first
// failure stops the sequence and is returned unchanged, leaving the rollback
// to the surrounding transaction.
//
// Example:
//
//	uow := uowFactory.Create()
//	handler := NewCreateOrderCommandHandler(orderrepo.NewGormOrderRepository(uow, uow))
//
//	created, err := Transactional(ctx, uow, func(ctx context.Context) (*order.Order, error) {
//	    return handler.Handle(ctx, cmd)
//	})
type CreateOrderCommandHandler struct {
	repo OrderSaver
}

func NewCreateOrderCommandHandler(repo OrderSaver) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo: repo,
	}
}

// Handle writes the order and then its items, returning the order with
// identity and items populated.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(cmd.Date(), cmd.Description())
	if err != nil {
		return nil, err
	}

	aggregate, err = h.repo.SaveOrder(ctx, aggregate)
	if err != nil {
		return nil, err
	}

	for _, line := range cmd.Items() {
		item, err := aggregate.NewItem(line.Name, line.Quantity)
		if err != nil {
			return nil, err
		}

		item, err = h.repo.SaveOrderItem(ctx, item)
		if err != nil {
			return nil, err
		}

		if err = aggregate.AddItem(item); err != nil {
			return nil, err
		}
	}

	return aggregate, nil
}
