package order

import (
	"errors"
	"math"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via Order.NewItem")

// Item is a line of an Order: a name and a non-negative quantity.
type Item struct {
	id            kernel.ID
	orderID       kernel.ID
	name          string
	quantity      int
	isConstructed bool
}

func newItem(orderID kernel.ID, name string, quantity int) (*Item, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt32)
	}

	return &Item{
		orderID:       orderID,
		name:          name,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// RestoreItem rebuilds a persisted Item from storage.
func RestoreItem(id, orderID kernel.ID, name string, quantity int) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	item, err := newItem(orderID, name, quantity)
	if err != nil {
		return nil, err
	}
	item.id = id

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.ID {
	return i.id
}

// OrderID is the identity of the owning order.
func (i *Item) OrderID() kernel.ID {
	return i.orderID
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Quantity() int {
	return i.quantity
}

// AssignID stores the identity generated by storage on first insert.
func (i *Item) AssignID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if i.id.IsAssigned() {
		return ErrIdentityIsAlreadyAssigned
	}

	i.id = id
	return nil
}
