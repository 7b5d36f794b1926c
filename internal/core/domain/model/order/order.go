package order

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsNotPersisted is returned when items are requested for an order
	// that has not received its storage identity yet.
	ErrOrderIsNotPersisted = errors.New("order must be persisted before items can reference it")

	// ErrIdentityIsAlreadyAssigned is returned when storage identity is assigned twice.
	ErrIdentityIsAlreadyAssigned = errors.New("identity is already assigned")

	// ErrItemBelongsToAnotherOrder is returned when AddItem receives an item
	// whose back-reference names a different order.
	ErrItemBelongsToAnotherOrder = errors.New("item belongs to another order")
)

// Order is the aggregate root of the orders domain. It owns its Items
// exclusively: an Item is created through its Order and refers back to it by
// identity.
//
// Order follows these invariants:
//   - Date is always present and carries no time of day
//   - Identity is issued by storage exactly once
//   - Items can be created only after the order has an identity
//   - Every item's OrderID equals the order's identity
type Order struct {
	// id is zero until the repository persists the order
	id kernel.ID

	// date is the calendar date of the order, normalised to UTC midnight
	date time.Time

	description string

	items []*Item

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an unsaved Order with no items.
//
// Example:
//
//	o, err := order.NewOrder(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "test")
//	if err != nil {
//	    return err
//	}
//	o, err = repo.SaveOrder(ctx, o) // o.ID() is assigned from here on
//	item, err := o.NewItem("widget", 3)
func NewOrder(date time.Time, description string) (*Order, error) {
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("date")
	}

	return &Order{
		date:          normalizeDate(date),
		description:   description,
		items:         make([]*Item, 0),
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds a persisted Order, e.g. from a database row.
func RestoreOrder(id kernel.ID, date time.Time, description string, items []*Item) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(date, description)
	if err != nil {
		return nil, err
	}
	o.id = id

	for _, item := range items {
		if err = o.AddItem(item); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the storage identity, zero before the order is saved.
func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) Date() time.Time {
	return o.date
}

func (o *Order) Description() string {
	return o.description
}

// Items returns a copy of the item list in insertion order.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalQuantity sums the quantities of all items.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.quantity
	}
	return total
}

// AssignID stores the identity generated by storage on first insert.
func (o *Order) AssignID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if o.id.IsAssigned() {
		return ErrIdentityIsAlreadyAssigned
	}

	o.id = id
	return nil
}

// NewItem builds an Item referencing this order. The order must already be
// persisted, so the item carries a valid foreign key. The item is not added to
// the order until it has been saved; see AddItem.
func (o *Order) NewItem(name string, quantity int) (*Item, error) {
	if !o.id.IsAssigned() {
		return nil, ErrOrderIsNotPersisted
	}

	return newItem(o.id, name, quantity)
}

// AddItem appends a persisted item that belongs to this order.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := item.ID().Validate(); err != nil {
		return err
	}
	if item.OrderID() != o.id {
		return ErrItemBelongsToAnotherOrder
	}

	o.items = append(o.items, item)
	return nil
}

func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
