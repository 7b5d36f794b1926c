package commands

import (
	"errors"
	"fmt"
	"math"
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemLine is one requested line of a new order.
type ItemLine struct {
	Name     string
	Quantity int
}

// CreateOrderCommand represents a request to record a new order together with
// its item lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(date, "test", []ItemLine{
//	    {Name: "widget", Quantity: 3},
//	    {Name: "gadget", Quantity: 0},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := Transactional(ctx, uow, func(ctx context.Context) (*order.Order, error) {
//	    return handler.Handle(ctx, cmd)
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	date        time.Time
	description string
	items       []ItemLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to record a new order.
// The date is required and every quantity must be non-negative; all violations
// are reported together.
func NewCreateOrderCommand(date time.Time, description string, items []ItemLine) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setDate(date),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Date() time.Time {
	return c.date
}

func (c CreateOrderCommand) Description() string {
	return c.description
}

// Items returns a copy of the item lines in request order.
func (c CreateOrderCommand) Items() []ItemLine {
	items := make([]ItemLine, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}

	c.date = date
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemLine) error {
	var violations []error
	for i, item := range items {
		if item.Quantity < 0 {
			violations = append(violations, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("items[%d].quantity", i), item.Quantity, 0, math.MaxInt32,
			))
		}
	}
	if len(violations) > 0 {
		return errors.Join(violations...)
	}

	c.items = make([]ItemLine, len(items))
	copy(c.items, items)
	return nil
}
