package queries

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order by its storage identity.
//
// Example:
//
//	query, err := NewGetOrderQuery(kernel.ID(1))
//	if err != nil {
//	    return err
//	}
//
//	o, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no order with that identity
//	}
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	id kernel.ID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery rejects identities storage could never have issued.
func NewGetOrderQuery(id kernel.ID) (GetOrderQuery, error) {
	query := GetOrderQuery{guard: guard.NewConstructorGuard()}
	if err := query.setID(id); err != nil {
		return GetOrderQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ID() kernel.ID {
	return q.id
}

func (q *GetOrderQuery) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	q.id = id
	return nil
}
