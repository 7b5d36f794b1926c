package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Transactional runs fn inside one transaction of tx and returns fn's result.
// When the transaction fails the result is dropped and the error is returned
// as is.
//
// Example:
//
//	created, err := commands.Transactional(ctx, uow, func(ctx context.Context) (*order.Order, error) {
//	    return handler.Handle(ctx, cmd)
//	})
func Transactional[T any](
	ctx context.Context,
	tx ports.Transactor,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var result T
	err := tx.DoTransactional(ctx, func(ctx context.Context) error {
		var fnErr error
		result, fnErr = fn(ctx)
		return fnErr
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
