package queries

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrGetLatestOrdersQueryIsNotConstructed = errors.New(
	"GetLatestOrdersQuery must be created via NewGetLatestOrdersQuery constructor",
)

// GetLatestOrdersQuery retrieves up to Limit of the most recently created
// orders. It feeds the cache warm-up job.
type GetLatestOrdersQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

func NewGetLatestOrdersQuery(limit int) (GetLatestOrdersQuery, error) {
	query := GetLatestOrdersQuery{guard: guard.NewConstructorGuard()}
	if err := query.setLimit(limit); err != nil {
		return GetLatestOrdersQuery{}, err
	}
	return query, nil
}

func (q GetLatestOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetLatestOrdersQueryIsNotConstructed)
}

func (q GetLatestOrdersQuery) Limit() int {
	return q.limit
}

func (q *GetLatestOrdersQuery) setLimit(limit int) error {
	if limit <= 0 {
		return errs.NewValueIsInvalidError("limit")
	}

	q.limit = limit
	return nil
}
