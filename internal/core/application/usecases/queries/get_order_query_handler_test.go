package queries_test

import (
	"testing"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGetOrderQuery(t *testing.T, id int64) queries.GetOrderQuery {
	t.Helper()
	query, err := queries.NewGetOrderQuery(kernel.ID(id))
	require.NoError(t, err)
	return query
}

func TestGetOrderQueryHandler_Handle_WithoutCache(t *testing.T) {
	ctx := t.Context()
	stored := restoreOrder(t, 1, "test")

	repo := new(MockOrderRepository)
	repo.On("GetByID", ctx, kernel.ID(1)).Return(stored, nil).Once()

	h := queries.NewGetOrderQueryHandler(repo, nil)
	found, err := h.Handle(ctx, newGetOrderQuery(t, 1))
	require.NoError(t, err)

	assert.Same(t, stored, found)
	assert.Len(t, found.Items(), 1)
	repo.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	notFound := errs.NewObjectNotFoundError("order", int64(99))

	repo := new(MockOrderRepository)
	repo.On("GetByID", ctx, kernel.ID(99)).Return(nil, notFound).Once()
	cache := new(MockOrderCache)
	cache.On("Get", kernel.ID(99)).Return(nil, false).Once()

	h := queries.NewGetOrderQueryHandler(repo, cache)
	found, err := h.Handle(ctx, newGetOrderQuery(t, 99))

	assert.Nil(t, found)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	cache.AssertNotCalled(t, "Set", mock.Anything)
	repo.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_CacheHit(t *testing.T) {
	cached := restoreOrder(t, 1, "cached")

	repo := new(MockOrderRepository)
	cache := new(MockOrderCache)
	cache.On("Get", kernel.ID(1)).Return(cached, true).Once()

	h := queries.NewGetOrderQueryHandler(repo, cache)
	found, err := h.Handle(t.Context(), newGetOrderQuery(t, 1))
	require.NoError(t, err)

	assert.Same(t, cached, found)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_CacheMissFillsCache(t *testing.T) {
	ctx := t.Context()
	stored := restoreOrder(t, 2, "stored")

	repo := new(MockOrderRepository)
	cache := new(MockOrderCache)
	mock.InOrder(
		cache.On("Get", kernel.ID(2)).Return(nil, false).Once(),
		repo.On("GetByID", ctx, kernel.ID(2)).Return(stored, nil).Once(),
		cache.On("Set", stored).Once(),
	)

	h := queries.NewGetOrderQueryHandler(repo, cache)
	found, err := h.Handle(ctx, newGetOrderQuery(t, 2))
	require.NoError(t, err)

	assert.Same(t, stored, found)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_NotConstructed(t *testing.T) {
	repo := new(MockOrderRepository)
	h := queries.NewGetOrderQueryHandler(repo, nil)

	_, err := h.Handle(t.Context(), queries.GetOrderQuery{})
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
