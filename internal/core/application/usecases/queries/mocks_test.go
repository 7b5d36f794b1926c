package queries_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetLatest(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderCache struct{ mock.Mock }

func (m *MockOrderCache) Get(id kernel.ID) (*order.Order, bool) {
	args := m.Called(id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Bool(1)
}

func (m *MockOrderCache) Set(o *order.Order) {
	m.Called(o)
}

func restoreOrder(t *testing.T, id int64, description string) *order.Order {
	t.Helper()

	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	item, err := order.RestoreItem(kernel.ID(id*10), kernel.ID(id), "widget", 3)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.ID(id), date, description, []*order.Item{item})
	require.NoError(t, err)
	return o
}
