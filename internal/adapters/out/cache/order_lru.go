// Package cache keeps recently read orders in memory.
package cache

import (
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	lru "github.com/hashicorp/golang-lru/v2"
)

var _ ports.OrderCache = (*OrderLRU)(nil)

// OrderLRU is a fixed size, concurrency safe LRU of orders keyed by identity.
// Orders are immutable once created, so entries never go stale.
type OrderLRU struct {
	cache *lru.Cache[kernel.ID, *order.Order]
}

func NewOrderLRU(size int) (*OrderLRU, error) {
	cache, err := lru.New[kernel.ID, *order.Order](size)
	if err != nil {
		return nil, err
	}
	return &OrderLRU{cache: cache}, nil
}

func (l *OrderLRU) Get(id kernel.ID) (*order.Order, bool) {
	return l.cache.Get(id)
}

// Set stores o under its identity. Orders without one are ignored.
func (l *OrderLRU) Set(o *order.Order) {
	if o == nil || !o.ID().IsAssigned() {
		return
	}
	l.cache.Add(o.ID(), o)
}

func (l *OrderLRU) Len() int {
	return l.cache.Len()
}
