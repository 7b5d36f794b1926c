package ports

import (
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderCache keeps recently read orders in memory. Orders never change after
// creation, so cached entries need no invalidation.
type OrderCache interface {
	Get(id kernel.ID) (*order.Order, bool)
	Set(o *order.Order)
}
