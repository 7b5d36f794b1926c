// Package orderrepo persists the order aggregate through the session of a
// unit of work, handling the conversion between domain entities and rows.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderDTO is a row of the "order" table.
type OrderDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Date        time.Time `gorm:"type:date;not null"`
	Description string    `gorm:"type:text"`
	Items       []ItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderDTO) TableName() string {
	return "order"
}

// ItemDTO is a row of the "order_item" table. OrderID is the foreign key
// column id_order.
type ItemDTO struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"type:text;not null"`
	Quantity int    `gorm:"not null"`
	OrderID  int64  `gorm:"column:id_order;not null;index"`
}

func (ItemDTO) TableName() string {
	return "order_item"
}

// orderFromDomain maps the order row only. Items are persisted one by one
// through SaveOrderItem.
func orderFromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID().Int64(),
		Date:        o.Date(),
		Description: o.Description(),
	}
}

func itemFromDomain(item *order.Item) ItemDTO {
	return ItemDTO{
		ID:       item.ID().Int64(),
		Name:     item.Name(),
		Quantity: item.Quantity(),
		OrderID:  item.OrderID().Int64(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := order.RestoreItem(
			kernel.ID(itemDTO.ID),
			kernel.ID(itemDTO.OrderID),
			itemDTO.Name,
			itemDTO.Quantity,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(kernel.ID(dto.ID), dto.Date, dto.Description, items)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
