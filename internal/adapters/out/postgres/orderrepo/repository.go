package orderrepo

import (
	"context"

	"orders/internal/adapters/out/postgres"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

const itemsRelation = "Items"

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// sessionProvider yields the session the repository must use right now.
type sessionProvider interface {
	Manager() *postgres.Session
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(ctx context.Context, aggregate any)
}

// GormOrderRepository implements OrderRepository using GORM. It never keeps
// a session of its own: each call asks the unit of work for the current one.
type GormOrderRepository struct {
	sessions sessionProvider
	tracker  aggregateTracker
}

// NewGormOrderRepository creates a repository bound to a unit of work, which
// usually serves as both the session provider and the tracker.
func NewGormOrderRepository(sessions sessionProvider, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		sessions: sessions,
		tracker:  tracker,
	}
}

// GetAll retrieves every order with its items.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.sessions.Manager().Find(ctx, &dtos, postgres.FindOptions{
		Relations: []string{itemsRelation},
		Order:     "id",
	})
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetByID retrieves an order with its items.
func (r *GormOrderRepository) GetByID(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.sessions.Manager().FindOneOrFail(ctx, &dto, id.Int64(), itemsRelation); err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetLatest retrieves the newest orders, highest identity first.
func (r *GormOrderRepository) GetLatest(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	err := r.sessions.Manager().Find(ctx, &dtos, postgres.FindOptions{
		Relations: []string{itemsRelation},
		Order:     "id desc",
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// SaveOrder writes the order row and assigns the generated identity to the
// aggregate. Newly created orders are tracked for publishing.
func (r *GormOrderRepository) SaveOrder(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	isNew := !aggregate.ID().IsAssigned()

	dto := orderFromDomain(aggregate)
	if err := r.sessions.Manager().Save(ctx, &dto); err != nil {
		return nil, err
	}

	if isNew {
		if err := aggregate.AssignID(kernel.ID(dto.ID)); err != nil {
			return nil, err
		}
		r.tracker.TrackAggregate(ctx, aggregate)
	}

	return aggregate, nil
}

// SaveOrderItem writes one item row. The item must reference a persisted order.
func (r *GormOrderRepository) SaveOrderItem(ctx context.Context, item *order.Item) (*order.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := item.OrderID().Validate(); err != nil {
		return nil, err
	}

	dto := itemFromDomain(item)
	if err := r.sessions.Manager().Save(ctx, &dto); err != nil {
		return nil, err
	}

	if !item.ID().IsAssigned() {
		if err := item.AssignID(kernel.ID(dto.ID)); err != nil {
			return nil, err
		}
	}

	return item, nil
}
