// Package kafka publishes domain events of committed orders.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	eventTypeHeader  = "event_type"
	eventIDHeader    = "event_id"
	orderCreatedType = "OrderCreated"
	dateLayout       = "2006-01-02"
)

var _ ports.EventPublisher = (*OrderEventPublisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderCreatedEvent is the JSON value written for every newly committed order.
type OrderCreatedEvent struct {
	EventID     string           `json:"event_id"`
	OrderID     int64            `json:"order_id"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Items       []OrderItemEvent `json:"items"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

type OrderItemEvent struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderEventPublisher writes an OrderCreated message per committed order,
// keyed by order identity so events of one order share a partition.
type OrderEventPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
	now    func() time.Time
}

func NewOrderEventPublisher(brokers []string, topic string, logger *zap.Logger) *OrderEventPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newOrderEventPublisher(writer, topic, logger)
}

func newOrderEventPublisher(writer messageWriter, topic string, logger *zap.Logger) *OrderEventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderEventPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
		now:    time.Now,
	}
}

// Publish writes one message per *order.Order in aggregates and skips
// everything else.
func (p *OrderEventPublisher) Publish(ctx context.Context, aggregates []any) error {
	msgs := make([]kafka.Message, 0, len(aggregates))
	for _, aggregate := range aggregates {
		o, ok := aggregate.(*order.Order)
		if !ok {
			p.logger.Debug("skipping aggregate without event mapping", zap.Any("aggregate", aggregate))
			continue
		}

		msg, err := p.orderCreatedMessage(o)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if len(msgs) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}

	p.logger.Debug("order events published", zap.String("topic", p.topic), zap.Int("count", len(msgs)))
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func (p *OrderEventPublisher) orderCreatedMessage(o *order.Order) (kafka.Message, error) {
	now := p.now().UTC()
	event := OrderCreatedEvent{
		EventID:     uuid.NewString(),
		OrderID:     o.ID().Int64(),
		Date:        o.Date().Format(dateLayout),
		Description: o.Description(),
		Items:       make([]OrderItemEvent, 0, len(o.Items())),
		OccurredAt:  now,
	}
	for _, item := range o.Items() {
		event.Items = append(event.Items, OrderItemEvent{
			ID:       item.ID().Int64(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
		})
	}

	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(orderCreatedType)},
			{Key: eventIDHeader, Value: []byte(event.EventID)},
		},
		Time: now,
	}, nil
}
