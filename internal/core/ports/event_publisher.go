package ports

import "context"

// EventPublisher receives aggregates written by a unit of work after its
// transaction commits. Aggregates of unknown types are ignored.
type EventPublisher interface {
	Publish(ctx context.Context, aggregates []any) error
}
