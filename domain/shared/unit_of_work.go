package shared

import "context"

// UnitOfWork manages the transaction boundary and collects domain events from
// the aggregates touched inside it. Repositories called within fn share one
// database transaction through the context.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
}

// UnitOfWorkFactory creates a fresh unit of work per request. A UnitOfWork
// carries per-execution state (registered aggregates) and must not be shared
// across concurrent workflows.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events inside the business transaction.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
