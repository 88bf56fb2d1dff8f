package shared

// AggregateRoot is the entry point of an aggregate. It owns the consistency
// boundary: every modification goes through the root, and the root records the
// domain events those modifications produce.
type AggregateRoot interface {
	// ID returns the globally unique identifier of the aggregate
	ID() string

	// Version returns the optimistic-lock version
	Version() int

	// PullEvents returns and clears the recorded domain events.
	// The unit of work calls this inside the transaction to persist the
	// events to the outbox table.
	PullEvents() []DomainEvent
}

// Entity has identity; two entities with equal attributes but different IDs
// are different things.
type Entity interface {
	ID() string
}
