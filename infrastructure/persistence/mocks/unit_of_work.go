package mocks

import (
	"context"
	"sync"

	"shop/domain/shared"
)

// TxParticipant is implemented by mock stores that can capture their state.
// Snapshot returns a closure that restores the captured state, which gives
// the mock unit of work real rollback semantics without a database.
type TxParticipant interface {
	Snapshot() func()
}

// txState is shared by every unit of work handed out by one factory: the
// mutex serializes executions so a rollback cannot restore over a commit
// that landed in between, and the event sink lets tests inspect the events
// of all executions through the factory instance.
type txState struct {
	mu          sync.Mutex
	savedEvents []shared.DomainEvent
}

// MockUnitOfWork simulates the transactional boundary: all writes inside
// Execute either survive together or are rolled back together. Executions
// across instances from the same factory are serialized.
type MockUnitOfWork struct {
	participants []TxParticipant
	state        *txState
	aggregates   []shared.AggregateRoot
}

// NewMockUnitOfWork creates a mock unit of work over the given stores. The
// returned instance is also the factory: New hands out fresh instances that
// share the stores and the event sink.
func NewMockUnitOfWork(participants ...TxParticipant) *MockUnitOfWork {
	return &MockUnitOfWork{
		participants: participants,
		state:        &txState{},
	}
}

// New implements shared.UnitOfWorkFactory. Registered aggregates are
// per-execution state, so every call returns a fresh instance.
func (u *MockUnitOfWork) New() shared.UnitOfWork {
	return &MockUnitOfWork{
		participants: u.participants,
		state:        u.state,
	}
}

// Execute snapshots the participating stores, runs the business logic and
// restores the snapshots if it fails. On success the events of registered
// aggregates are collected, standing in for the outbox write.
func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.state.mu.Lock()
	defer u.state.mu.Unlock()

	u.aggregates = u.aggregates[:0]

	restores := make([]func(), 0, len(u.participants))
	for _, p := range u.participants {
		restores = append(restores, p.Snapshot())
	}

	if err := fn(ctx); err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		return err
	}

	for _, agg := range u.aggregates {
		u.state.savedEvents = append(u.state.savedEvents, agg.PullEvents()...)
	}
	return nil
}

// RegisterNew registers a newly created aggregate root for event collection.
func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate root for event collection.
func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// SavedEvents returns the events collected by successful executions of every
// unit of work created from this factory.
func (u *MockUnitOfWork) SavedEvents() []shared.DomainEvent {
	u.state.mu.Lock()
	defer u.state.mu.Unlock()

	events := make([]shared.DomainEvent, len(u.state.savedEvents))
	copy(events, u.state.savedEvents)
	return events
}

var (
	_ shared.UnitOfWork        = (*MockUnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*MockUnitOfWork)(nil)
)
