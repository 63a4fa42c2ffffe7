package service

import (
	"context"

	"noticebase/internal/records/store"
)

// RecordsTx provides the transactional boundary for record mutations.
// Implementations commit when fn returns nil and roll back otherwise; no write
// made through the Store is visible unless the whole fn succeeds.
type RecordsTx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

// inMemoryTx runs transactions against a copy of the in-memory tables and
// publishes the copy only on success.
type inMemoryTx struct {
	store *store.InMemory
}

// NewInMemoryTx returns a RecordsTx over an in-memory store.
func NewInMemoryTx(s *store.InMemory) RecordsTx {
	return &inMemoryTx{store: s}
}

func (t *inMemoryTx) RunInTx(ctx context.Context, fn func(store Store) error) error {
	return t.store.Atomically(ctx, func(tx *store.MemoryTx) error {
		return fn(tx)
	})
}
