package audit

import (
	"context"
	"fmt"
	"sync"
)

// Store persists chain records. Append must retain insertion order so
// VerifyChain can walk the chain back out of storage.
type Store interface {
	Append(ctx context.Context, record *Record) error
	LastHash(ctx context.Context) (string, error)
}

// Recorder appends records to a Store while tracking the chain head. The
// mutex serializes appends so concurrent writers cannot fork the chain.
type Recorder struct {
	mu       sync.Mutex
	store    Store
	lastHash string
	loaded   bool
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record creates the next chain record and persists it. The chain head is
// loaded from the store on first use and cached afterwards.
func (r *Recorder) Record(ctx context.Context, action string, data map[string]any) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		hash, err := r.store.LastHash(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load audit chain head: %w", err)
		}
		r.lastHash = hash
		r.loaded = true
	}

	record, err := NewRecord(action, data, r.lastHash)
	if err != nil {
		return nil, err
	}
	if err := r.store.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist audit record: %w", err)
	}

	r.lastHash = record.Hash
	return record, nil
}
