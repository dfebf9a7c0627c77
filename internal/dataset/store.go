// Package dataset persists and edits the reference tables used for ride
// classification: rolling-stock model definitions and line definitions.
package dataset

import (
	"context"
	"encoding/json"

	"subwaylog/pkg/domain"
)

// StorageKey is the fixed key the snapshot occupies in the injected store.
const StorageKey = "subwaylog.dataset"

// Store loads and saves the dataset snapshot through a key-value port.
// Storage failures never surface to callers: loads fall back to the seed
// dataset and saves are best-effort, so the current session keeps a usable
// in-memory snapshot even when the backing store is unavailable. The data is
// low-stakes user-editable reference tables, not the ride history of record.
type Store struct {
	kv domain.KeyValue
}

// NewStore constructs a dataset store backed by the provided key-value port.
func NewStore(kv domain.KeyValue) *Store {
	return &Store{kv: kv}
}

// Load reads the persisted snapshot. On absence, read failure, or a payload
// that fails to decode, it returns the seed dataset and persists it so
// subsequent loads are stable.
func (s *Store) Load(ctx context.Context) domain.Snapshot {
	data, ok, err := s.kv.Get(ctx, StorageKey)
	if err == nil && ok {
		if snap, decErr := domain.DecodeSnapshot(data); decErr == nil {
			return snap
		}
	}
	seed := Seed()
	s.Save(ctx, seed)
	return seed
}

// Save serializes the full snapshot and writes it under StorageKey, replacing
// any prior value whole. Write failures are swallowed.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	_ = s.kv.Set(ctx, StorageKey, data)
}

// Reseed discards the persisted snapshot and replaces it with the hard-coded
// defaults, returning the fresh seed.
func (s *Store) Reseed(ctx context.Context) domain.Snapshot {
	seed := Seed()
	s.Save(ctx, seed)
	return seed
}
