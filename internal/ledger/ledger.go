// Package ledger maintains the append-favored ride history persisted under a
// single storage key.
package ledger

import (
	"context"

	"subwaylog/pkg/domain"
)

// Ledger reads and writes the full ride sequence against a key-value port.
// Every mutation is a terminal read-modify-write: load the whole sequence,
// transform it, persist the whole sequence. The read-modify-write is not
// atomic; two concurrent writers race and the later write wins, an accepted
// limitation for a single-user tool.
type Ledger struct {
	kv domain.KeyValue
}

// New constructs a ledger backed by the provided key-value port.
func New(kv domain.KeyValue) *Ledger {
	return &Ledger{kv: kv}
}

// Load reads the persisted ride sequence. It never raises: a missing key,
// read failure, decode failure, or non-array payload all yield an empty
// sequence.
func (l *Ledger) Load(ctx context.Context) []domain.RideRecord {
	data, ok, err := l.kv.Get(ctx, CookieName)
	if err != nil || !ok {
		return []domain.RideRecord{}
	}
	return DecodeCookieValue(string(data))
}

// Persist writes the full sequence under the cookie key, replacing any prior
// value whole. Write failures are swallowed; the in-memory sequence held by
// the caller stays correct for the session even when the write is lost.
func (l *Ledger) Persist(ctx context.Context, rides []domain.RideRecord) {
	value, err := EncodeCookieValue(rides)
	if err != nil {
		return
	}
	_ = l.kv.Set(ctx, CookieName, []byte(value))
}

// Append adds one ride to the end of the persisted sequence.
func (l *Ledger) Append(ctx context.Context, ride domain.RideRecord) {
	l.Persist(ctx, append(l.Load(ctx), ride))
}

// DeleteByID removes the record with the matching identifier and persists the
// remainder. It reports whether a record was removed.
func (l *Ledger) DeleteByID(ctx context.Context, id string) bool {
	rides := l.Load(ctx)
	for i, ride := range rides {
		if ride.ID == id {
			l.Persist(ctx, append(rides[:i], rides[i+1:]...))
			return true
		}
	}
	return false
}

// ReplaceAll overwrites the persisted sequence with rides.
func (l *Ledger) ReplaceAll(ctx context.Context, rides []domain.RideRecord) {
	l.Persist(ctx, rides)
}

// Clear empties the ledger. Callers gate this behind an explicit user
// confirmation.
func (l *Ledger) Clear(ctx context.Context) {
	l.ReplaceAll(ctx, []domain.RideRecord{})
}
