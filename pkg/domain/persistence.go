package domain

import "context"

// KeyValue is a minimal abstraction over durable client-side storage. The
// dataset store and ride ledger are injected with an implementation rather
// than touching storage globals, so tests run against the in-memory adapter
// and production binds whatever durable mechanism the environment offers.
type KeyValue interface {
	// Get returns the stored value for key. The boolean is false when the
	// key is absent; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set writes value under key, replacing any prior value whole.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
