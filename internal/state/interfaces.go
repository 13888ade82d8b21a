package state

import "context"

// Store persists progress snapshots as opaque blobs under fixed keys,
// plus a small key/value settings table for UI preferences.
type Store interface {
	EnsureSchema(ctx context.Context) error
	SaveSnapshot(ctx context.Context, key string, body []byte) error
	LoadSnapshot(ctx context.Context, key string) ([]byte, bool, error)
	DeleteSnapshot(ctx context.Context, key string) error
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
	Close() error
}
