package sessioncache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no cache entry exists for a cookie.
var ErrNotFound = errors.New("session cache entry not found")

// Entry is a persisted session: the browser cookie value, the serialized
// identity snapshot, and the backend bearer token.
type Entry struct {
	Cookie    string
	Identity  []byte
	Token     string
	CreatedAt time.Time
}

// Store persists session cache entries across server restarts.
type Store interface {
	Get(ctx context.Context, cookie string) (Entry, error)
	Save(ctx context.Context, e Entry) error
	Delete(ctx context.Context, cookie string) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
