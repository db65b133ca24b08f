package ports

import (
	"context"
	"time"
)

// Cache is a small key-value memo for collaborator lookups (reviewer display names).
// It must never hold application status; callers re-fetch state after mutations.
// A zero ttl keeps the entry until it is overwritten or deleted.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
