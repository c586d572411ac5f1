// Package ledger stores the idempotency keys of delivered reminders.
//
// A dispatcher claims a key before delivering and releases it again when the
// delivery fails. The memory backend lives and dies with the process. The
// file, sqlite and redis backends keep the fire-once guarantee across
// restarts. Claims are atomic within one process for memory and file, and
// across processes sharing one database for sqlite and redis.
package ledger

import (
	"context"
	"fmt"
	"time"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// DefaultRetention is how long delivered keys are remembered by persistent
// backends. Keys only matter for the day they were delivered on.
const DefaultRetention = 48 * time.Hour

// Ledger is a set of delivered idempotency keys.
type Ledger interface {
	Seen(ctx context.Context, key string) (bool, error)
	// Claim records key as delivered at the given instant. It reports false
	// when the key was already present, in which case nothing changes.
	Claim(ctx context.Context, key string, at time.Time) (bool, error)
	// Release forgets a claimed key. Releasing an unknown key is not an error.
	Release(ctx context.Context, key string) error
	// Prune forgets keys delivered before the given instant and reports how
	// many were removed.
	Prune(ctx context.Context, before time.Time) (int, error)
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Path      string
	Retention time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open returns the ledger selected by opts.Backend.
func Open(ctx context.Context, opts Options) (Ledger, error) {
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return OpenFile(opts.Path, opts.Retention, time.Now())
	case BackendSQLite:
		return OpenSQLite(ctx, opts.Path)
	case BackendRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			TTL:      opts.Retention,
		})
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", opts.Backend)
	}
}
