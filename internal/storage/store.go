package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Namespace is a fixed key partitioning the store into independent
// collections. The values match the keys the web client used.
type Namespace string

const (
	NamespaceUsers       Namespace = "momverse_users"
	NamespaceSession     Namespace = "momverse_current_user"
	NamespaceFeedingLogs Namespace = "momverse_feeding_logs"
	NamespaceJournal     Namespace = "momverse_journal"
)

var (
	// ErrStorageUnavailable wraps every backend failure (I/O, connection,
	// quota). Callers match it with errors.Is.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCorrupt marks a stored value that cannot be decoded. It is logged
	// and downgraded to an empty value by the codec helpers.
	ErrCorrupt = errors.New("corrupt stored value")

	ErrUnsupportedDSN = errors.New("unsupported store DSN")
)

// UpdateFunc receives the current value of a namespace (nil when absent)
// and returns the value to store in its place.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is a durable key-value store keyed by Namespace. Values are opaque
// serialized blobs; a write always replaces the whole value.
type Store interface {
	// Get returns the stored value, or nil and no error if the namespace
	// has never been written or was deleted.
	Get(ctx context.Context, ns Namespace) ([]byte, error)

	// Put overwrites the value of ns.
	Put(ctx context.Context, ns Namespace, value []byte) error

	// Update runs a read-modify-write cycle on ns atomically with respect
	// to other Update calls on the same store. An error from fn aborts the
	// cycle without writing and is returned unchanged.
	Update(ctx context.Context, ns Namespace, fn UpdateFunc) error

	// Delete removes ns. Deleting an absent namespace is not an error.
	Delete(ctx context.Context, ns Namespace) error

	Close() error
}

// Options tunes backends that need more than a DSN.
type Options struct {
	// RedisKeyPrefix is prepended to every namespace by the redis backend.
	RedisKeyPrefix string
}

// Open picks a backend from the DSN:
//
//	memory:                          in-process map, lost on exit
//	file:<path>, :memory:, *.db      SQLite (modernc.org/sqlite)
//	postgres://..., postgresql://... PostgreSQL (pgx)
//	redis://..., rediss://...        Redis
func Open(ctx context.Context, dsn string, opts Options) (Store, error) {
	var (
		st  Store
		err error
	)

	switch {
	case dsn == "memory:":
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, "file:"), strings.HasPrefix(dsn, ":memory:"), strings.HasSuffix(dsn, ".db"):
		st, err = OpenSQLite(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		st, err = OpenPostgres(ctx, dsn)
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		st, err = OpenRedis(ctx, dsn, opts.RedisKeyPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	}

	if err != nil {
		return nil, err
	}
	return st, nil
}

func unavailable(op string, ns Namespace, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, ns, ErrStorageUnavailable, err)
}
