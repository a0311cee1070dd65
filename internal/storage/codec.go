package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/momverse/momverse/internal/logging"
)

// validator is implemented by records that can reject their own decoded
// shape, e.g. a missing timestamp.
type validator interface {
	Validate() error
}

// DecodeCollection turns a stored value into records. A missing value is an
// empty collection. A value that does not decode, or holds a record that
// fails validation, is treated as corrupt: a warning is logged and an empty
// collection is returned. The result is never nil.
//
// Timestamps are stored as RFC 3339 text and parsed back into time.Time
// here; malformed timestamp text fails decoding.
func DecodeCollection[T any](ctx context.Context, log logging.Logger, ns Namespace, data []byte) []T {
	items, err := decodeCollection[T](data)
	if err != nil {
		log.Warn(ctx, "discarding unreadable collection", "namespace", string(ns), "err", err)
		return []T{}
	}
	return items
}

func decodeCollection[T any](data []byte) ([]T, error) {
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if items == nil {
		return []T{}, nil
	}

	for i := range items {
		if v, ok := any(items[i]).(validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("%w: record %d: %w", ErrCorrupt, i, err)
			}
		}
	}
	return items, nil
}

// EncodeCollection serializes records. A nil slice is stored as [].
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return b, nil
}

// ReadCollection loads and decodes the collection stored under ns. Only
// backend failures are returned as errors.
func ReadCollection[T any](ctx context.Context, s Store, ns Namespace, log logging.Logger) ([]T, error) {
	data, err := s.Get(ctx, ns)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[T](ctx, log, ns, data), nil
}

// WriteCollection replaces the collection stored under ns.
func WriteCollection[T any](ctx context.Context, s Store, ns Namespace, items []T) error {
	b, err := EncodeCollection(items)
	if err != nil {
		return err
	}
	return s.Put(ctx, ns, b)
}

// UpdateCollection runs a read-modify-write cycle over a typed collection
// and returns what was written. fn sees a non-nil slice it may reuse.
func UpdateCollection[T any](ctx context.Context, s Store, ns Namespace, log logging.Logger, fn func([]T) ([]T, error)) ([]T, error) {
	var written []T
	err := s.Update(ctx, ns, func(current []byte) ([]byte, error) {
		next, err := fn(DecodeCollection[T](ctx, log, ns, current))
		if err != nil {
			return nil, err
		}
		b, err := EncodeCollection(next)
		if err != nil {
			return nil, err
		}
		written = next
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

// ReadValue loads a single record. It returns nil when ns is absent or
// its value is corrupt; the latter is logged as a warning.
func ReadValue[T any](ctx context.Context, s Store, ns Namespace, log logging.Logger) (*T, error) {
	data, err := s.Get(ctx, ns)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn(ctx, "discarding unreadable value", "namespace", string(ns), "err", err)
		return nil, nil
	}
	return &v, nil
}

// WriteValue replaces the single record stored under ns.
func WriteValue[T any](ctx context.Context, s Store, ns Namespace, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	return s.Put(ctx, ns, b)
}
