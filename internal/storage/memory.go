package storage

import (
	"context"
	"errors"
	"sync"
)

var errClosed = errors.New("store closed")

// MemoryStore keeps namespaces in a map. Values are copied on the way in
// and out so callers cannot alias stored bytes.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[Namespace][]byte
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Namespace][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, ns Namespace) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, unavailable("get", ns, errClosed)
	}
	return clone(m.data[ns]), nil
}

func (m *MemoryStore) Put(ctx context.Context, ns Namespace, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return unavailable("put", ns, errClosed)
	}
	m.data[ns] = clone(value)
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, ns Namespace, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return unavailable("update", ns, errClosed)
	}
	next, err := fn(clone(m.data[ns]))
	if err != nil {
		return err
	}
	m.data[ns] = clone(next)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, ns Namespace) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return unavailable("delete", ns, errClosed)
	}
	delete(m.data, ns)
	return nil
}

// Close makes every later call fail with ErrStorageUnavailable.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
