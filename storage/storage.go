// Package storage provides the durable key-value stores that back the
// console session (auth_token, auth_role) and the local collection snapshots.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-errors"
)

const textCodeStorageClosed = "STORAGE_CLOSED"

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("storage is closed", errors.CategoryInternal).
	WithTextCode(textCodeStorageClosed).
	WithCode(errors.CodeInternal)

// Store is the key-value contract every backend implements.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Memory is a process local Store, handy for tests and ephemeral sessions.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty Memory store, optionally seeded.
func NewMemory(seed ...map[string]string) *Memory {
	m := &Memory{values: map[string]string{}}
	for _, s := range seed {
		for k, v := range s {
			m.values[k] = v
		}
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

// Delete removes all keys in a single critical section.
func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
