package console

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-wallet-console/client"
)

// Source is where a store loads its collection from.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context) ([]T, error)

func (f SourceFunc[T]) List(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// Sink receives the full collection after each mutation.
type Sink[T any] interface {
	Save(ctx context.Context, items []T) error
}

// FixtureSource serves a fixed data set after a simulated network delay.
type FixtureSource[T any] struct {
	items []T
	delay time.Duration
}

func NewFixtureSource[T any](delay time.Duration, items ...T) *FixtureSource[T] {
	return &FixtureSource[T]{items: items, delay: delay}
}

func (f *FixtureSource[T]) List(ctx context.Context) ([]T, error) {
	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return append([]T{}, f.items...), nil
}

// RemoteSource lists records through the Resource Client.
type RemoteSource[T any] struct {
	resource *client.Resource[T]
}

func NewRemoteSource[T any](resource *client.Resource[T]) *RemoteSource[T] {
	return &RemoteSource[T]{resource: resource}
}

func (r *RemoteSource[T]) List(ctx context.Context) ([]T, error) {
	return r.resource.List(ctx)
}

// LocalSource keeps a collection as a JSON array under one storage key, the
// way the console persists data when running without an API. It is both a
// Source and a Sink.
type LocalSource[T any] struct {
	storage KeyValueStore
	key     string
}

func NewLocalSource[T any](storage KeyValueStore, key string) *LocalSource[T] {
	return &LocalSource[T]{storage: storage, key: key}
}

func (l *LocalSource[T]) Key() string {
	return l.key
}

// List returns an empty collection when nothing has been saved yet.
func (l *LocalSource[T]) List(ctx context.Context) ([]T, error) {
	raw, ok, err := l.storage.Get(ctx, l.key)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "corrupt local collection").
			WithMetadata(map[string]any{"key": l.key})
	}
	return items, nil
}

func (l *LocalSource[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to encode local collection")
	}
	return l.storage.Set(ctx, l.key, string(raw))
}
