package console

import (
	"context"
	"fmt"
	"sync"
)

// StoreHandlers teach a Store how to read and assign identifiers on T.
type StoreHandlers[T any] struct {
	GetID func(T) int64
	SetID func(*T, int64)
	// Prepare runs on every record passed to Create, after the id is set.
	Prepare func(*T)
}

// Store is an in-memory, insertion ordered collection emulating a backend
// resource. All mutations are atomic. FetchAll does not hold the lock while
// the source is loading, so overlapping fetches race and the last one wins.
type Store[T any] struct {
	mu       sync.RWMutex
	name     string
	items    []T
	loading  bool
	err      string
	errMsg   string
	prepend  bool
	source   Source[T]
	sink     Sink[T]
	handlers StoreHandlers[T]
	ids      IDGenerator
	logger   Logger
}

// StoreOption customizes a Store.
type StoreOption[T any] func(*Store[T])

// WithStoreSource sets where FetchAll loads from.
func WithStoreSource[T any](source Source[T]) StoreOption[T] {
	return func(s *Store[T]) {
		s.source = source
	}
}

// WithStoreSink persists the collection after every mutation.
func WithStoreSink[T any](sink Sink[T]) StoreOption[T] {
	return func(s *Store[T]) {
		s.sink = sink
	}
}

func WithStoreIDGenerator[T any](ids IDGenerator) StoreOption[T] {
	return func(s *Store[T]) {
		if ids != nil {
			s.ids = ids
		}
	}
}

func WithStoreLogger[T any](logger Logger) StoreOption[T] {
	return func(s *Store[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStorePrepend makes Create insert new records first.
func WithStorePrepend[T any]() StoreOption[T] {
	return func(s *Store[T]) {
		s.prepend = true
	}
}

// WithStoreItems seeds the collection.
func WithStoreItems[T any](items ...T) StoreOption[T] {
	return func(s *Store[T]) {
		s.items = append([]T(nil), items...)
	}
}

// NewStore builds a Store. fetchError is the message recorded when FetchAll fails.
func NewStore[T any](name, fetchError string, handlers StoreHandlers[T], opts ...StoreOption[T]) *Store[T] {
	s := &Store[T]{
		name:     name,
		errMsg:   fetchError,
		handlers: handlers,
		ids:      NewClockIDGenerator(nil),
		logger:   defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store[T]) Name() string {
	return s.name
}

// FetchAll replaces the whole collection with what the source returns. On
// failure the previous collection is kept and LastError reports a readable
// message. Loading is reset on every exit.
func (s *Store[T]) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	source := s.source
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	items, err := s.load(ctx, source)
	if err != nil {
		s.logger.Error("%s fetch failed: %v", s.name, err)
		s.mu.Lock()
		s.err = s.errMsg
		s.mu.Unlock()
		return annotate(ErrFetchFailed, err, map[string]any{"store": s.name})
	}

	s.mu.Lock()
	s.items = append([]T(nil), items...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

func (s *Store[T]) load(ctx context.Context, source Source[T]) (items []T, err error) {
	if source == nil {
		return nil, fmt.Errorf("%s store has no source", s.name)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s source panic: %v", s.name, r)
		}
	}()
	return source.List(ctx)
}

// Create assigns a fresh id and adds the record, returning the stored copy.
func (s *Store[T]) Create(record T) T {
	s.handlers.SetID(&record, s.ids.NextID())
	if s.handlers.Prepare != nil {
		s.handlers.Prepare(&record)
	}

	s.mu.Lock()
	if s.prepend {
		s.items = append([]T{record}, s.items...)
	} else {
		s.items = append(s.items, record)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(context.Background(), snapshot)
	return record
}

// Update replaces the record with the same id. Unknown ids are ignored and
// false is returned.
func (s *Store[T]) Update(record T) bool {
	id := s.handlers.GetID(record)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx == -1 {
		s.mu.Unlock()
		return false
	}
	s.items[idx] = record
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(context.Background(), snapshot)
	return true
}

// Delete removes the record with id. Missing ids are a no-op.
func (s *Store[T]) Delete(id int64) bool {
	s.mu.Lock()
	kept := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if s.handlers.GetID(item) != id {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(s.items)
	s.items = kept
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if removed {
		s.persist(context.Background(), snapshot)
	}
	return removed
}

// Mutate applies fn to the record with id in place, false when missing.
func (s *Store[T]) Mutate(id int64, fn func(*T)) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx == -1 {
		s.mu.Unlock()
		return false
	}
	fn(&s.items[idx])
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(context.Background(), snapshot)
	return true
}

func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx != -1 {
		return s.items[idx], true
	}
	var zero T
	return zero, false
}

// List returns a copy of the collection.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Filter is a read only view computed from the current collection.
func (s *Store[T]) Filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []T{}
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store[T]) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ConfirmDelete asks the prompter before deleting; false when declined or missing.
func (s *Store[T]) ConfirmDelete(ctx context.Context, prompter Prompter, id int64, message string) bool {
	if prompter != nil && !prompter.Confirm(ctx, message) {
		return false
	}
	return s.Delete(id)
}

func (s *Store[T]) indexLocked(id int64) int {
	for i, item := range s.items {
		if s.handlers.GetID(item) == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) snapshotLocked() []T {
	return append([]T{}, s.items...)
}

func (s *Store[T]) persist(ctx context.Context, items []T) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Save(ctx, items); err != nil {
		s.logger.Error("%s persist failed: %v", s.name, err)
	}
}
