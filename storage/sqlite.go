package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Entry is a single persisted key-value pair.
type Entry struct {
	bun.BaseModel `bun:"table:kv_entries,alias:kv"`
	Key           string     `bun:"key,pk" json:"key"`
	Value         string     `bun:"value,notnull" json:"value"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// SQLite persists entries in a sqlite database through bun, so a session
// survives between CLI invocations.
type SQLite struct {
	db  *bun.DB
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

// SQLiteOption customizes the SQLite store.
type SQLiteOption func(*SQLite)

// WithSQLiteClock injects a custom clock (useful for tests).
func WithSQLiteClock(clock func() time.Time) SQLiteOption {
	return func(s *SQLite) {
		if clock != nil {
			s.now = clock
		}
	}
}

// OpenSQLite opens (or creates) the database at dsn and ensures the schema.
// Use "file::memory:?cache=shared" for an in-memory database.
func OpenSQLite(ctx context.Context, dsn string, opts ...SQLiteOption) (*SQLite, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open sqlite storage")
	}

	s := NewSQLite(bun.NewDB(sqldb, sqlitedialect.New()), opts...)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite wraps an existing bun database. Call Migrate before use.
func NewSQLite(db *bun.DB, opts ...SQLiteOption) *SQLite {
	s := &SQLite{db: db, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Migrate creates the entries table if needed.
func (s *SQLite) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Entry)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create storage schema")
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	record := &Entry{}
	err := s.db.NewSelect().
		Model(record).
		Where(`?TableAlias."key" = ?`, key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, errors.CategoryInternal, "failed to read storage entry").
			WithMetadata(map[string]any{"key": key})
	}
	return record.Value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	now := s.now()
	record := &Entry{Key: key, Value: value, UpdatedAt: &now}
	_, err := s.db.NewInsert().
		Model(record).
		On(`CONFLICT ("key") DO UPDATE`).
		Set(`"value" = EXCLUDED."value"`).
		Set(`"updated_at" = EXCLUDED."updated_at"`).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to write storage entry").
			WithMetadata(map[string]any{"key": key})
	}
	return nil
}

// Delete removes every key in one statement, so related keys disappear together.
func (s *SQLite) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.db.NewDelete().
		Model((*Entry)(nil)).
		Where(`"key" IN (?)`, bun.In(keys)).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete storage entries").
			WithMetadata(map[string]any{"keys": keys})
	}
	return nil
}

func (s *SQLite) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.NewSelect().
		Model((*Entry)(nil)).
		Column("key").
		Order("key ASC").
		Scan(ctx, &keys)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list storage keys")
	}
	return keys, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
