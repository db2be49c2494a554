package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/heymumma/heymumma/internal/account/store"
)

// Options tune the recovery path of EnsureReady.
type Options struct {
	// RecreateAttempts is how many times deleting a broken database file
	// is tried. Defaults to 3.
	RecreateAttempts int

	// RecreatePause is the constant wait between delete attempts.
	// Defaults to one second.
	RecreatePause time.Duration

	Logger *slog.Logger
}

// Store is the SQLite account store. It holds one pooled handle limited to a
// single connection, so statements from concurrent callers are serialized.
type Store struct {
	path string
	opts Options
	log  *slog.Logger

	mu   sync.RWMutex
	db   *sql.DB
	mode store.SchemaMode

	// Seams for exercising the recovery path.
	migrateUp  func(ctx context.Context, db *sql.DB) error
	removeFile func(path string) error
	addColumn  func(ctx context.Context, ex execer) error
}

var _ store.Store = (*Store)(nil)

// NewStore prepares a store backed by the file at path. Nothing is opened
// until EnsureReady.
func NewStore(path string, opts Options) *Store {
	if opts.RecreateAttempts <= 0 {
		opts.RecreateAttempts = 3
	}
	if opts.RecreatePause <= 0 {
		opts.RecreatePause = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Store{
		path:       path,
		opts:       opts,
		log:        opts.Logger.With("component", "account_store", "file", path),
		mode:       store.ModeUnknown,
		removeFile: removeIfExists,
		addColumn:  addProfileFlag,
	}
	s.migrateUp = s.applyMigrations
	return s
}

func (s *Store) dsn() string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_txlock", "immediate")
	return "file:" + s.path + "?" + q.Encode()
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// conn returns the live handle and mode, or ErrStoreUnavailable before
// EnsureReady has succeeded.
func (s *Store) conn() (*sql.DB, store.SchemaMode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, store.ModeUnknown, store.ErrStoreUnavailable
	}
	return s.db, s.mode, nil
}

func (s *Store) setMode(m store.SchemaMode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

func (s *Store) Mode() store.SchemaMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{s: s} }

func (s *Store) Ping(ctx context.Context) error {
	db, _, err := s.conn()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Optimize lets SQLite refresh its planner statistics.
func (s *Store) Optimize(ctx context.Context) error {
	db, _, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `PRAGMA optimize;`)
	return err
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapInsertErr(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return store.ErrAlreadyExists
		}
	}
	return fmt.Errorf("insert account: %w", err)
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
