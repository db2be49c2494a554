package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/heymumma/heymumma/internal/account/store"
	"github.com/heymumma/heymumma/internal/account/store/drivers/sqlite/migrations"
)

// applyMigrations brings the users table to the latest version using the
// embedded migration files.
//
// Databases written before the migration runner was introduced carry no
// version row. Their version is taken from the column catalog and recorded
// with Force, so only the missing steps run.
func (s *Store) applyMigrations(ctx context.Context, db *sql.DB) error {
	probe, err := probeSchema(ctx, db)
	if err != nil {
		return err
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}

	_, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion) || dirty:
		if v := probe.version(); v > 0 {
			s.log.Info("baselining schema from column catalog", "version", v, "dirty", dirty)
			if err := m.Force(v); err != nil {
				return fmt.Errorf("migrate force %d: %w", v, err)
			}
		}
	case err != nil:
		return fmt.Errorf("migrate version: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// EnsureReady opens the database and makes sure the profile_completed flag
// can be served.
//
// A missing file is created at the latest schema. An existing file that
// already has the flag column is served as is. One without it is upgraded in
// place. If that fails the file is deleted and recreated; if it
// cannot be deleted the column is added directly; if even that fails the
// store falls back to ModeDerived. Only a file that cannot be opened at all
// yields ErrStoreUnavailable.
func (s *Store) EnsureReady(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}

	_, statErr := os.Stat(s.path)
	fresh := errors.Is(statErr, fs.ErrNotExist)
	if statErr != nil && !fresh {
		return fmt.Errorf("%w: %v", store.ErrStoreUnavailable, statErr)
	}

	db, err := s.open(ctx)
	if err != nil {
		if fresh {
			return fmt.Errorf("%w: open: %v", store.ErrStoreUnavailable, err)
		}
		s.log.Warn("cannot open account store, recreating", "err", err)
		return s.recreateLocked(ctx)
	}
	s.db = db

	probe, err := probeSchema(ctx, db)
	if err != nil {
		if fresh {
			s.closeLocked()
			return fmt.Errorf("%w: probe schema: %v", store.ErrStoreUnavailable, err)
		}
		s.log.Warn("cannot read account schema, recreating account store", "err", err)
		return s.recreateLocked(ctx)
	}

	// Flag column present: a failure to record the migration version is only
	// logged, the file is never recreated for it.
	if probe.hasFlag {
		s.mode = store.ModeFlag
		if err := s.migrateUp(ctx, db); err != nil {
			s.log.Warn("schema version bookkeeping failed, serving existing store", "err", err)
		}
		return nil
	}

	err = s.migrateUp(ctx, db)
	if err == nil {
		s.mode = store.ModeFlag
		if fresh {
			s.log.Info("account store created")
		}
		return nil
	}
	if fresh {
		s.closeLocked()
		return fmt.Errorf("%w: create schema: %v", store.ErrStoreUnavailable, err)
	}

	s.log.Warn("schema upgrade failed, recreating account store", "err", err)
	return s.recreateLocked(ctx)
}

func (s *Store) recreateLocked(ctx context.Context) error {
	s.closeLocked()

	attempt := 0
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.RecreatePause), uint64(s.opts.RecreateAttempts-1)), // #nosec G115
		ctx,
	)
	removeErr := backoff.RetryNotify(func() error {
		attempt++
		return s.removeFile(s.path)
	}, b, func(err error, wait time.Duration) {
		s.log.Warn("delete account store failed", "attempt", attempt, "retry_in", wait, "err", err)
	})

	db, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("%w: reopen: %v", store.ErrStoreUnavailable, err)
	}
	s.db = db

	if removeErr == nil {
		if err := s.migrateUp(ctx, db); err != nil {
			s.closeLocked()
			return fmt.Errorf("%w: recreate schema: %v", store.ErrStoreUnavailable, err)
		}
		s.mode = store.ModeFlag
		s.log.Warn("account store recreated from scratch, previous accounts were discarded")
		return nil
	}

	s.log.Warn("could not delete account store, adding column in place", "attempts", attempt, "err", removeErr)

	probe, err := probeSchema(ctx, db)
	if err != nil || !probe.hasTable {
		s.closeLocked()
		return fmt.Errorf("%w: unreadable schema: %v", store.ErrStoreUnavailable, err)
	}
	if probe.hasFlag {
		s.mode = store.ModeFlag
		return nil
	}

	if err := s.addColumn(ctx, db); err != nil {
		s.log.Warn("profile_completed unavailable, deriving it from profile fields", "err", err)
		s.mode = store.ModeDerived
		return nil
	}
	s.mode = store.ModeFlag
	return nil
}

func (s *Store) closeLocked() {
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}

func removeIfExists(path string) error {
	for _, p := range []string{path, path + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
