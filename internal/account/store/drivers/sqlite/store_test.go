package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heymumma/heymumma/internal/account/domain"
	"github.com/heymumma/heymumma/internal/account/store"
)

func ptr[T any](v T) *T { return &v }

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s := NewStore(path, Options{RecreatePause: time.Millisecond})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func readyStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, s.EnsureReady(context.Background()))
	return s
}

// writeLegacyStore creates a users table without profile_completed holding
// one complete and one partial profile.
func writeLegacyStore(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE users (
			email TEXT PRIMARY KEY, name TEXT NOT NULL, password TEXT NOT NULL,
			age INTEGER, height REAL, weight REAL, pregnancies INTEGER,
			due_date TEXT, registration_date TEXT);
		INSERT INTO users VALUES ('full@x.com', 'Fay', 'pw', 31, 160.5, 58, 2, '2025-03-01', '2024-07-01');
		INSERT INTO users (email, name, password, age, registration_date) VALUES ('part@x.com', 'Pat', '', 25, '2024-07-02');`)
	require.NoError(t, err)
}

// writeFlaggedStore creates a users table that already carries
// profile_completed but has no migration version recorded.
func writeFlaggedStore(t *testing.T, path string) {
	t.Helper()
	writeLegacyStore(t, path)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, addProfileFlag(context.Background(), db))
}

// derivedStore opens a legacy store whose upgrade paths all fail, then puts
// the real column add back for the lazy upgrade.
func derivedStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.db")
	writeLegacyStore(t, path)

	s := newTestStore(t, path)
	s.migrateUp = func(context.Context, *sql.DB) error { return errors.New("database is locked") }
	s.removeFile = func(string) error { return errors.New("file in use") }
	s.addColumn = func(context.Context, execer) error { return errors.New("database is locked") }
	require.NoError(t, s.EnsureReady(context.Background()))
	require.Equal(t, store.ModeDerived, s.Mode())

	s.addColumn = addProfileFlag
	return s
}

func completeProfile() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Age: ptr(30), Height: ptr(165.0), Weight: ptr(60.0), Pregnancies: ptr(1), DueDate: ptr("2025-06-01"),
	}
}

func TestEnsureReadyCreatesFreshStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	s := newTestStore(t, path)

	require.ErrorIs(t, s.Ping(ctx), store.ErrStoreUnavailable)
	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, store.ModeFlag, s.Mode())
	require.FileExists(t, path)

	db, _, err := s.conn()
	require.NoError(t, err)
	probe, err := probeSchema(ctx, db)
	require.NoError(t, err)
	require.True(t, probe.hasFlag)
}

func TestEnsureReadyTwiceKeepsData(t *testing.T) {
	ctx := context.Background()
	s := readyStore(t)
	require.NoError(t, s.Accounts().Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "h", RegistrationDate: "2024-01-01"}))

	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, store.ModeFlag, s.Mode())

	got, err := s.Accounts().Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ann", got.Name)
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := readyStore(t)
	accounts := s.Accounts()

	require.NoError(t, accounts.Create(ctx, domain.Account{
		Email: "a@x.com", Name: "Ann", PasswordHash: "pw", RegistrationDate: "2024-05-01",
	}))

	got, err := accounts.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ann", got.Name)
	require.Equal(t, "pw", got.PasswordHash)
	require.Equal(t, "2024-05-01", got.RegistrationDate)
	require.Nil(t, got.Age)
	require.Nil(t, got.DueDate)
	require.False(t, got.ProfileCompleted)

	_, err = accounts.Get(ctx, "nobody@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateDuplicateLeavesRowUntouched(t *testing.T) {
	ctx := context.Background()
	accounts := readyStore(t).Accounts()

	require.NoError(t, accounts.Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "pw"}))
	err := accounts.Create(ctx, domain.Account{Email: "a@x.com", Name: "Other", PasswordHash: "x"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := accounts.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ann", got.Name)
}

func TestCreateWithFullProfileSetsFlag(t *testing.T) {
	ctx := context.Background()
	accounts := readyStore(t).Accounts()

	require.NoError(t, accounts.Create(ctx, domain.Account{
		Email: "b@x.com", Name: "Bea", PasswordHash: "pw",
		Age: ptr(28), Height: ptr(170.0), Weight: ptr(65.0), Pregnancies: ptr(0), DueDate: ptr("2025-01-10"),
	}))

	ok, err := accounts.IsProfileComplete(ctx, "b@x.com")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUpdateProfileCompletesProfile(t *testing.T) {
	ctx := context.Background()
	accounts := readyStore(t).Accounts()
	require.NoError(t, accounts.Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "pw"}))

	ok, err := accounts.IsProfileComplete(ctx, "a@x.com")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, accounts.UpdateProfile(ctx, "a@x.com", domain.ProfileUpdate{
		Age: ptr(30), Height: ptr(165.0), Weight: ptr(60.0), Pregnancies: ptr(1), DueDate: ptr("2025-06-01"),
	}))

	ok, err = accounts.IsProfileComplete(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := accounts.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, 30, *got.Age)
	require.Equal(t, 165.0, *got.Height)
	require.Equal(t, 60.0, *got.Weight)
	require.Equal(t, 1, *got.Pregnancies)
	require.Equal(t, "2025-06-01", *got.DueDate)
	require.True(t, got.ProfileCompleted)
}

func TestUpdateProfilePartialInAnyOrder(t *testing.T) {
	ctx := context.Background()
	accounts := readyStore(t).Accounts()
	require.NoError(t, accounts.Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "pw"}))

	steps := []domain.ProfileUpdate{
		{DueDate: ptr("2025-06-01")},
		{Pregnancies: ptr(0)},
		{Weight: ptr(60.0)},
		{Age: ptr(30)},
	}
	for _, u := range steps {
		require.NoError(t, accounts.UpdateProfile(ctx, "a@x.com", u))
		ok, err := accounts.IsProfileComplete(ctx, "a@x.com")
		require.NoError(t, err)
		require.False(t, ok)
	}

	require.NoError(t, accounts.UpdateProfile(ctx, "a@x.com", domain.ProfileUpdate{Height: ptr(165.0)}))
	ok, err := accounts.IsProfileComplete(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := accounts.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "2025-06-01", *got.DueDate, "earlier fields survive later partial updates")
}

func TestUpdateProfileEdgeCases(t *testing.T) {
	ctx := context.Background()
	accounts := readyStore(t).Accounts()
	require.NoError(t, accounts.Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "pw", Age: ptr(20)}))

	require.NoError(t, accounts.UpdateProfile(ctx, "a@x.com", domain.ProfileUpdate{}))
	got, err := accounts.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, 20, *got.Age)

	err = accounts.UpdateProfile(ctx, "ghost@x.com", domain.ProfileUpdate{Age: ptr(30)})
	require.ErrorIs(t, err, store.ErrNotFound)

	ok, err := accounts.IsProfileComplete(ctx, "ghost@x.com")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	accounts := readyStore(t).Accounts()
	require.NoError(t, accounts.Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "pw"}))

	require.NoError(t, accounts.UpdatePasswordHash(ctx, "a@x.com", "$argon2id$new"))
	got, err := accounts.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "$argon2id$new", got.PasswordHash)

	require.ErrorIs(t, accounts.UpdatePasswordHash(ctx, "ghost@x.com", "h"), store.ErrNotFound)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	accounts := readyStore(t).Accounts()
	require.NoError(t, accounts.Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "pw"}))
	require.NoError(t, accounts.Create(ctx, domain.Account{
		Email: "b@x.com", Name: "Bea", PasswordHash: "pw",
		Age: ptr(28), Height: ptr(170.0), Weight: ptr(65.0), Pregnancies: ptr(0), DueDate: ptr("2025-01-10"),
	}))

	st, err := accounts.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, store.Stats{Total: 2, Complete: 1}, st)
}

func TestEnsureReadyUpgradesLegacyStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	writeLegacyStore(t, path)

	s := newTestStore(t, path)
	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, store.ModeFlag, s.Mode())

	full, err := s.Accounts().Get(ctx, "full@x.com")
	require.NoError(t, err)
	require.True(t, full.ProfileCompleted)
	require.Equal(t, 160.5, *full.Height)

	part, err := s.Accounts().Get(ctx, "part@x.com")
	require.NoError(t, err)
	require.False(t, part.ProfileCompleted)
	require.Empty(t, part.PasswordHash)

	require.NoError(t, s.EnsureReady(ctx), "second start is a no-op")
	require.Equal(t, store.ModeFlag, s.Mode())
}

func TestEnsureReadyRecreatesCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	garbage := make([]byte, 4096)
	for i := range garbage {
		garbage[i] = byte('z')
	}
	require.NoError(t, os.WriteFile(path, garbage, 0o600))

	s := newTestStore(t, path)
	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, store.ModeFlag, s.Mode())

	require.NoError(t, s.Accounts().Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "pw"}))
	_, err := s.Accounts().Get(ctx, "a@x.com")
	require.NoError(t, err)
}

func TestEnsureReadyFallsBackToInPlaceAlter(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	writeLegacyStore(t, path)

	s := newTestStore(t, path)
	s.migrateUp = func(context.Context, *sql.DB) error { return errors.New("database is locked") }
	removals := 0
	s.removeFile = func(string) error {
		removals++
		return errors.New("file in use")
	}

	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, 3, removals)
	require.Equal(t, store.ModeFlag, s.Mode())

	ok, err := s.Accounts().IsProfileComplete(ctx, "full@x.com")
	require.NoError(t, err)
	require.True(t, ok, "in-place alter backfills existing rows")
}

func TestDerivedModeWhenNothingElseWorks(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	writeLegacyStore(t, path)

	s := newTestStore(t, path)
	s.migrateUp = func(context.Context, *sql.DB) error { return errors.New("database is locked") }
	s.removeFile = func(string) error { return errors.New("file in use") }
	s.addColumn = func(context.Context, execer) error { return errors.New("database is locked") }

	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, store.ModeDerived, s.Mode())

	accounts := s.Accounts()

	ok, err := accounts.IsProfileComplete(ctx, "full@x.com")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, accounts.Create(ctx, domain.Account{Email: "a@x.com", Name: "Ann", PasswordHash: "pw"}))
	require.NoError(t, accounts.UpdateProfile(ctx, "a@x.com", domain.ProfileUpdate{
		Age: ptr(30), Height: ptr(165.0), Weight: ptr(60.0), Pregnancies: ptr(1), DueDate: ptr("2025-06-01"),
	}))

	// The column still cannot be added, but the answer is derived.
	require.Equal(t, store.ModeDerived, s.Mode())
	got, err := accounts.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, got.ProfileCompleted)
	require.Equal(t, 30, *got.Age)

	st, err := accounts.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, store.Stats{Total: 3, Complete: 2}, st)
}

func TestDerivedModeUpgradesLazily(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	writeLegacyStore(t, path)

	s := newTestStore(t, path)
	s.migrateUp = func(context.Context, *sql.DB) error { return errors.New("database is locked") }
	s.removeFile = func(string) error { return errors.New("file in use") }
	s.addColumn = func(context.Context, execer) error { return errors.New("database is locked") }
	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, store.ModeDerived, s.Mode())

	s.addColumn = addProfileFlag
	accounts := s.Accounts()

	// An update that leaves the profile incomplete does not upgrade.
	require.NoError(t, accounts.UpdateProfile(ctx, "part@x.com", domain.ProfileUpdate{Height: ptr(150.0)}))
	require.Equal(t, store.ModeDerived, s.Mode())

	require.NoError(t, accounts.UpdateProfile(ctx, "part@x.com", domain.ProfileUpdate{
		Weight: ptr(55.0), Pregnancies: ptr(0), DueDate: ptr("2025-09-09"),
	}))
	require.Equal(t, store.ModeFlag, s.Mode())

	db, _, err := s.conn()
	require.NoError(t, err)
	var flags []bool
	rows, err := db.QueryContext(ctx, `SELECT profile_completed FROM users ORDER BY email`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var f bool
		require.NoError(t, rows.Scan(&f))
		flags = append(flags, f)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []bool{true, true}, flags)
}

func TestEnsureReadyUnavailable(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "missing", "users.db"))
	err := s.EnsureReady(context.Background())
	require.ErrorIs(t, err, store.ErrStoreUnavailable)

	_, err = s.Accounts().Get(context.Background(), "a@x.com")
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
}

func TestEnsureReadyKeepsFlaggedStoreWhenVersionCannotBeRecorded(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	writeFlaggedStore(t, path)

	s := newTestStore(t, path)
	s.migrateUp = func(context.Context, *sql.DB) error { return errors.New("database is locked") }
	removals := 0
	s.removeFile = func(string) error {
		removals++
		return nil
	}

	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, store.ModeFlag, s.Mode())
	require.Zero(t, removals)

	got, err := s.Accounts().Get(ctx, "full@x.com")
	require.NoError(t, err)
	require.True(t, got.ProfileCompleted)
}

func TestEnsureReadyKeepsFlaggedStoreWhileReaderHoldsLock(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	writeFlaggedStore(t, path)

	reader, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	readTx, err := reader.BeginTx(ctx, nil)
	require.NoError(t, err)
	var n int
	require.NoError(t, readTx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n))
	require.Equal(t, 2, n)

	s := newTestStore(t, path)
	require.NoError(t, s.EnsureReady(ctx))
	require.Equal(t, store.ModeFlag, s.Mode())
	require.NoError(t, readTx.Rollback())

	got, err := s.Accounts().Get(ctx, "full@x.com")
	require.NoError(t, err)
	require.True(t, got.ProfileCompleted)

	// Once the reader is gone the version is recorded and nothing is lost.
	require.NoError(t, s.EnsureReady(ctx))
	st, err := s.Accounts().Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, store.Stats{Total: 2, Complete: 1}, st)
}

func TestMapInsertErrUsesResultCode(t *testing.T) {
	require.NoError(t, mapInsertErr(nil))

	err := mapInsertErr(errors.New("UNIQUE constraint failed: users.email"))
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrAlreadyExists)
}

func TestConcurrentUpdatesLeaveDerivedModeConsistently(t *testing.T) {
	ctx := context.Background()
	s := derivedStore(t)
	accounts := s.Accounts()

	const n = 20
	emails := make([]string, n)
	for i := range emails {
		emails[i] = fmt.Sprintf("u%02d@x.com", i)
		require.NoError(t, accounts.Create(ctx, domain.Account{Email: emails[i], Name: "U", PasswordHash: "pw"}))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, email := range emails {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- accounts.UpdateProfile(ctx, email, completeProfile())
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, store.ModeFlag, s.Mode())
	for _, email := range emails {
		ok, err := accounts.IsProfileComplete(ctx, email)
		require.NoError(t, err)
		require.True(t, ok, email)
	}

	db, _, err := s.conn()
	require.NoError(t, err)
	var flagged int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email LIKE 'u%' AND profile_completed = 1`).Scan(&flagged))
	require.Equal(t, n, flagged)
}

func TestWritesSeeColumnAddedBehindCachedMode(t *testing.T) {
	tests := []struct {
		name  string
		email string
		write func(ctx context.Context, a store.Accounts) error
	}{
		{
			name:  "create",
			email: "new@x.com",
			write: func(ctx context.Context, a store.Accounts) error {
				acct := domain.Account{Email: "new@x.com", Name: "Nia", PasswordHash: "pw"}
				acct.Apply(completeProfile())
				return a.Create(ctx, acct)
			},
		},
		{
			name:  "update",
			email: "part@x.com",
			write: func(ctx context.Context, a store.Accounts) error {
				return a.UpdateProfile(ctx, "part@x.com", completeProfile())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := derivedStore(t)

			db, _, err := s.conn()
			require.NoError(t, err)
			require.NoError(t, addProfileFlag(ctx, db))
			require.Equal(t, store.ModeDerived, s.Mode(), "cached mode lags the catalog")

			require.NoError(t, tt.write(ctx, s.Accounts()))
			require.Equal(t, store.ModeFlag, s.Mode())

			var flag bool
			require.NoError(t, db.QueryRowContext(ctx,
				`SELECT profile_completed FROM users WHERE email = ?`, tt.email).Scan(&flag))
			require.True(t, flag)
		})
	}
}
