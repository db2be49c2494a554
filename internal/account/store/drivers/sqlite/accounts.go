package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/heymumma/heymumma/internal/account/domain"
	"github.com/heymumma/heymumma/internal/account/store"
)

type accountsRepo struct {
	s *Store
}

// flagExpr is the profile_completed source for the given mode.
func flagExpr(mode store.SchemaMode) string {
	if mode == store.ModeFlag {
		return `COALESCE(profile_completed, 0)`
	}
	return profileFields
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	db, _, err := r.s.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// The cached mode may lag a lazy upgrade, the catalog inside tx does not.
	probe, err := probeSchema(ctx, tx)
	if err != nil {
		return err
	}

	cols := []string{"email", "name", "password", "age", "height", "weight", "pregnancies", "due_date", "registration_date"}
	args := []any{
		a.Email, a.Name, a.PasswordHash,
		nullInt(a.Age), nullFloat(a.Height), nullFloat(a.Weight), nullInt(a.Pregnancies), nullString(a.DueDate),
		a.RegistrationDate,
	}
	if probe.hasFlag {
		cols = append(cols, "profile_completed")
		args = append(args, a.HasCompleteProfile())
	}

	query := `INSERT INTO users (` + strings.Join(cols, ", ") + `) VALUES (` +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + `)`
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapInsertErr(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	r.leaveDerived(probe.hasFlag, false)
	return nil
}

func (r *accountsRepo) Get(ctx context.Context, email string) (domain.Account, error) {
	db, mode, err := r.s.conn()
	if err != nil {
		return domain.Account{}, err
	}

	var (
		a           domain.Account
		age, preg   sql.NullInt64
		height, wt  sql.NullFloat64
		due, regged sql.NullString
	)
	err = db.QueryRowContext(ctx, `
		SELECT email, name, password, age, height, weight, pregnancies, due_date,
		       registration_date, `+flagExpr(mode)+`
		FROM users WHERE email = ?`, email).
		Scan(&a.Email, &a.Name, &a.PasswordHash, &age, &height, &wt, &preg, &due, &regged, &a.ProfileCompleted)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.Age = intPtr(age)
	a.Height = floatPtr(height)
	a.Weight = floatPtr(wt)
	a.Pregnancies = intPtr(preg)
	a.DueDate = stringPtr(due)
	a.RegistrationDate = regged.String
	return a, nil
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, email string, u domain.ProfileUpdate) error {
	if u.IsEmpty() {
		return nil
	}
	db, _, err := r.s.conn()
	if err != nil {
		return err
	}

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.Age != nil {
		set("age", *u.Age)
	}
	if u.Height != nil {
		set("height", *u.Height)
	}
	if u.Weight != nil {
		set("weight", *u.Weight)
	}
	if u.Pregnancies != nil {
		set("pregnancies", *u.Pregnancies)
	}
	if u.DueDate != nil {
		set("due_date", *u.DueDate)
	}
	args = append(args, email)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE email = ?`, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return store.ErrNotFound
	}

	var complete bool
	if err := tx.QueryRowContext(ctx,
		`SELECT `+profileFields+` FROM users WHERE email = ?`, email).Scan(&complete); err != nil {
		return fmt.Errorf("re-read profile: %w", err)
	}

	probe, err := probeSchema(ctx, tx)
	if err != nil {
		return err
	}
	hasFlag, upgraded := probe.hasFlag, false
	if complete && !hasFlag {
		upgraded = r.addFlagInTx(ctx, tx)
		hasFlag = upgraded
	}
	if complete && hasFlag {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET profile_completed = 1 WHERE email = ?`, email); err != nil {
			return fmt.Errorf("mark profile completed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	r.leaveDerived(hasFlag, upgraded)
	return nil
}

// leaveDerived switches the store to ModeFlag once a committed transaction
// has seen the flag column.
func (r *accountsRepo) leaveDerived(hasFlag, upgraded bool) {
	if !hasFlag || r.s.Mode() == store.ModeFlag {
		return
	}
	r.s.setMode(store.ModeFlag)
	if upgraded {
		r.s.log.Info("profile_completed column added, leaving derived mode")
	} else {
		r.s.log.Info("profile_completed column found, leaving derived mode")
	}
}

// addFlagInTx tries the lazy v0 to v1 upgrade inside tx. A failure is
// rolled back to the savepoint so the profile edit itself still commits.
func (r *accountsRepo) addFlagInTx(ctx context.Context, tx *sql.Tx) bool {
	if _, err := tx.ExecContext(ctx, `SAVEPOINT add_profile_flag`); err != nil {
		r.s.log.Warn("lazy schema upgrade failed", "err", err)
		return false
	}
	if err := r.s.addColumn(ctx, tx); err != nil {
		_, _ = tx.ExecContext(ctx, `ROLLBACK TO add_profile_flag`)
		_, _ = tx.ExecContext(ctx, `RELEASE add_profile_flag`)
		r.s.log.Warn("lazy schema upgrade failed, profile_completed stays derived", "err", err)
		return false
	}
	if _, err := tx.ExecContext(ctx, `RELEASE add_profile_flag`); err != nil {
		r.s.log.Warn("lazy schema upgrade failed", "err", err)
		return false
	}
	return true
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	db, _, err := r.s.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `UPDATE users SET password = ? WHERE email = ?`, hash, email)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) IsProfileComplete(ctx context.Context, email string) (bool, error) {
	db, mode, err := r.s.conn()
	if err != nil {
		return false, err
	}

	var complete bool
	err = db.QueryRowContext(ctx,
		`SELECT `+flagExpr(mode)+` FROM users WHERE email = ?`, email).Scan(&complete)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return complete, err
}

func (r *accountsRepo) Stats(ctx context.Context) (store.Stats, error) {
	db, mode, err := r.s.conn()
	if err != nil {
		return store.Stats{}, err
	}

	var st store.Stats
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(`+flagExpr(mode)+`), 0) FROM users`).Scan(&st.Total, &st.Complete)
	return st, err
}
