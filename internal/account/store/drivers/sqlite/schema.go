package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// profileFields is true when the five optional profile columns are set.
const profileFields = `(age IS NOT NULL AND height IS NOT NULL AND weight IS NOT NULL
	AND pregnancies IS NOT NULL AND due_date IS NOT NULL)`

type schemaProbe struct {
	hasTable bool
	hasFlag  bool
}

// version maps the structural probe onto the migration numbering.
func (p schemaProbe) version() int {
	switch {
	case p.hasFlag:
		return 2
	case p.hasTable:
		return 1
	default:
		return 0
	}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// probeSchema reads the column catalog of users. A missing table yields no
// rows rather than an error.
func probeSchema(ctx context.Context, q querier) (schemaProbe, error) {
	rows, err := q.QueryContext(ctx, `PRAGMA table_info(users)`)
	if err != nil {
		return schemaProbe{}, fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	var p schemaProbe
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return schemaProbe{}, fmt.Errorf("scan table info: %w", err)
		}
		p.hasTable = true
		if name == "profile_completed" {
			p.hasFlag = true
		}
	}
	if err := rows.Err(); err != nil {
		return schemaProbe{}, fmt.Errorf("iterate table info: %w", err)
	}
	return p, nil
}

// addProfileFlag performs the v0 to v1 change outside the migration runner.
// It is used when the runner itself cannot be trusted with the file.
func addProfileFlag(ctx context.Context, ex execer) error {
	if _, err := ex.ExecContext(ctx,
		`ALTER TABLE users ADD COLUMN profile_completed INTEGER DEFAULT 0`); err != nil {
		return fmt.Errorf("add profile_completed: %w", err)
	}
	if _, err := ex.ExecContext(ctx,
		`UPDATE users SET profile_completed = 1 WHERE `+profileFields); err != nil {
		return fmt.Errorf("backfill profile_completed: %w", err)
	}
	return nil
}
