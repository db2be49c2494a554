package store

import (
	"context"
	"errors"

	"github.com/heymumma/heymumma/internal/account/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrStoreUnavailable means the database file could not be created or
	// opened. The process cannot serve accounts without it.
	ErrStoreUnavailable = errors.New("store: unavailable")
)

// SchemaMode says where the profile_completed value comes from.
type SchemaMode string

const (
	ModeUnknown SchemaMode = "unknown"

	// ModeFlag: the column exists and is kept in sync on every write.
	ModeFlag SchemaMode = "flag"

	// ModeDerived: the column could not be added, so the value is computed
	// from the five profile fields on every read.
	ModeDerived SchemaMode = "derived"
)

// Store is the root data access interface for the account database.
type Store interface {
	Accounts() Accounts

	// EnsureReady creates or upgrades the schema. It is safe to call on
	// every start and must be called before any other method.
	EnsureReady(ctx context.Context) error

	// Mode reports the schema mode chosen by EnsureReady or a later lazy
	// upgrade.
	Mode() SchemaMode

	// Optimize runs engine maintenance. Used by housekeeping.
	Optimize(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

type Accounts interface {
	// Create inserts a. ProfileCompleted is recomputed from the profile
	// fields. Returns ErrAlreadyExists if the email is taken.
	Create(ctx context.Context, a domain.Account) error

	// Get returns the account for email or ErrNotFound.
	Get(ctx context.Context, email string) (domain.Account, error)

	// UpdateProfile writes the supplied fields and, in the same
	// transaction, marks the profile complete once all five are present.
	// An empty update touches nothing. Returns ErrNotFound for an unknown
	// email.
	UpdateProfile(ctx context.Context, email string, u domain.ProfileUpdate) error

	// UpdatePasswordHash replaces the stored password value.
	UpdatePasswordHash(ctx context.Context, email, hash string) error

	// IsProfileComplete is false for unknown emails.
	IsProfileComplete(ctx context.Context, email string) (bool, error)

	// Stats counts all accounts and those with a complete profile.
	Stats(ctx context.Context) (Stats, error)
}

type Stats struct {
	Total    int
	Complete int
}
