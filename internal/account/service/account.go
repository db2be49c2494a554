package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heymumma/heymumma/internal/account/domain"
	"github.com/heymumma/heymumma/internal/account/metrics"
	"github.com/heymumma/heymumma/internal/account/store"
	"github.com/heymumma/heymumma/pkg/cryptox"
	"github.com/heymumma/heymumma/pkg/slogx"
)

var (
	ErrAccountExists      = errors.New("account_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// AccountService is the account API used by the HTTP layer and the CLI.
type AccountService struct {
	Store   store.Store
	Metrics *metrics.Metrics // optional
	Now     func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NormalizeEmail trims surrounding space. Case is preserved, as it always
// has been for stored accounts.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// CreateAccount hashes password and inserts a new account registered today.
// Profile fields supplied up front count towards completion.
func (s *AccountService) CreateAccount(
	ctx context.Context,
	email, name, password string,
	profile domain.ProfileUpdate,
) (domain.Account, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	a := domain.Account{
		Email:            NormalizeEmail(email),
		Name:             strings.TrimSpace(name),
		PasswordHash:     hash,
		RegistrationDate: s.now().Format(domain.DateLayout),
	}
	a.Apply(profile)
	a.ProfileCompleted = a.HasCompleteProfile()

	err = s.Store.Accounts().Create(ctx, a)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		s.countSignup("exists")
		return domain.Account{}, ErrAccountExists
	case err != nil:
		s.countSignup("error")
		return domain.Account{}, err
	}

	s.countSignup("created")
	slogx.FromContext(ctx).Info("account created", "email", a.Email, "profile_completed", a.ProfileCompleted)
	return a, nil
}

// Authenticate returns the account when password matches. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	a, err := s.Store.Accounts().Get(ctx, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		s.countLogin("unknown")
		return domain.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		s.countLogin("error")
		return domain.Account{}, err
	}

	if !cryptox.IsHashed(a.PasswordHash) {
		if err := cryptox.VerifyLegacyPassword(password, a.PasswordHash); err != nil {
			s.countLogin("mismatch")
			return domain.Account{}, ErrInvalidCredentials
		}
		s.upgradeLegacyPassword(ctx, &a, password)
		s.countLogin("ok")
		return a, nil
	}

	if err := cryptox.VerifyPassword(password, a.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			log.Error("stored password hash is malformed", "email", a.Email, "err", err)
		}
		s.countLogin("mismatch")
		return domain.Account{}, ErrInvalidCredentials
	}

	s.countLogin("ok")
	return a, nil
}

// upgradeLegacyPassword replaces a plain-text password with its hash. Login
// still succeeds if the rewrite fails.
func (s *AccountService) upgradeLegacyPassword(ctx context.Context, a *domain.Account, password string) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Warn("rehash legacy password failed", "email", a.Email, "err", err)
		return
	}
	if err := s.Store.Accounts().UpdatePasswordHash(ctx, a.Email, hash); err != nil {
		log.Warn("store rehashed password failed", "email", a.Email, "err", err)
		return
	}
	a.PasswordHash = hash
	log.Info("legacy password rehashed", "email", a.Email)
}

// GetAccount returns store.ErrNotFound for unknown emails.
func (s *AccountService) GetAccount(ctx context.Context, email string) (domain.Account, error) {
	return s.Store.Accounts().Get(ctx, NormalizeEmail(email))
}

// UpdateProfile applies u and returns the account as stored afterwards.
func (s *AccountService) UpdateProfile(
	ctx context.Context,
	email string,
	u domain.ProfileUpdate,
) (domain.Account, error) {
	email = NormalizeEmail(email)
	if err := s.Store.Accounts().UpdateProfile(ctx, email, u); err != nil {
		return domain.Account{}, err
	}
	if !u.IsEmpty() && s.Metrics != nil {
		s.Metrics.ProfileUpdates.Inc()
	}
	return s.Store.Accounts().Get(ctx, email)
}

// IsProfileComplete is false for unknown emails.
func (s *AccountService) IsProfileComplete(ctx context.Context, email string) (bool, error) {
	return s.Store.Accounts().IsProfileComplete(ctx, NormalizeEmail(email))
}

func (s *AccountService) countSignup(result string) {
	if s.Metrics != nil {
		s.Metrics.Signups.WithLabelValues(result).Inc()
	}
}

func (s *AccountService) countLogin(result string) {
	if s.Metrics != nil {
		s.Metrics.Logins.WithLabelValues(result).Inc()
	}
}
