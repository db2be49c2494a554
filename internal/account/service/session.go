package service

import (
	"strings"
	"time"

	"github.com/heymumma/heymumma/internal/account/domain"
	"github.com/heymumma/heymumma/pkg/jwtx"
)

const (
	ScopeProfileRead  = "profile:read"
	ScopeProfileWrite = "profile:write"
	ScopePredict      = "predict"
)

// DefaultScopes are granted to every signed-in account.
var DefaultScopes = []string{ScopeProfileRead, ScopeProfileWrite, ScopePredict}

// Session is what a successful signup or login hands back.
type Session struct {
	AccessToken      string
	TokenType        string
	ExpiresIn        int
	Scope            string
	ProfileCompleted bool
}

type SessionService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	TTL        time.Duration
	Now        func() time.Time
}

// Issue signs a session token for a.
func (s *SessionService) Issue(a domain.Account) (Session, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(a.Email, a.Name, DefaultScopes, ttl, s.Issuer, now)
	token, err := s.KeyManager.Signer().Sign(claims)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken:      token,
		TokenType:        "Bearer",
		ExpiresIn:        int(ttl.Seconds()),
		Scope:            strings.Join(DefaultScopes, " "),
		ProfileCompleted: a.ProfileCompleted,
	}, nil
}
