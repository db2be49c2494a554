package heysdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	ScopeProfileRead  = "profile:read"
	ScopeProfileWrite = "profile:write"
	ScopePredict      = "predict"
)

// Session is an authenticated client for one account.
type Session struct {
	client *SDKClient

	// CheckScopes rejects calls locally when the token lacks a scope the
	// endpoint needs. Turn it off to exercise server-side checks.
	CheckScopes bool

	mu               sync.RWMutex
	accessToken      string
	expiresAt        time.Time
	scopes           map[string]bool
	profileCompleted bool
}

func newSession(client *SDKClient, resp *SessionResponse) *Session {
	return &Session{
		client:           client,
		CheckScopes:      true,
		accessToken:      resp.AccessToken,
		expiresAt:        time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		scopes:           parseScopes(resp.Scope),
		profileCompleted: resp.ProfileCompleted,
	}
}

func parseScopes(scopeStr string) map[string]bool {
	parts := strings.Fields(scopeStr)
	scopes := make(map[string]bool, len(parts))
	for _, scope := range parts {
		scopes[scope] = true
	}
	return scopes
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// ProfileCompleted is the flag as last seen by this session: from login,
// then from any profile read or update.
func (s *Session) ProfileCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileCompleted
}

func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[scope]
}

func (s *Session) checkScopes(required ...string) error {
	if !s.CheckScopes {
		return nil
	}
	for _, scope := range required {
		if !s.HasScope(scope) {
			return fmt.Errorf("session is missing scope %q", scope)
		}
	}
	return nil
}

func (s *Session) setProfileCompleted(v bool) {
	s.mu.Lock()
	s.profileCompleted = v
	s.mu.Unlock()
}

// Me returns the signed-in account.
func (s *Session) Me(ctx context.Context) (*AccountResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil, ScopeProfileRead)
	if err != nil {
		return nil, err
	}

	var acct AccountResponse
	if err := decodeJSON(resp, &acct, http.StatusOK); err != nil {
		return nil, err
	}
	s.setProfileCompleted(acct.ProfileCompleted)
	return &acct, nil
}

// UpdateProfile applies the supplied fields and returns the stored account.
func (s *Session) UpdateProfile(ctx context.Context, req ProfileRequest) (*AccountResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/me/profile", req, ScopeProfileWrite)
	if err != nil {
		return nil, err
	}

	var acct AccountResponse
	if err := decodeJSON(resp, &acct, http.StatusOK); err != nil {
		return nil, err
	}
	s.setProfileCompleted(acct.ProfileCompleted)
	return &acct, nil
}

func (s *Session) ProfileStatus(ctx context.Context) (bool, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me/profile/status", nil, ScopeProfileRead)
	if err != nil {
		return false, err
	}

	var status ProfileStatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return false, err
	}
	s.setProfileCompleted(status.ProfileCompleted)
	return status.ProfileCompleted, nil
}

// Pregnancy returns gestational progress. It fails with ErrorCodeDueDateMissing
// until a due date is set.
func (s *Session) Pregnancy(ctx context.Context) (*PregnancyResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me/pregnancy", nil, ScopeProfileRead)
	if err != nil {
		return nil, err
	}

	var p PregnancyResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Session) PredictMaternalRisk(ctx context.Context, req MaternalRiskRequest) (*PredictionResponse, error) {
	return s.predict(ctx, "/v1/predict/maternal-risk", req)
}

func (s *Session) PredictFetalHealth(ctx context.Context, req FetalHealthRequest) (*PredictionResponse, error) {
	return s.predict(ctx, "/v1/predict/fetal-health", req)
}

func (s *Session) predict(ctx context.Context, path string, req any) (*PredictionResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, req, ScopePredict)
	if err != nil {
		return nil, err
	}

	var p PredictionResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}
