// Package auth manages session tokens for the ODK Central API.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// TokenManager provides bearer tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid access token, authenticating if necessary.
	GetToken(ctx context.Context) (string, error)

	// RefreshToken forces a new token to be obtained.
	RefreshToken(ctx context.Context) error

	// SetToken manually sets the access token.
	SetToken(token string, expiresAt time.Time)
}

// Token holds an access token and its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the token exists and has not expired. A zero expiry
// means the server did not communicate one and the token is trusted as-is.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Before(t.ExpiresAt)
}

// tokenStore is a concurrency-safe holder for the current token.
type tokenStore struct {
	mu    sync.RWMutex
	token *Token
}

func (s *tokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *tokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// StaticTokenManager serves one fixed token.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a token manager around a pre-issued token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	if m.token == "" {
		return "", odk.ErrNoToken
	}

	return m.token, nil
}

// RefreshToken is a no-op for static tokens.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

// SetToken replaces the static token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}
