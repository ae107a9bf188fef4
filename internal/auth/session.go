package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sahana-9314/odk-central-client/internal/constants"
	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// defaultSessionClient performs session exchanges when no HTTPClient is
// configured. Opening and revoking sessions are quick calls.
var defaultSessionClient = &http.Client{Timeout: constants.ShortHTTPTimeout}

// SessionConfig configures a SessionTokenManager.
type SessionConfig struct {
	// SessionURL is the full sessions endpoint, e.g.
	// "https://central.example.org/v1/sessions".
	SessionURL string
	// Email and Password are exchanged for the session token.
	Email    string
	Password string
	// HTTPClient performs the exchange. A short-timeout default is used
	// when nil.
	HTTPClient *http.Client
}

// SessionTokenManager exchanges email+password for a Central session token
// and re-authenticates when the session expires.
type SessionTokenManager struct {
	config *SessionConfig
	store  tokenStore
}

// NewSessionTokenManager creates a session-based token manager.
func NewSessionTokenManager(config *SessionConfig) *SessionTokenManager {
	return &SessionTokenManager{config: config}
}

// GetToken returns the current session token, opening a new session if none
// is held or the held one has expired.
func (m *SessionTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	return m.authenticate(ctx)
}

// RefreshToken discards the held session and opens a new one.
func (m *SessionTokenManager) RefreshToken(ctx context.Context) error {
	m.store.Set(nil)

	_, err := m.authenticate(ctx)

	return err
}

// SetToken manually sets the session token.
func (m *SessionTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})
}

// sessionResponse is the body of POST /v1/sessions.
type sessionResponse struct {
	Token     string    `json:"token"`
	CSRF      string    `json:"csrf"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *SessionTokenManager) authenticate(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"email":    m.config.Email,
		"password": m.config.Password,
	})
	if err != nil {
		return "", fmt.Errorf("encoding session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.SessionURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating session request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := m.config.HTTPClient
	if httpClient == nil {
		httpClient = defaultSessionClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("opening session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading session response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("opening session: %w", odk.ParseAPIError(resp.StatusCode, respBody))
	}

	var session sessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return "", fmt.Errorf("parsing session response: %w", err)
	}

	if session.Token == "" {
		return "", fmt.Errorf("parsing session response: %w", odk.ErrNoToken)
	}

	m.store.Set(&Token{AccessToken: session.Token, ExpiresAt: session.ExpiresAt})

	return session.Token, nil
}

// Revoke deletes the current session on the server and forgets the token.
// Revoking without a held token is a no-op.
func (m *SessionTokenManager) Revoke(ctx context.Context) error {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, m.config.SessionURL+"/current", nil)
	if err != nil {
		return fmt.Errorf("creating session delete request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	httpClient := m.config.HTTPClient
	if httpClient == nil {
		httpClient = defaultSessionClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	m.store.Set(nil)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		return fmt.Errorf("revoking session: %w", odk.ParseAPIError(resp.StatusCode, body))
	}

	return nil
}
