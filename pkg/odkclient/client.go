// Package odkclient provides constructors for ODK Central API clients.
package odkclient

import (
	"context"
	"os"
	"strings"

	"github.com/sahana-9314/odk-central-client/internal/client"
	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// Environment variables honored by NewFromEnv.
const (
	EnvURL      = "ODK_CENTRAL_URL"
	EnvUser     = "ODK_CENTRAL_USER"
	EnvPassword = "ODK_CENTRAL_PASSWD"
	EnvSecure   = "ODK_CENTRAL_SECURE"
)

// New creates a new ODK Central client from the given configuration. The
// endpoint is normalized: a trailing slash is trimmed and "https://" is
// assumed when no scheme is present. Authentication happens before New
// returns, so bad credentials or an unreachable server fail here.
func New(ctx context.Context, config *odk.Config) (odk.Client, error) {
	if config == nil {
		return nil, odk.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, odk.ErrEndpointRequired
	}

	normalized := *config
	normalized.Endpoint = normalizeEndpoint(config.Endpoint)

	return client.New(ctx, &normalized)
}

// NewWithPassword creates a client that opens a session with email+password.
func NewWithPassword(ctx context.Context, endpoint, email, password string) (odk.Client, error) {
	return New(ctx, &odk.Config{
		Endpoint: endpoint,
		Email:    email,
		Password: password,
	})
}

// NewWithToken creates a client around a pre-issued session token.
func NewWithToken(ctx context.Context, endpoint, token string) (odk.Client, error) {
	return New(ctx, &odk.Config{
		Endpoint:    endpoint,
		AccessToken: token,
	})
}

// NewFromEnv creates a client from the ODK_CENTRAL_URL, ODK_CENTRAL_USER,
// ODK_CENTRAL_PASSWD, and ODK_CENTRAL_SECURE environment variables.
// ODK_CENTRAL_SECURE defaults to secure when unset; a set value counts as
// secure only when it is "true", "1", or "t" (case-insensitive), and TLS
// certificate verification is disabled otherwise.
func NewFromEnv(ctx context.Context) (odk.Client, error) {
	endpoint := os.Getenv(EnvURL)
	if endpoint == "" {
		return nil, odk.ErrEndpointRequired
	}

	email := os.Getenv(EnvUser)
	password := os.Getenv(EnvPassword)

	if email == "" || password == "" {
		return nil, odk.ErrCredentialsRequired
	}

	return New(ctx, &odk.Config{
		Endpoint:      endpoint,
		Email:         email,
		Password:      password,
		TLSSkipVerify: !secureFromEnv(os.Getenv(EnvSecure)),
	})
}

// secureFromEnv interprets ODK_CENTRAL_SECURE. Unset means secure.
func secureFromEnv(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return true
	}

	switch value {
	case "true", "1", "t":
		return true
	default:
		return false
	}
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")

	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
