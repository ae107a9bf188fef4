package odkclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
	"github.com/sahana-9314/odk-central-client/pkg/odkclient"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := odkclient.New(context.Background(), nil)
	require.ErrorIs(t, err, odk.ErrConfigRequired)

	_, err = odkclient.New(context.Background(), &odk.Config{})
	require.ErrorIs(t, err, odk.ErrEndpointRequired)
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A trailing slash in the endpoint must not produce "//v1" paths.
		require.Equal(t, "/v1/projects", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c, err := odkclient.NewWithToken(context.Background(), server.URL+"/", "test-token")
	require.NoError(t, err)

	_, err = c.Projects(context.Background())
	require.NoError(t, err)
}

func TestNewDoesNotMutateConfig(t *testing.T) {
	t.Parallel()

	config := &odk.Config{
		Endpoint:    "central.example.org/",
		AccessToken: "test-token",
	}

	_, err := odkclient.New(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, "central.example.org/", config.Endpoint)
}

func TestNewWithPasswordAuthenticates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/sessions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "session-token", "expiresAt": "2099-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	c, err := odkclient.NewWithPassword(context.Background(), server.URL, "admin@example.org", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestNewFromEnv(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "session-token", "expiresAt": "2099-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	t.Setenv(odkclient.EnvURL, server.URL)
	t.Setenv(odkclient.EnvUser, "admin@example.org")
	t.Setenv(odkclient.EnvPassword, "s3cret")
	t.Setenv(odkclient.EnvSecure, "true")

	c, err := odkclient.NewFromEnv(context.Background())
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestNewFromEnvMissingURL(t *testing.T) {
	t.Setenv(odkclient.EnvURL, "")
	t.Setenv(odkclient.EnvUser, "admin@example.org")
	t.Setenv(odkclient.EnvPassword, "s3cret")

	_, err := odkclient.NewFromEnv(context.Background())
	require.ErrorIs(t, err, odk.ErrEndpointRequired)
}

func TestNewFromEnvMissingCredentials(t *testing.T) {
	t.Setenv(odkclient.EnvURL, "https://central.example.org")
	t.Setenv(odkclient.EnvUser, "admin@example.org")
	t.Setenv(odkclient.EnvPassword, "")

	_, err := odkclient.NewFromEnv(context.Background())
	require.ErrorIs(t, err, odk.ErrCredentialsRequired)
}
