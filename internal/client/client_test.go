package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahana-9314/odk-central-client/internal/client"
	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := client.New(context.Background(), nil)
	require.ErrorIs(t, err, odk.ErrConfigRequired)

	_, err = client.New(context.Background(), &odk.Config{})
	require.ErrorIs(t, err, odk.ErrEndpointRequired)

	_, err = client.New(context.Background(), &odk.Config{Endpoint: "https://central.example.org"})
	require.ErrorIs(t, err, odk.ErrCredentialsRequired)
}

func TestNewAuthenticatesEagerly(t *testing.T) {
	t.Parallel()

	logins := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/sessions", r.URL.Path)

		logins++

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token": "session-token", "expiresAt": "2099-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	_, err := client.New(context.Background(), &odk.Config{
		Endpoint: server.URL,
		Email:    "admin@example.org",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logins)
}

func TestNewBadCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": 401.2, "message": "Could not authenticate with the provided credentials."}`))
	}))
	defer server.Close()

	_, err := client.New(context.Background(), &odk.Config{
		Endpoint: server.URL,
		Email:    "admin@example.org",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, odk.IsUnauthorized(err))
}

func TestRequestsCarryBearerToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := c.Projects(context.Background())
	require.NoError(t, err)
}

func TestProjects(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/projects", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Field Mapping", "archived": false, "createdAt": "2024-01-01T00:00:00Z"},
			{"id": 2, "name": "Archive", "archived": true, "createdAt": "2024-02-01T00:00:00Z"}
		]`))
	}))

	projects, err := c.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Field Mapping", projects[0].Name)
	assert.True(t, projects[1].Archived)
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/users/current", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42, "type": "user", "email": "admin@example.org", "displayName": "Admin", "createdAt": "2024-01-01T00:00:00Z"}`))
	}))

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, user.ID)
	assert.Equal(t, "admin@example.org", user.Email)
}

func TestCloseRevokesSession(t *testing.T) {
	t.Parallel()

	revoked := false
	c := newSessionTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/sessions":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token": "session-token", "expiresAt": "2099-01-01T00:00:00Z"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/sessions/current":
			revoked = true

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	require.NoError(t, c.Close(context.Background()))
	assert.True(t, revoked)

	err := c.Close(context.Background())
	require.ErrorIs(t, err, odk.ErrSessionClosed)
}

func TestCloseWithStaticToken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No session to revoke; Close only marks the client closed.
	require.NoError(t, c.Close(context.Background()))
	require.ErrorIs(t, c.Close(context.Background()), odk.ErrSessionClosed)
}
