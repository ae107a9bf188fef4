package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sahana-9314/odk-central-client/internal/client"
	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// newTestClient starts a stub Central server around handler and returns a
// token-authenticated client pointed at it. The server is closed via t.Cleanup.
func newTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(context.Background(), &odk.Config{
		Endpoint:    server.URL,
		AccessToken: "test-token",
	})
	require.NoError(t, err)

	return c
}

// newSessionTestClient is like newTestClient but authenticates through the
// sessions endpoint with email and password. The handler must serve
// POST /v1/sessions.
func newSessionTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(context.Background(), &odk.Config{
		Endpoint: server.URL,
		Email:    "admin@example.org",
		Password: "s3cret",
	})
	require.NoError(t, err)

	return c
}

type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Debug(_ string, _ map[string]interface{}) {}
func (l *recordingLogger) Info(_ string, _ map[string]interface{})  {}
func (l *recordingLogger) Error(_ string, _ map[string]interface{}) {}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.warnings...)
}
