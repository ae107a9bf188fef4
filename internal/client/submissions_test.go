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

func TestSubmissionsList(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/projects/1/forms/buildings.svc/Submissions", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("$count"))
		assert.Equal(t, "2", r.URL.Query().Get("$top"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"@odata.context": "$metadata#Submissions",
			"@odata.count": 5,
			"value": [
				{"__id": "uuid:one", "age": "31"},
				{"__id": "uuid:two", "age": "44"}
			]
		}`))
	}))

	params := odk.NewQueryParams().WithTop(2).WithCount()

	list, err := c.Submissions().List(context.Background(), 1, "buildings", params)
	require.NoError(t, err)
	assert.Equal(t, 5, list.Count)
	require.Len(t, list.Value, 2)
	assert.Equal(t, "uuid:one", list.Value[0]["__id"])
}

func TestSubmissionsListNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": 404.1, "message": "Could not find the resource you were looking for."}`))
	}))

	_, err := c.Submissions().List(context.Background(), 1, "missing", nil)
	require.Error(t, err)
	assert.True(t, odk.IsNotFound(err))
}

func TestSubmissionsListAll(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/projects/1/forms/buildings.svc/Submissions":
			_, _ = w.Write([]byte(`{"value": [{"__id": "uuid:b1"}, {"__id": "uuid:b2"}]}`))
		case "/v1/projects/1/forms/waterpoints.svc/Submissions":
			_, _ = w.Write([]byte(`{"value": [{"__id": "uuid:w1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	rows, err := c.Submissions().ListAll(context.Background(), 1, []string{"buildings", "waterpoints"}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Rows are grouped per form in the order the form IDs were given.
	assert.Equal(t, "uuid:b1", rows[0]["__id"])
	assert.Equal(t, "uuid:b2", rows[1]["__id"])
	assert.Equal(t, "uuid:w1", rows[2]["__id"])
}

func TestSubmissionsListAllSkipsFailedForms(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/v1/projects/1/forms/broken.svc/Submissions" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code": 404.1, "message": "Could not find the resource you were looking for."}`))

			return
		}

		_, _ = w.Write([]byte(`{"value": [{"__id": "uuid:ok"}]}`))
	}))
	t.Cleanup(server.Close)

	logger := &recordingLogger{}

	c, err := client.New(context.Background(), &odk.Config{
		Endpoint:    server.URL,
		AccessToken: "test-token",
		Logger:      logger,
	})
	require.NoError(t, err)

	rows, err := c.Submissions().ListAll(context.Background(), 1, []string{"broken", "healthy"}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "uuid:ok", rows[0]["__id"])
	assert.Len(t, logger.Warnings(), 1)
}

func TestSubmissionsListAllEmpty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rows, err := c.Submissions().ListAll(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
