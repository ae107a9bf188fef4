package odk_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"code": 409.15, "message": "Data has been modified by another user.", "details": {"entity": "aaa-111"}}`)

	apiErr := odk.ParseAPIError(http.StatusConflict, body)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.InEpsilon(t, 409.15, apiErr.Code, 0.001)
	assert.Contains(t, apiErr.Message, "modified by another user")
	assert.Equal(t, "aaa-111", apiErr.Details["entity"])
	assert.Contains(t, apiErr.Error(), "409")
}

func TestParseAPIErrorNonJSONBody(t *testing.T) {
	t.Parallel()

	apiErr := odk.ParseAPIError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	notFound := odk.ParseAPIError(http.StatusNotFound, nil)
	unauthorized := odk.ParseAPIError(http.StatusUnauthorized, nil)
	forbidden := odk.ParseAPIError(http.StatusForbidden, nil)
	conflict := odk.ParseAPIError(http.StatusConflict, nil)

	assert.True(t, odk.IsNotFound(notFound))
	assert.True(t, odk.IsUnauthorized(unauthorized))
	assert.True(t, odk.IsForbidden(forbidden))
	assert.True(t, odk.IsConflict(conflict))

	assert.False(t, odk.IsNotFound(conflict))
	assert.False(t, odk.IsConflict(notFound))
}

func TestStatusHelpersWrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("updating entity: %w", odk.ParseAPIError(http.StatusConflict, nil))
	require.True(t, odk.IsConflict(wrapped))
	assert.False(t, odk.IsConflict(odk.ErrNoToken))
}
