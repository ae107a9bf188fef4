package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sahana-9314/odk-central-client/internal/constants"
	internalhttp "github.com/sahana-9314/odk-central-client/internal/http"
	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// FormsClient implements the odk.FormsClient interface.
type FormsClient struct {
	client *Client
}

// List fetches the forms of a project.
func (c *FormsClient) List(ctx context.Context, projectID int, opts *odk.FormListOptions) ([]odk.Form, error) {
	req := &internalhttp.Request{
		Method: http.MethodGet,
		Path:   projectPath(projectID, "forms"),
	}

	if opts != nil && opts.ExtendedMetadata {
		req.Headers = map[string]string{constants.HeaderExtendedMetadata: "true"}
	}

	resp, err := c.client.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("listing forms: %w", err)
	}

	var forms []odk.Form
	if err := json.Unmarshal(resp.Body, &forms); err != nil {
		return nil, fmt.Errorf("parsing forms response: %w", err)
	}

	return forms, nil
}
