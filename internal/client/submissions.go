package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// SubmissionsClient implements the odk.SubmissionsClient interface on top of
// the OData .svc/Submissions endpoints.
type SubmissionsClient struct {
	client *Client
}

// List fetches the submission envelope for one form.
func (c *SubmissionsClient) List(ctx context.Context, projectID int, formID string, params *odk.QueryParams) (*odk.SubmissionList, error) {
	path := projectPath(projectID, "forms") + "/" + url.PathEscape(formID) + ".svc/Submissions"

	resp, err := c.client.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing submissions for form %q: %w", formID, err)
	}

	var list odk.SubmissionList
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("parsing submissions response for form %q: %w", formID, err)
	}

	return &list, nil
}

// ListAll fetches submissions for several forms concurrently and concatenates
// the rows. The fan-out is bounded by the client's concurrency limit. A form
// that fails is logged and skipped; its rows are simply absent from the
// result. Rows appear grouped per form in the order the form IDs were given.
func (c *SubmissionsClient) ListAll(ctx context.Context, projectID int, formIDs []string, params *odk.QueryParams) ([]map[string]any, error) {
	type slot struct {
		list *odk.SubmissionList
		err  error
	}

	results := make([]slot, len(formIDs))

	c.client.runBounded(len(formIDs), func(i int) {
		list, err := c.List(ctx, projectID, formIDs[i], params)
		results[i] = slot{list: list, err: err}
	})

	rows := make([]map[string]any, 0)

	for i, result := range results {
		if result.err != nil {
			c.client.warn("skipping form after failed submission fetch", map[string]interface{}{
				"project": projectID,
				"form":    formIDs[i],
				"error":   result.err.Error(),
			})

			continue
		}

		rows = append(rows, result.list.Value...)
	}

	return rows, nil
}
