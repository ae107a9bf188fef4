package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// DatasetsClient implements the odk.DatasetsClient interface.
type DatasetsClient struct {
	client *Client
}

// List fetches the entity lists (datasets) of a project.
func (c *DatasetsClient) List(ctx context.Context, projectID int) ([]odk.Dataset, error) {
	resp, err := c.client.httpClient.Get(ctx, projectPath(projectID, "datasets")+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}

	var datasets []odk.Dataset
	if err := json.Unmarshal(resp.Body, &datasets); err != nil {
		return nil, fmt.Errorf("parsing datasets response: %w", err)
	}

	return datasets, nil
}
