package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// EntitiesClient implements the odk.EntitiesClient interface.
type EntitiesClient struct {
	client *Client
}

// List fetches entity metadata for one dataset.
func (c *EntitiesClient) List(ctx context.Context, projectID int, dataset string) ([]odk.Entity, error) {
	path := projectPath(projectID, "datasets", dataset, "entities")

	resp, err := c.client.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing entities in dataset %q: %w", dataset, err)
	}

	var entities []odk.Entity
	if err := json.Unmarshal(resp.Body, &entities); err != nil {
		return nil, fmt.Errorf("parsing entities response for dataset %q: %w", dataset, err)
	}

	return entities, nil
}

// Create inserts a new entity with a client-generated UUID. The data mapping
// must contain a "geometry" key; missing it fails before any request is made.
func (c *EntitiesClient) Create(ctx context.Context, projectID int, dataset, label string, data map[string]string) (*odk.Entity, error) {
	if _, ok := data["geometry"]; !ok {
		return nil, fmt.Errorf("creating entity %q: %w", label, odk.ErrGeometryRequired)
	}

	body := &odk.EntityCreateRequest{
		UUID:  uuid.NewString(),
		Label: label,
		Data:  data,
	}

	path := projectPath(projectID, "datasets", dataset, "entities")

	resp, err := c.client.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating entity %q: %w", label, err)
	}

	var entity odk.Entity
	if err := json.Unmarshal(resp.Body, &entity); err != nil {
		return nil, fmt.Errorf("parsing entity response for %q: %w", label, err)
	}

	return &entity, nil
}

// CreateMany creates one entity per label concurrently, bounded by the
// client's concurrency limit. Labels are processed in ascending order so
// results are deterministic. A label whose creation fails is logged and
// skipped; successes of the remaining labels are still returned.
func (c *EntitiesClient) CreateMany(ctx context.Context, projectID int, dataset string, labelData map[string]map[string]string) ([]odk.Entity, error) {
	labels := make([]string, 0, len(labelData))
	for label := range labelData {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	type slot struct {
		entity *odk.Entity
		err    error
	}

	results := make([]slot, len(labels))

	c.client.runBounded(len(labels), func(i int) {
		entity, err := c.Create(ctx, projectID, dataset, labels[i], labelData[labels[i]])
		results[i] = slot{entity: entity, err: err}
	})

	entities := make([]odk.Entity, 0, len(labels))

	for i, result := range results {
		if result.err != nil {
			c.client.warn("skipping entity after failed creation", map[string]interface{}{
				"project": projectID,
				"dataset": dataset,
				"label":   labels[i],
				"error":   result.err.Error(),
			})

			continue
		}

		entities = append(entities, *result.entity)
	}

	return entities, nil
}

// Update patches the label and/or data of an entity. With req.NewVersion set
// the PATCH carries baseVersion=NewVersion-1 and a concurrent writer surfaces
// as a 409; without it the update is forced.
func (c *EntitiesClient) Update(ctx context.Context, projectID int, dataset, entityUUID string, req *odk.EntityUpdateRequest) (*odk.Entity, error) {
	if req == nil || (req.Label == "" && req.Data == nil) {
		return nil, fmt.Errorf("updating entity %q: %w", entityUUID, odk.ErrNoUpdateFields)
	}

	query := url.Values{}
	if req.NewVersion != nil {
		query.Set("baseVersion", strconv.Itoa(*req.NewVersion-1))
	} else {
		query.Set("force", "true")
	}

	path := projectPath(projectID, "datasets", dataset, "entities", entityUUID)

	resp, err := c.client.httpClient.PatchWithQuery(ctx, path, query, req)
	if err != nil {
		return nil, fmt.Errorf("updating entity %q: %w", entityUUID, err)
	}

	var entity odk.Entity
	if err := json.Unmarshal(resp.Body, &entity); err != nil {
		return nil, fmt.Errorf("parsing entity response for %q: %w", entityUUID, err)
	}

	return &entity, nil
}

// Delete soft-deletes an entity and reports the server's success flag.
func (c *EntitiesClient) Delete(ctx context.Context, projectID int, dataset, entityUUID string) (bool, error) {
	path := projectPath(projectID, "datasets", dataset, "entities", entityUUID)

	resp, err := c.client.httpClient.Delete(ctx, path)
	if err != nil {
		return false, fmt.Errorf("deleting entity %q: %w", entityUUID, err)
	}

	var result struct {
		Success bool `json:"success"`
	}

	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return false, fmt.Errorf("parsing delete response for %q: %w", entityUUID, err)
	}

	return result.Success, nil
}

// Data fetches the flattened per-row entity view from the OData .svc/Entities
// endpoint.
func (c *EntitiesClient) Data(ctx context.Context, projectID int, dataset string, params *odk.QueryParams) ([]odk.EntityRow, error) {
	path := projectPath(projectID, "datasets") + "/" + url.PathEscape(dataset) + ".svc/Entities"

	resp, err := c.client.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("fetching entity data for dataset %q: %w", dataset, err)
	}

	var envelope odk.EntityRowEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing entity data response for dataset %q: %w", dataset, err)
	}

	return envelope.Value, nil
}
