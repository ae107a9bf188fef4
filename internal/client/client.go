// Package client implements the ODK Central API client.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/sahana-9314/odk-central-client/internal/auth"
	"github.com/sahana-9314/odk-central-client/internal/constants"
	internalhttp "github.com/sahana-9314/odk-central-client/internal/http"
	"github.com/sahana-9314/odk-central-client/pkg/odk"
)

// Client is the main API client implementation.
type Client struct {
	config         *odk.Config
	httpClient     *internalhttp.Client
	sessionManager *auth.SessionTokenManager
	logger         odk.Logger
	concurrency    int

	mu     sync.Mutex
	closed bool

	forms       *FormsClient
	submissions *SubmissionsClient
	datasets    *DatasetsClient
	entities    *EntitiesClient
}

// New creates a new API client and authenticates it eagerly: for
// email+password configs a session is opened against the server before New
// returns, so an invalid endpoint or bad credentials fail here rather than
// on the first request.
func New(ctx context.Context, config *odk.Config) (*Client, error) {
	if config == nil {
		return nil, odk.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, odk.ErrEndpointRequired
	}

	var (
		tokenManager   auth.TokenManager
		sessionManager *auth.SessionTokenManager
		sessionConfig  *auth.SessionConfig
	)

	switch {
	case config.AccessToken != "":
		tokenManager = auth.NewStaticTokenManager(config.AccessToken)
	case config.Email != "" && config.Password != "":
		sessionConfig = &auth.SessionConfig{
			SessionURL: config.Endpoint + constants.APIPrefix + "/sessions",
			Email:      config.Email,
			Password:   config.Password,
		}
		sessionManager = auth.NewSessionTokenManager(sessionConfig)
		tokenManager = sessionManager
	default:
		return nil, odk.ErrCredentialsRequired
	}

	opts := []internalhttp.Option{
		internalhttp.WithTLSSkipVerify(config.TLSSkipVerify),
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
		opts = append(opts, internalhttp.WithDebug(config.Debug))
	}

	if config.RetryMax > 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	httpClient := internalhttp.NewClient(config.Endpoint, tokenManager, opts...)

	if sessionConfig != nil {
		// Session exchange shares the transport so TLS settings apply.
		sessionConfig.HTTPClient = httpClient.HTTPClient()
	}

	concurrency := config.ConcurrencyLimit
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	client := &Client{
		config:         config,
		httpClient:     httpClient,
		sessionManager: sessionManager,
		logger:         config.Logger,
		concurrency:    concurrency,
	}

	client.forms = &FormsClient{client: client}
	client.submissions = &SubmissionsClient{client: client}
	client.datasets = &DatasetsClient{client: client}
	client.entities = &EntitiesClient{client: client}

	if _, err := tokenManager.GetToken(ctx); err != nil {
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	return client, nil
}

// Forms returns the forms client.
func (c *Client) Forms() odk.FormsClient {
	return c.forms
}

// Submissions returns the submissions client.
func (c *Client) Submissions() odk.SubmissionsClient {
	return c.submissions
}

// Datasets returns the datasets client.
func (c *Client) Datasets() odk.DatasetsClient {
	return c.datasets
}

// Entities returns the entities client.
func (c *Client) Entities() odk.EntitiesClient {
	return c.entities
}

// Projects lists the projects visible to the authenticated account.
func (c *Client) Projects(ctx context.Context) ([]odk.Project, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPrefix+"/projects", nil)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var projects []odk.Project
	if err := json.Unmarshal(resp.Body, &projects); err != nil {
		return nil, fmt.Errorf("parsing projects response: %w", err)
	}

	return projects, nil
}

// CurrentUser returns the account behind the current session.
func (c *Client) CurrentUser(ctx context.Context) (*odk.User, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPrefix+"/users/current", nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	var user odk.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// Close revokes the server-side session. Closing twice returns
// odk.ErrSessionClosed.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return odk.ErrSessionClosed
	}

	c.closed = true
	c.mu.Unlock()

	if c.sessionManager == nil {
		return nil
	}

	if err := c.sessionManager.Revoke(ctx); err != nil {
		return fmt.Errorf("closing session: %w", err)
	}

	return nil
}

// warn logs through the configured logger, if any.
func (c *Client) warn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}

// runBounded invokes fn for every index in [0, n) with at most c.concurrency
// invocations in flight, and blocks until all are done. Results are
// communicated through the closure, keyed by index, so callers preserve
// launch order regardless of completion order.
func (c *Client) runBounded(n int, fn func(i int)) {
	sem := make(chan struct{}, c.concurrency)

	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			fn(i)
		}(i)
	}

	wg.Wait()
}

// projectPath builds a project-scoped API path from escaped segments.
func projectPath(projectID int, segments ...string) string {
	path := fmt.Sprintf("%s/projects/%d", constants.APIPrefix, projectID)
	for _, segment := range segments {
		path += "/" + url.PathEscape(segment)
	}

	return path
}
