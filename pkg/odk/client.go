package odk

import (
	"context"
	"time"
)

// FormsClient provides access to the forms of a project.
type FormsClient interface {
	// List fetches the forms of a project. Set opts.ExtendedMetadata to
	// request the X-Extended-Metadata representation.
	List(ctx context.Context, projectID int, opts *FormListOptions) ([]Form, error)
}

// SubmissionsClient provides access to form submissions via the OData
// (.svc/Submissions) endpoints.
type SubmissionsClient interface {
	// List fetches the submission envelope for one form, optionally
	// narrowed by server-side OData query params.
	List(ctx context.Context, projectID int, formID string, params *QueryParams) (*SubmissionList, error)

	// ListAll fans out one List call per form ID and concatenates the
	// "value" rows of every form that responded. Per-form failures are
	// logged and skipped; the aggregate order follows the launch order of
	// formIDs, each form's rows in server order.
	ListAll(ctx context.Context, projectID int, formIDs []string, params *QueryParams) ([]map[string]any, error)
}

// DatasetsClient provides access to the entity lists (datasets) of a project.
type DatasetsClient interface {
	List(ctx context.Context, projectID int) ([]Dataset, error)
}

// EntitiesClient manipulates the entities of a dataset.
type EntitiesClient interface {
	// List fetches entity metadata for one dataset.
	List(ctx context.Context, projectID int, dataset string) ([]Entity, error)

	// Create inserts a new entity with a client-generated UUID. The data
	// mapping must contain a "geometry" key; the call fails locally with
	// ErrGeometryRequired before any request is made otherwise.
	Create(ctx context.Context, projectID int, dataset, label string, data map[string]string) (*Entity, error)

	// CreateMany fans out one Create call per label in labelData. Failures
	// are logged and skipped; successes are returned in ascending label
	// order with no placeholder for failed entries.
	CreateMany(ctx context.Context, projectID int, dataset string, labelData map[string]map[string]string) ([]Entity, error)

	// Update patches the label and/or data of an entity. At least one of
	// req.Label and req.Data must be set (ErrNoUpdateFields otherwise).
	// When req.NewVersion is set the PATCH carries baseVersion=NewVersion-1
	// and the server rejects it with a conflict if the entity has moved on;
	// when unset the PATCH carries force=true and overwrites unconditionally.
	Update(ctx context.Context, projectID int, dataset, entityUUID string, req *EntityUpdateRequest) (*Entity, error)

	// Delete soft-deletes (archives) an entity. The returned bool reflects
	// the server's success flag; false with a nil error means the server
	// answered but reported the deletion unsuccessful.
	Delete(ctx context.Context, projectID int, dataset, entityUUID string) (bool, error)

	// Data fetches the flattened per-row entity view from the OData
	// .svc/Entities endpoint.
	Data(ctx context.Context, projectID int, dataset string, params *QueryParams) ([]EntityRow, error)
}

// Client is the full ODK Central client surface.
type Client interface {
	Forms() FormsClient
	Submissions() SubmissionsClient
	Datasets() DatasetsClient
	Entities() EntitiesClient

	// Projects lists the projects visible to the authenticated account.
	Projects(ctx context.Context) ([]Project, error)

	// CurrentUser returns the account behind the current session. Useful as
	// a cheap session sanity check after login.
	CurrentUser(ctx context.Context) (*User, error)

	// Close revokes the server-side session. The client must not be used
	// after Close returns.
	Close(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an odk.Client.
//
// # Authentication
//
// Provide either Email+Password (a session is opened against POST /v1/sessions
// during construction and its bearer token attached to every request) or a
// pre-issued AccessToken. Construction fails eagerly when the session exchange
// fails; there is no retry around authentication itself.
//
// # Timeouts, retries, and TLS
//
// Per-request timeouts should be controlled via the context passed to client
// methods. Retry behavior for transient transport failures can be tuned via
// RetryMax/RetryWaitMin/RetryWaitMax. TLSSkipVerify disables certificate
// verification on the transport; it exists for self-hosted Central instances
// with private certificates and should stay off otherwise.
type Config struct {
	// Endpoint: base URL of the Central server (e.g. "https://central.example.org").
	// odkclient.New normalizes this value by trimming a trailing slash and
	// adding "https://" if no scheme is present. The "/v1" API prefix is
	// appended by the client and must not be included here.
	Endpoint string

	// Email: account email for session authentication.
	Email string
	// Password: account password for session authentication.
	Password string
	// AccessToken: if set, used directly as the Bearer token and no session
	// exchange is performed.
	AccessToken string

	// TLSSkipVerify disables TLS certificate verification.
	TLSSkipVerify bool

	// RetryMax: maximum number of retries for transient failures (>=500,
	// 429, and connection errors). If 0, a sensible default is used.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration

	// ConcurrencyLimit bounds the number of in-flight requests launched by
	// the bulk operations (ListAll, CreateMany). If 0, a default is used.
	ConcurrencyLimit int

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and the
	// bulk aggregators. When nil, skipped bulk failures are silently dropped.
	Logger Logger
	// UserAgent overrides the default User-Agent header sent by the client.
	UserAgent string
}
