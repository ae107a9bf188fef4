package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit bounds the in-flight requests of the bulk
	// fan-out operations.
	DefaultConcurrencyLimit = 8
)

// API layout and headers.
const (
	// APIPrefix is the version prefix every Central endpoint lives under.
	APIPrefix = "/v1"

	// HeaderExtendedMetadata requests the extended representation of a
	// listing endpoint.
	HeaderExtendedMetadata = "X-Extended-Metadata"

	// DefaultUserAgent identifies this client to the server.
	DefaultUserAgent = "odk-central-client/1.0"
)
