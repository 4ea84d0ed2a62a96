package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and File.Apply() and
// provide specific information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no page is ever rendered.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute
	// http(s) URL. Canonical URLs and the sitemap are built from it.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrInvalidStorage is returned for an unknown selection storage backend.
	ErrInvalidStorage = errors.New("invalid storage: must be \"sqlite\" or \"file\"")

	// ErrEmptyAddr is returned when the server address is empty.
	ErrEmptyAddr = errors.New("invalid server address: must not be empty")

	// ErrEmptyDataDir is returned when no data directory is configured.
	ErrEmptyDataDir = errors.New("invalid data directory: must not be empty")
)
