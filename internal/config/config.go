package config

import (
	"net/url"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/filter"
	"github.com/nao1215/brokerseo/internal/model"
)

// Storage backends for the comparison selection.
const (
	// StorageSQLite keeps the selection in the local_storage table of the
	// SQLite database in DataDir.
	StorageSQLite = "sqlite"

	// StorageFile keeps the selection in a JSON file in DataDir.
	StorageFile = "file"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "brokerseo"

	// DefaultBatchSize is the number of pages rendered concurrently by
	// "brokerseo build". Rendering is CPU-bound and cheap, so a handful of
	// workers saturates most machines.
	DefaultBatchSize = 8

	// DefaultAddr is the API server listen address. Loopback only, so
	// "brokerseo serve" is never exposed by accident.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultStorage is the default selection backend.
	DefaultStorage = StorageSQLite

	// SelectionFileName is the file used by the file storage backend.
	SelectionFileName = "comparison.json"
)

// Config holds all configuration options for brokerseo.
// This struct is populated from defaults, the optional .brokerseo file and
// CLI flags (in that order), then passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ServerConfig, BuildConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the site origin used for canonical URLs, breadcrumbs,
	// structured data and the sitemap. No trailing slash.
	BaseURL string

	// CatalogPath is the broker catalog YAML file.
	// Empty means the catalog embedded in the binary.
	CatalogPath string

	// PagesPath is the page registry YAML file.
	// Empty means the registry embedded in the binary.
	PagesPath string

	// Sort is the default ranking for rendered pages.
	Sort model.SortSpec

	// UnknownLeverage decides whether brokers whose maximum leverage cannot
	// be parsed pass a leverage filter (inclusive) or fail it (exclusive).
	UnknownLeverage filter.Policy

	// Storage selects the comparison selection backend: "sqlite" or "file".
	Storage string

	// DataDir holds the SQLite database and the selection file.
	// Defaults to the XDG data directory (~/.local/share/brokerseo on Linux).
	DataDir string

	// BatchSize is the number of pages rendered concurrently by build.
	BatchSize int

	// Addr is the API server listen address in "host:port" form.
	Addr string

	// CORSOrigins are the origins allowed to call the API from a browser.
	// Empty allows any origin.
	CORSOrigins []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON switches the log output to JSON lines.
	LogJSON bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .brokerseo in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON output instead of human-readable text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output instead of human-readable text.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (sort order, batch size,
// address). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:         content.DefaultBaseURL,
		Sort:            model.DefaultSortSpec(),
		UnknownLeverage: filter.UnknownInclusive,
		Storage:         DefaultStorage,
		DataDir:         XDGDataDir(),
		BatchSize:       DefaultBatchSize,
		Addr:            DefaultAddr,
	}
}

// XDGDataDir returns the XDG data directory for brokerseo.
// On Linux: ~/.local/share/brokerseo
// On macOS: ~/Library/Application Support/brokerseo
// On Windows: %LOCALAPPDATA%\brokerseo
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for brokerseo.
// On Linux: ~/.config/brokerseo
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// SelectionFile returns the path used by the file storage backend.
func (c *Config) SelectionFile() string {
	return filepath.Join(c.DataDir, SelectionFileName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Storage != StorageSQLite && c.Storage != StorageFile {
		return ErrInvalidStorage
	}

	if c.DataDir == "" {
		return ErrEmptyDataDir
	}

	if c.Addr == "" {
		return ErrEmptyAddr
	}

	return nil
}
