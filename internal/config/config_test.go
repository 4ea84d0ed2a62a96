package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/brokerseo/internal/filter"
	"github.com/nao1215/brokerseo/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional, so they are pinned here.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the production origin", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://brokeranalysis.com" {
			t.Errorf("expected BaseURL to be 'https://brokeranalysis.com', got '%s'", cfg.BaseURL)
		}
	})

	t.Run("default Sort is score desc", func(t *testing.T) {
		t.Parallel()
		if diff := cmp.Diff(model.DefaultSortSpec(), cfg.Sort); diff != "" {
			t.Errorf("Sort mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("default UnknownLeverage is inclusive", func(t *testing.T) {
		t.Parallel()
		if cfg.UnknownLeverage != filter.UnknownInclusive {
			t.Errorf("expected inclusive policy, got %v", cfg.UnknownLeverage)
		}
	})

	t.Run("default Storage is sqlite", func(t *testing.T) {
		t.Parallel()
		if cfg.Storage != StorageSQLite {
			t.Errorf("expected Storage to be %q, got %q", StorageSQLite, cfg.Storage)
		}
	})

	t.Run("default BatchSize is 8", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 8 {
			t.Errorf("expected BatchSize to be 8, got %d", cfg.BatchSize)
		}
	})

	t.Run("default Addr is loopback", func(t *testing.T) {
		t.Parallel()
		if cfg.Addr != "127.0.0.1:8080" {
			t.Errorf("expected Addr to be '127.0.0.1:8080', got '%s'", cfg.Addr)
		}
	})

	t.Run("default DataDir is the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DataDir != XDGDataDir() {
			t.Errorf("expected DataDir to be %q, got %q", XDGDataDir(), cfg.DataDir)
		}
	})

	t.Run("embedded data is used by default", func(t *testing.T) {
		t.Parallel()
		if cfg.CatalogPath != "" || cfg.PagesPath != "" {
			t.Errorf("expected empty data paths, got %q and %q", cfg.CatalogPath, cfg.PagesPath)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.DataDir = "/tmp/brokerseo"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config returns nil",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "relative base URL is rejected",
			mutate:  func(c *Config) { c.BaseURL = "/brokers" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "ftp base URL is rejected",
			mutate:  func(c *Config) { c.BaseURL = "ftp://example.com" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "zero batch size is rejected",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative batch size is rejected",
			mutate:  func(c *Config) { c.BatchSize = -1 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name: "json and markdown together are rejected",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "unknown storage is rejected",
			mutate:  func(c *Config) { c.Storage = "redis" },
			wantErr: ErrInvalidStorage,
		},
		{
			name:    "file storage is accepted",
			mutate:  func(c *Config) { c.Storage = StorageFile },
			wantErr: nil,
		},
		{
			name:    "empty data dir is rejected",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: ErrEmptyDataDir,
		},
		{
			name:    "empty addr is rejected",
			mutate:  func(c *Config) { c.Addr = "" },
			wantErr: ErrEmptyAddr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelectionFile(t *testing.T) {
	t.Parallel()

	cfg := &Config{DataDir: "/data"}
	want := filepath.Join("/data", "comparison.json")
	if got := cfg.SelectionFile(); got != want {
		t.Errorf("SelectionFile() = %q, want %q", got, want)
	}
}

// writeConfig writes content to a .brokerseo file in a temp directory
// and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "sort: [unterminated")
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})

	t.Run("all fields are decoded", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
baseURL: https://staging.example.com/
catalog: data/brokers.yaml
pages: data/pages.yaml
sort: deposit
order: asc
unknownLeverage: exclusive
storage: file
dataDir: state
batchSize: 4
server:
  addr: 0.0.0.0:9000
  corsOrigins:
    - https://example.com
`)
		got, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}
		want := &File{
			BaseURL:         "https://staging.example.com/",
			Catalog:         "data/brokers.yaml",
			Pages:           "data/pages.yaml",
			Sort:            "deposit",
			Order:           "asc",
			UnknownLeverage: "exclusive",
			Storage:         "file",
			DataDir:         "state",
			BatchSize:       4,
			Server: ServerFile{
				Addr:        "0.0.0.0:9000",
				CORSOrigins: []string{"https://example.com"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("File mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("values override defaults and paths resolve against baseDir", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		f := &File{
			BaseURL:         "https://staging.example.com/",
			Catalog:         "brokers.yaml",
			Pages:           "/abs/pages.yaml",
			Sort:            "spread",
			Order:           "ascending",
			UnknownLeverage: "exclusive",
			Storage:         "FILE",
			DataDir:         "state",
			BatchSize:       2,
			Server:          ServerFile{Addr: ":9000", CORSOrigins: []string{"*"}},
		}
		if err := f.Apply(cfg, "/etc/brokerseo"); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		if cfg.BaseURL != "https://staging.example.com" {
			t.Errorf("BaseURL = %q", cfg.BaseURL)
		}
		if cfg.CatalogPath != filepath.Join("/etc/brokerseo", "brokers.yaml") {
			t.Errorf("CatalogPath = %q", cfg.CatalogPath)
		}
		if cfg.PagesPath != "/abs/pages.yaml" {
			t.Errorf("PagesPath = %q", cfg.PagesPath)
		}
		wantSort := model.SortSpec{Key: model.SortBySpread, Order: model.Ascending}
		if diff := cmp.Diff(wantSort, cfg.Sort); diff != "" {
			t.Errorf("Sort mismatch (-want +got):\n%s", diff)
		}
		if cfg.UnknownLeverage != filter.UnknownExclusive {
			t.Errorf("UnknownLeverage = %v", cfg.UnknownLeverage)
		}
		if cfg.Storage != StorageFile {
			t.Errorf("Storage = %q", cfg.Storage)
		}
		if cfg.DataDir != filepath.Join("/etc/brokerseo", "state") {
			t.Errorf("DataDir = %q", cfg.DataDir)
		}
		if cfg.BatchSize != 2 {
			t.Errorf("BatchSize = %d", cfg.BatchSize)
		}
		if cfg.Addr != ":9000" {
			t.Errorf("Addr = %q", cfg.Addr)
		}
		if diff := cmp.Diff([]string{"*"}, cfg.CORSOrigins); diff != "" {
			t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := (&File{}).Apply(cfg, "/etc"); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
			t.Errorf("Config changed (-want +got):\n%s", diff)
		}
	})

	errTests := []struct {
		name string
		file File
	}{
		{name: "unknown sort key", file: File{Sort: "popularity"}},
		{name: "unknown order", file: File{Order: "sideways"}},
		{name: "unknown leverage policy", file: File{UnknownLeverage: "maybe"}},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.file.Apply(NewConfig(), ""); !errors.Is(err, model.ErrUnknownValue) {
				t.Errorf("expected ErrUnknownValue, got %v", err)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "batchSize: 1\n")
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit file is applied and recorded", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "batchSize: 3\nstorage: file\n")
		cfg := NewConfig()
		if err := Load(cfg, path); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.BatchSize != 3 || cfg.Storage != StorageFile {
			t.Errorf("Load() did not apply file: %+v", cfg)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("ConfigFilePath = %q, want %q", cfg.ConfigFilePath, path)
		}
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()
		err := Load(NewConfig(), filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid value in file is an error", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "sort: popularity\n")
		if err := Load(NewConfig(), path); err == nil {
			t.Error("expected error for unknown sort key")
		}
	})
}
