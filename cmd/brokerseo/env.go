package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/brokerseo/internal/catalog"
	"github.com/nao1215/brokerseo/internal/compare"
	"github.com/nao1215/brokerseo/internal/config"
	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/database"
	"github.com/nao1215/brokerseo/internal/log"
	"github.com/nao1215/brokerseo/internal/model"
	"github.com/nao1215/brokerseo/internal/pipeline"
	"github.com/nao1215/brokerseo/internal/registry"
	"github.com/nao1215/brokerseo/internal/report"
	"github.com/spf13/cobra"
)

// buildConfig creates a Config from defaults, the configuration file and
// the global flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if err := config.Load(cfg, configPath); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}

	dataDir, err := flags.GetString("data-dir")
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	return cfg, nil
}

// applySortFlags overrides cfg.Sort with --sort and --order when set.
func applySortFlags(cmd *cobra.Command, cfg *config.Config) error {
	if s, err := cmd.Flags().GetString("sort"); err != nil {
		return err
	} else if s != "" {
		key, err := model.ParseSortKey(s)
		if err != nil {
			return err
		}
		cfg.Sort.Key = key
	}
	if s, err := cmd.Flags().GetString("order"); err != nil {
		return err
	} else if s != "" {
		order, err := model.ParseSortOrder(s)
		if err != nil {
			return err
		}
		cfg.Sort.Order = order
	}
	return nil
}

// addSortFlags registers --sort and --order.
func addSortFlags(cmd *cobra.Command) {
	cmd.Flags().String("sort", "",
		"Ranking key: score, minDeposit, spread or name (default from config, else score)")
	cmd.Flags().String("order", "",
		"Ranking direction: asc or desc (default from config, else desc)")
}

// addFormatFlags registers --json and --markdown.
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
}

// applyFormatFlags copies --json and --markdown into cfg.
func applyFormatFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	return nil
}

// setupLogger creates the process logger and installs it as the default.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := log.New(cmd.ErrOrStderr(), log.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.LogJSON,
		App:     config.AppName,
	})
	slog.SetDefault(logger)
	return logger
}

// loadData loads the broker catalog and the page registry named by cfg.
func loadData(cfg *config.Config) (*catalog.Catalog, *registry.Registry, error) {
	c, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load broker catalog: %w", err)
	}
	r, err := registry.LoadFile(cfg.PagesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load page registry: %w", err)
	}
	return c, r, nil
}

// pipelineSettings returns the render settings derived from cfg.
func pipelineSettings(cfg *config.Config, src pipeline.BrokerSource, logger *slog.Logger) pipeline.Settings {
	return pipeline.Settings{
		Source:          src,
		UnknownLeverage: cfg.UnknownLeverage,
		Content:         []content.Option{content.WithBaseURL(cfg.BaseURL)},
		Logger:          logger,
	}
}

// newWriter returns the report writer selected by cfg.
func newWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(out, getVersion(), cfg.BaseURL, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}

// openOutput returns the destination for a report: path when set,
// otherwise the command's stdout. The returned close function is never nil.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // Output path is chosen by the user
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// selectionBackend is an opened comparison store plus whatever must be
// closed when the command ends.
type selectionBackend struct {
	store *compare.Store
	close func() error
}

// openSelection opens the comparison store using the backend named by
// cfg.Storage.
func openSelection(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*selectionBackend, error) {
	ctx := cmd.Context()

	switch cfg.Storage {
	case config.StorageFile:
		p := compare.NewFilePersister(cfg.SelectionFile())
		return &selectionBackend{
			store: compare.NewStore(ctx, p, compare.WithLogger(logger)),
			close: func() error { return nil },
		}, nil
	default:
		db, err := database.Open(cfg.DataDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		p := compare.NewStoragePersister(db, "")
		return &selectionBackend{
			store: compare.NewStore(ctx, p, compare.WithLogger(logger)),
			close: db.Close,
		}, nil
	}
}
