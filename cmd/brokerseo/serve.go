package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/brokerseo/internal/catalog"
	"github.com/nao1215/brokerseo/internal/config"
	"github.com/nao1215/brokerseo/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages, brokers, search and the comparison over HTTP",
		Long: `Serve starts a JSON API in front of the catalog and the page registry.

Endpoints:
  GET    /healthz
  GET    /api/pages[?category=...]
  GET    /api/pages/{slug}[?sort=...&order=...]
  GET    /api/brokers[?sort=...&order=...]
  GET    /api/brokers/{id}
  GET    /api/search?q=...[&limit=...]
  GET    /api/compare
  DELETE /api/compare
  POST   /api/compare/{id}
  DELETE /api/compare/{id}

With --watch, edits to the catalog or page files configured in .brokerseo
are picked up without a restart. Embedded data cannot be watched.

Examples:
  brokerseo serve
  brokerseo serve --addr :9000 --watch`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", "", "Listen address (default from config, else "+config.DefaultAddr+")")
	cmd.Flags().BoolP("watch", "w", false, "Reload catalog and page files when they change")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if addr, err := cmd.Flags().GetString("addr"); err != nil {
		return err
	} else if addr != "" {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cmd, cfg)

	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap, err := server.LoadSnapshot(cfg.CatalogPath, cfg.PagesPath)
	if err != nil {
		return err
	}

	backend, err := openSelection(cmd, cfg, logger)
	if err != nil {
		_ = snap.Close() //nolint:errcheck // Startup error takes precedence
		return err
	}
	defer backend.close() //nolint:errcheck // Best effort on shutdown

	srv := server.New(snap, backend.store,
		server.WithLogger(logger),
		server.WithVersion(getVersion()),
		server.WithBaseURL(cfg.BaseURL),
		server.WithDefaultSort(cfg.Sort),
		server.WithUnknownLeverage(cfg.UnknownLeverage),
		server.WithCORSOrigins(cfg.CORSOrigins),
	)
	defer func() {
		if err := srv.Snapshot().Close(); err != nil {
			logger.Warn("failed to close snapshot", "error", err)
		}
	}()

	if watch {
		w, err := startWatcher(ctx, cfg, srv, logger)
		if err != nil {
			return err
		}
		defer w.Close() //nolint:errcheck // Best effort on shutdown
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d brokers and %d pages on http://%s\n",
		snap.Catalog.Len(), snap.Registry.Len(), cfg.Addr)

	return srv.ListenAndServe(ctx, cfg.Addr)
}

// startWatcher reloads the snapshot whenever a data file changes. A file
// that fails to load leaves the current snapshot in place.
func startWatcher(ctx context.Context, cfg *config.Config, srv *server.Server, logger *slog.Logger) (*catalog.Watcher, error) {
	reload := func(path string) {
		next, err := server.LoadSnapshot(cfg.CatalogPath, cfg.PagesPath)
		if err != nil {
			logger.Error("reload failed, keeping current data", "file", path, "error", err)
			return
		}
		srv.Swap(next)
	}

	w, err := catalog.NewWatcher([]string{cfg.CatalogPath, cfg.PagesPath}, reload, catalog.WithWatcherLogger(logger))
	if err != nil {
		if errors.Is(err, catalog.ErrNothingToWatch) {
			return nil, fmt.Errorf("--watch needs catalog or pages paths in the configuration file: %w", err)
		}
		return nil, err
	}
	go w.Run(ctx)
	logger.Info("watching data files", "catalog", cfg.CatalogPath, "pages", cfg.PagesPath)
	return w, nil
}
