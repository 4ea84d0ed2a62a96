package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nao1215/brokerseo/internal/catalog"
	"github.com/nao1215/brokerseo/internal/config"
	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/database"
	"github.com/nao1215/brokerseo/internal/model"
	"github.com/nao1215/brokerseo/internal/pipeline"
	"github.com/nao1215/brokerseo/internal/report"
	"github.com/spf13/cobra"
)

// defaultSiteDir is where "brokerseo build" writes pages by default.
const defaultSiteDir = "site"

// sitemapFileName is the sitemap written next to the pages.
const sitemapFileName = "sitemap.xml"

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every page and write the site",
		Long: `Build renders every page of the registry concurrently and writes one
file per page plus a sitemap.xml into the output directory.

A summary of each build (broker counts, averages and a content
fingerprint per page) is stored in the local database so the next build
can report which pages changed. Use 'brokerseo history' to inspect it.

Examples:
  # Write text summaries into ./site
  brokerseo build

  # Write Markdown pages into ./public using 4 workers
  brokerseo build --markdown -o public -b 4

  # Only the platform pages, without touching the database
  brokerseo build --category platforms --no-save`,
		Args: cobra.NoArgs,
		RunE: runBuildCmd,
	}

	cmd.Flags().StringP("output", "o", defaultSiteDir, "Output directory")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize, "Number of pages rendered concurrently")
	cmd.Flags().String("category", "", "Only build pages of this category")
	cmd.Flags().Bool("no-save", false, "Do not record the build in the database")
	addSortFlags(cmd)
	addFormatFlags(cmd)

	return cmd
}

// runBuildCmd executes the build command.
func runBuildCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := applySortFlags(cmd, cfg); err != nil {
		return err
	}
	if err := applyFormatFlags(cmd, cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cmd, cfg)

	outDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return err
	}
	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return err
	}

	cat, reg, err := loadData(cfg)
	if err != nil {
		return err
	}
	pages := reg.Pages()
	if category != "" {
		pages = reg.ByCategory(category)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no pages to build for category %q", category)
	}

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Building %d pages (concurrency: %d)...\n\n", len(pages), cfg.BatchSize)
	start := time.Now()

	results, err := renderSite(ctx, cfg, cat, pages, outDir, out, logger)
	if err != nil {
		return err
	}

	if err := writeSitemap(filepath.Join(outDir, sitemapFileName), pages, cfg.BaseURL, start); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		}
	}
	fmt.Fprintf(out, "\nBuilt %d pages into %s in %s", len(results), outDir, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		fmt.Fprintf(out, " (%d failed)", failed)
	}
	fmt.Fprintln(out)

	if noSave {
		return nil
	}
	return recordBuild(ctx, cfg, cat, results, out, logger)
}

// renderSite renders pages with a BatchProcessor and writes each result
// as soon as it completes. Results are returned in page order.
func renderSite(
	ctx context.Context,
	cfg *config.Config,
	cat *catalog.Catalog,
	pages []model.PageConfig,
	outDir string,
	out io.Writer,
	logger *slog.Logger,
) ([]*model.PageResult, error) {
	settings := pipelineSettings(cfg, cat, logger)
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline { return pipeline.NewPagePipeline(settings) },
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
		pipeline.WithSort(cfg.Sort),
	)

	results := make([]*model.PageResult, len(pages))
	var (
		mu       sync.Mutex
		done     int
		writeErr error
	)
	err := bp.ProcessBatchWithCallback(ctx, pages, func(result *model.PageResult, index int) {
		results[index] = result
		path := filepath.Join(outDir, pageFileName(cfg, result.Config))
		werr := writePageFile(cfg, path, result)

		mu.Lock()
		defer mu.Unlock()
		done++
		switch {
		case werr != nil:
			logger.Error("failed to write page", "path", result.Config.Path, "error", werr)
			if writeErr == nil {
				writeErr = werr
			}
		case result.Error != nil:
			fmt.Fprintf(out, "[%d/%d] FAILED %s: %s\n", done, len(pages), result.Config.Path, result.ErrorMessage)
		default:
			fmt.Fprintf(out, "[%d/%d] %s (%d brokers)\n", done, len(pages), result.Config.Path, len(result.Brokers))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("build interrupted: %w", err)
	}
	if writeErr != nil {
		return nil, writeErr
	}
	return results, nil
}

// pageFileName returns the file name for a page in the chosen format.
func pageFileName(cfg *config.Config, page model.PageConfig) string {
	ext := ".txt"
	switch {
	case cfg.JSONReport:
		ext = ".json"
	case cfg.MarkdownReport:
		ext = ".md"
	}
	return page.Slug() + ext
}

func writePageFile(cfg *config.Config, path string, result *model.PageResult) error {
	f, err := os.Create(path) //nolint:gosec // Path is built from the output directory and a validated slug
	if err != nil {
		return err
	}
	if _, err := newWriter(cfg, f).Write(result); err != nil {
		_ = f.Close() //nolint:errcheck // Write error takes precedence
		return err
	}
	return f.Close()
}

func writeSitemap(path string, pages []model.PageConfig, baseURL string, lastMod time.Time) error {
	f, err := os.Create(path) //nolint:gosec // Path is inside the output directory
	if err != nil {
		return fmt.Errorf("failed to create sitemap: %w", err)
	}
	if err := report.WriteSitemap(f, pages, baseURL, lastMod); err != nil {
		_ = f.Close() //nolint:errcheck // Write error takes precedence
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return f.Close()
}

// newBuild summarizes rendered results for the build history.
func newBuild(cfg *config.Config, cat *catalog.Catalog, results []*model.PageResult) (*database.Build, error) {
	b := &database.Build{
		SortSpec:      cfg.Sort.String(),
		CatalogSource: cat.Source(),
		Pages:         make([]database.PageBuild, 0, len(results)),
	}
	for _, r := range results {
		stats := r.Stats()
		pb := database.PageBuild{
			Path:           r.Config.Path,
			BrokerCount:    stats.TotalBrokers,
			RegulatedCount: stats.RegulatedCount,
			AvgScore:       stats.AvgScore,
			AvgSpread:      stats.AvgSpread,
			MinDeposit:     stats.MinDeposit,
			Error:          r.ErrorMessage,
		}
		for _, br := range r.Brokers {
			pb.BrokerIDs = append(pb.BrokerIDs, br.ID)
		}
		fp, err := content.Fingerprint(r.Content)
		if err != nil {
			return nil, err
		}
		pb.Fingerprint = fp
		b.Pages = append(b.Pages, pb)
	}
	return b, nil
}

// recordBuild stores the build and prints what changed since the last one.
func recordBuild(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, results []*model.PageResult, out io.Writer, logger *slog.Logger) error {
	db, err := database.Open(cfg.DataDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	prev, err := db.LatestBuild(ctx)
	if err != nil {
		return err
	}

	build, err := newBuild(cfg, cat, results)
	if err != nil {
		return err
	}
	if err := db.SaveBuild(ctx, build); err != nil {
		return fmt.Errorf("failed to save build: %w", err)
	}
	logger.Info("build saved to database", "id", build.ID, "db", db.Path())

	printChanges(out, prev, database.DiffBuilds(prev, build))
	return nil
}

// printChanges writes a one-line-per-page change summary. Unchanged pages
// are only counted.
func printChanges(out io.Writer, prev *database.Build, changes []database.PageChange) {
	if prev == nil {
		fmt.Fprintln(out, "\nFirst recorded build.")
		return
	}

	unchanged := 0
	var lines []string
	for _, c := range changes {
		if c.Kind == database.ChangeUnchanged {
			unchanged++
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-9s  %-50s  brokers %+d  score %+.1f", c.Kind, c.Path, c.BrokerDelta, c.ScoreDelta))
	}

	fmt.Fprintf(out, "\nChanges since build #%d (%s):\n", prev.ID, prev.Timestamp.Format("2006-01-02 15:04:05"))
	if len(lines) == 0 {
		fmt.Fprintln(out, "  No pages changed.")
		return
	}
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	fmt.Fprintf(out, "  (%d unchanged)\n", unchanged)
}
