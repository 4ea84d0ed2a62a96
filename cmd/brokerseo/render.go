package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/brokerseo/internal/pipeline"
	"github.com/nao1215/brokerseo/internal/registry"
	"github.com/spf13/cobra"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <slug>",
		Short: "Render one landing page",
		Long: `Render filters and ranks the broker catalog for one page and prints
the generated content.

The page may be given as a slug ("metatrader4-mt4") or as a path
("/brokers/metatrader4-mt4"). Query strings, trailing slashes and case
are ignored.

Examples:
  # Human-readable summary
  brokerseo render metatrader4-mt4

  # Rank by minimum deposit, cheapest first
  brokerseo render low-deposit --sort minDeposit --order asc

  # Full JSON document including JSON-LD structured data
  brokerseo render metatrader4-mt4 --json

  # Markdown page written to a file
  brokerseo render metatrader4-mt4 --markdown -o site/mt4.md`,
		Args: cobra.ExactArgs(1),
		RunE: runRenderCmd,
	}

	addSortFlags(cmd)
	addFormatFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Write the page to the specified file path (creates directories if needed)")

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, args []string) error {
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
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cmd, cfg)

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	cat, reg, err := loadData(cfg)
	if err != nil {
		return err
	}

	page, err := reg.Lookup(args[0])
	if err != nil {
		if errors.Is(err, registry.ErrPageNotFound) {
			return fmt.Errorf("%w (use 'brokerseo pages' to list pages)", err)
		}
		return err
	}

	start := time.Now()
	result, err := pipeline.Render(cmd.Context(), pipelineSettings(cfg, cat, logger), page, cfg.Sort)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", page.Path, err)
	}
	logger.Debug("page rendered",
		"path", page.Path,
		"brokers", len(result.Brokers),
		"elapsed", time.Since(start),
	)

	out, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck // Best effort close after write errors

	if _, err := newWriter(cfg, out).Write(result); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	if outputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outputPath)
	}
	return closeOut()
}
