package main

import (
	"fmt"
	"time"

	"github.com/nao1215/brokerseo/internal/report"
	"github.com/spf13/cobra"
)

// NewSitemapCmd creates the sitemap command.
func NewSitemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Print the XML sitemap of every page",
		Long: `Sitemap prints a sitemaps.org urlset with one entry per registry page.
Pages without their own priority or change frequency get 0.8 and weekly.

Examples:
  brokerseo sitemap
  brokerseo sitemap -o site/sitemap.xml`,
		Args: cobra.NoArgs,
		RunE: runSitemapCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write the sitemap to the specified file path (creates directories if needed)")

	return cmd
}

// runSitemapCmd executes the sitemap command.
func runSitemapCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	setupLogger(cmd, cfg)

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	_, reg, err := loadData(cfg)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck // Best effort close after write errors

	if err := report.WriteSitemap(out, reg.Pages(), cfg.BaseURL, time.Now()); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return closeOut()
}
