package main

import (
	"fmt"
	"strings"

	"github.com/nao1215/brokerseo/internal/report"
	"github.com/spf13/cobra"
)

// pageListing is the JSON shape of "brokerseo pages --json".
type pageListing struct {
	Path     string `json:"path"`
	Slug     string `json:"slug"`
	Category string `json:"category"`
	Title    string `json:"title"`
}

// NewPagesCmd creates the pages command.
func NewPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List the pages in the page registry",
		Long: `Pages lists every landing page defined in the page registry.

Examples:
  # List all pages
  brokerseo pages

  # List only the deposit pages
  brokerseo pages --category deposit

  # Machine-readable listing
  brokerseo pages --json`,
		Args: cobra.NoArgs,
		RunE: runPagesCmd,
	}

	cmd.Flags().String("category", "", "Only list pages of this category")
	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// runPagesCmd executes the pages command.
func runPagesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cmd, cfg)

	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	_, reg, err := loadData(cfg)
	if err != nil {
		return err
	}

	pages := reg.Pages()
	if category != "" {
		pages = reg.ByCategory(category)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		listing := make([]pageListing, 0, len(pages))
		for _, p := range pages {
			listing = append(listing, pageListing{Path: p.Path, Slug: p.Slug(), Category: p.Category, Title: p.Title})
		}
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(listing)
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(out, "No pages found for category %q\n", category)
		fmt.Fprintf(out, "\nKnown categories: %s\n", strings.Join(reg.Categories(), ", "))
		return nil
	}

	fmt.Fprintf(out, "%d pages:\n\n", len(pages))
	fmt.Fprintf(out, "  %-12s  %-40s  %s\n", "Category", "Slug", "Title")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 80))
	for _, p := range pages {
		fmt.Fprintf(out, "  %-12s  %-40s  %s\n", orNone(p.Category), p.Slug(), p.Title)
	}
	fmt.Fprintln(out, "\nUse 'brokerseo render <slug>' to render a page.")
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
