package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/brokerseo/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [page]",
		Short: "Show recorded builds",
		Long: `History displays the builds recorded by 'brokerseo build'.

Without arguments it lists recent builds. With a page slug or path it
shows how that page evolved across builds.

Examples:
  # List the last 10 builds
  brokerseo history

  # Show every page of build 3
  brokerseo history --id 3

  # Compare build 3 with build 5
  brokerseo history --id 5 --with 3

  # Show how one page changed over time
  brokerseo history metatrader4-mt4`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum number of builds to list (0 for all)")
	cmd.Flags().Int64P("id", "i", 0, "Show the pages of one build")
	cmd.Flags().Int64("with", 0, "Compare the build given by --id with this build")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cmd, cfg)

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	with, err := cmd.Flags().GetInt64("with")
	if err != nil {
		return err
	}
	if with != 0 && id == 0 {
		return fmt.Errorf("--with requires --id")
	}

	db, err := database.Open(cfg.DataDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case len(args) == 1:
		path := args[0]
		if !strings.HasPrefix(path, "/") {
			if _, reg, err := loadData(cfg); err == nil {
				if page, err := reg.Lookup(path); err == nil {
					path = page.Path
				}
			}
		}
		history, err := db.PageHistory(ctx, path)
		if err != nil {
			return err
		}
		printPageHistory(out, path, history)
		return nil

	case id != 0:
		build, err := db.GetBuild(ctx, id)
		if err != nil {
			return err
		}
		if build == nil {
			return fmt.Errorf("build #%d not found", id)
		}
		if with == 0 {
			printBuild(out, build)
			return nil
		}
		other, err := db.GetBuild(ctx, with)
		if err != nil {
			return err
		}
		if other == nil {
			return fmt.Errorf("build #%d not found", with)
		}
		printChanges(out, other, database.DiffBuilds(other, build))
		return nil

	default:
		builds, err := db.ListBuilds(ctx, limit)
		if err != nil {
			return err
		}
		printBuildList(out, builds)
		return nil
	}
}

func printBuildList(out io.Writer, builds []database.BuildMetadata) {
	if len(builds) == 0 {
		fmt.Fprintln(out, "No builds recorded.")
		fmt.Fprintln(out, "\nUse 'brokerseo build' to render the site and record a build.")
		return
	}

	fmt.Fprintf(out, "Recorded builds (%d):\n\n", len(builds))
	fmt.Fprintf(out, "  %-6s  %-20s  %-16s  %s\n", "ID", "Date", "Sort", "Pages")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 60))
	for _, b := range builds {
		fmt.Fprintf(out, "  %-6d  %-20s  %-16s  %d\n",
			b.ID, b.Timestamp.Format("2006-01-02 15:04:05"), b.SortSpec, b.PageCount)
	}
	fmt.Fprintln(out, "\nUse 'brokerseo history --id <id>' to show a build.")
}

func printBuild(out io.Writer, b *database.Build) {
	fmt.Fprintf(out, "Build #%d  %s  sort: %s  catalog: %s\n\n",
		b.ID, b.Timestamp.Format("2006-01-02 15:04:05"), b.SortSpec, b.CatalogSource)
	fmt.Fprintf(out, "  %-50s  %7s  %9s  %5s  %s\n", "Page", "Brokers", "Regulated", "Score", "Fingerprint")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 96))
	for _, p := range b.Pages {
		if p.Error != "" {
			fmt.Fprintf(out, "  %-50s  error: %s\n", p.Path, p.Error)
			continue
		}
		fmt.Fprintf(out, "  %-50s  %7d  %9d  %5.1f  %s\n",
			p.Path, p.BrokerCount, p.RegulatedCount, p.AvgScore, shortFingerprint(p.Fingerprint))
	}
}

func printPageHistory(out io.Writer, path string, history []database.PageBuild) {
	if len(history) == 0 {
		fmt.Fprintf(out, "No recorded builds include %s\n", path)
		return
	}

	fmt.Fprintf(out, "History of %s (%d builds, newest first):\n\n", path, len(history))
	fmt.Fprintf(out, "  %7s  %5s  %7s  %s\n", "Brokers", "Score", "Spread", "Top brokers")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 60))
	for _, p := range history {
		top := p.BrokerIDs
		if len(top) > 3 {
			top = top[:3]
		}
		fmt.Fprintf(out, "  %7d  %5.1f  %7.1f  %s\n", p.BrokerCount, p.AvgScore, p.AvgSpread, orNone(strings.Join(top, ", ")))
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
