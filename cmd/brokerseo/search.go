package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/brokerseo/internal/report"
	"github.com/nao1215/brokerseo/internal/search"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the broker catalog",
		Long: `Search finds brokers by name, id, regulator, platform, headquarters or
description. Misspelled names still match.

Examples:
  brokerseo search pepperstone
  brokerseo search "cTrader ASIC"
  brokerseo search --limit 3 --json mt5`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearchCmd,
	}

	cmd.Flags().IntP("limit", "n", search.DefaultLimit, "Maximum number of results")
	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	setupLogger(cmd, cfg)

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	cat, _, err := loadData(cfg)
	if err != nil {
		return err
	}
	idx, err := search.NewIndex(cat.Brokers())
	if err != nil {
		return err
	}
	defer idx.Close()

	query := strings.Join(args, " ")
	results, err := idx.Search(query, limit)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			return fmt.Errorf("%w: give a broker name, regulator or platform", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		if results == nil {
			results = []search.Result{}
		}
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(results)
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(out, "No brokers match %q\n", query)
		return nil
	}

	fmt.Fprintf(out, "%d brokers match %q:\n\n", len(results), query)
	fmt.Fprintf(out, "  %-16s  %-36s  %5s  %s\n", "ID", "Name", "Score", "Regulators")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 80))
	for _, r := range results {
		b := r.Broker
		fmt.Fprintf(out, "  %-16s  %-36s  %5.1f  %s\n",
			b.ID, b.Name, b.Score, orNone(strings.Join(b.Regulation.Regulators, ", ")))
	}
	fmt.Fprintln(out, "\nUse 'brokerseo compare add <id>' to add a broker to your comparison.")
	return nil
}
