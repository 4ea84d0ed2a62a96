package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/brokerseo/internal/catalog"
	"github.com/nao1215/brokerseo/internal/compare"
	"github.com/nao1215/brokerseo/internal/config"
	"github.com/nao1215/brokerseo/internal/report"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command and its subcommands.
// The selection survives between invocations; where it is kept depends on
// the "storage" setting (SQLite database or JSON file in the data directory).
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Manage the broker comparison selection",
		Long: fmt.Sprintf(`Compare keeps a selection of up to %d brokers and shows them side by side.

Running 'brokerseo compare' without a subcommand shows the comparison.

Examples:
  # Select brokers
  brokerseo compare add pepperstone ic-markets xtb

  # Show the comparison table
  brokerseo compare

  # Markdown table for a blog post
  brokerseo compare show --markdown

  # Drop one broker, or start over
  brokerseo compare remove xtb
  brokerseo compare clear`, compare.MaxSelection),
		Args: cobra.NoArgs,
		RunE: runCompareShowCmd,
	}
	addFormatFlags(cmd)

	cmd.AddCommand(newCompareAddCmd())
	cmd.AddCommand(newCompareRemoveCmd())
	cmd.AddCommand(newCompareClearCmd())
	cmd.AddCommand(newCompareListCmd())
	cmd.AddCommand(newCompareShowCmd())

	return cmd
}

func newCompareAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <broker-id>...",
		Short: "Add brokers to the comparison",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCompareAddCmd,
	}
}

func newCompareRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <broker-id>...",
		Aliases: []string{"rm"},
		Short:   "Remove brokers from the comparison",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCompareRemoveCmd,
	}
}

func newCompareClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every broker from the comparison",
		Args:  cobra.NoArgs,
		RunE:  runCompareClearCmd,
	}
}

func newCompareListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the selected broker ids",
		Args:    cobra.NoArgs,
		RunE:    runCompareListCmd,
	}
}

func newCompareShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selected brokers side by side",
		Args:  cobra.NoArgs,
		RunE:  runCompareShowCmd,
	}
	addFormatFlags(cmd)
	return cmd
}

// compareEnv is what every compare subcommand needs.
type compareEnv struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	backend *selectionBackend
	out     io.Writer
}

func openCompareEnv(cmd *cobra.Command) (*compareEnv, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cmd, cfg)

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load broker catalog: %w", err)
	}

	backend, err := openSelection(cmd, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &compareEnv{cfg: cfg, catalog: cat, backend: backend, out: cmd.OutOrStdout()}, nil
}

func (e *compareEnv) Close() error {
	return e.backend.close()
}

// runCompareAddCmd adds each id in order. Unknown ids are reported and
// skipped; a full selection stops further adds.
func runCompareAddCmd(cmd *cobra.Command, args []string) error {
	env, err := openCompareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	var unknown []string
	for _, id := range args {
		b, ok := env.catalog.Get(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		notice, err := env.backend.store.Add(cmd.Context(), b)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.out, notice.Message)
		if notice.Kind == compare.NoticeFull {
			break
		}
	}

	fmt.Fprintf(env.out, "\nSelected %d/%d: %s\n",
		env.backend.store.Len(), compare.MaxSelection, orNone(strings.Join(env.backend.store.IDs(), ", ")))

	if len(unknown) > 0 {
		return fmt.Errorf("unknown broker id(s): %s (use 'brokerseo search' to find ids)", strings.Join(unknown, ", "))
	}
	return nil
}

func runCompareRemoveCmd(cmd *cobra.Command, args []string) error {
	env, err := openCompareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	for _, id := range args {
		if !env.backend.store.IsSelected(id) {
			fmt.Fprintf(env.out, "%s is not in your comparison\n", id)
			continue
		}
		if err := env.backend.store.Remove(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(env.out, "%s removed from your comparison\n", id)
	}
	return nil
}

func runCompareClearCmd(cmd *cobra.Command, _ []string) error {
	env, err := openCompareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.backend.store.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(env.out, "Comparison cleared")
	return nil
}

func runCompareListCmd(cmd *cobra.Command, _ []string) error {
	env, err := openCompareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	for _, id := range env.backend.store.IDs() {
		fmt.Fprintln(env.out, id)
	}
	return nil
}

func runCompareShowCmd(cmd *cobra.Command, _ []string) error {
	env, err := openCompareEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := applyFormatFlags(cmd, env.cfg); err != nil {
		return err
	}
	if err := env.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	brokers, missing := compare.Resolve(env.backend.store.IDs(), env.catalog)
	c := &report.Comparison{Brokers: brokers, Missing: missing, Max: compare.MaxSelection}

	var w report.Writer
	switch {
	case env.cfg.JSONReport:
		w = report.NewJSONWriter(env.out, report.WithPrettyPrint())
	default:
		w = newWriter(env.cfg, env.out)
	}
	_, err = w.WriteComparison(c)
	return err
}
