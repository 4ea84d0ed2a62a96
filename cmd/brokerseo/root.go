package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for brokerseo.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brokerseo",
		Short: "Forex broker landing page generator",
		Long: `brokerseo generates SEO landing pages for forex brokers.

Each page is driven by a filter specification from the page registry. The
matching brokers are ranked, summarized and turned into page copy, FAQs and
JSON-LD structured data. The embedded broker catalog and page registry are
used unless a .brokerseo configuration file points somewhere else.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .brokerseo in current or home directory)")
	cmd.PersistentFlags().String("data-dir", "",
		"Directory for the database and selection file (default: XDG data directory)")

	// Add subcommands
	cmd.AddCommand(NewPagesCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewSitemapCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
