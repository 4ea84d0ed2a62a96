package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/brokerseo/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/brokerseo.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new brokerseo configuration file",
		Long: `Initialize creates a new .brokerseo configuration file in the current directory.

The generated file documents every setting with its default value:
- Site base URL and data file locations
- Default ranking and the unknown-leverage policy
- Comparison storage backend and data directory
- API server address and CORS origins

Examples:
  # Create .brokerseo in current directory
  brokerseo init

  # Create config file at a specific path
  brokerseo init -o myconfig.yaml

  # Force overwrite existing file
  brokerseo init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/brokerseo.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to point brokerseo at your own data:")
	fmt.Fprintln(out, "  - catalog and pages files (required for serve --watch)")
	fmt.Fprintln(out, "  - baseURL for canonical URLs and the sitemap")
	fmt.Fprintln(out, "  - storage backend for the comparison selection")

	return nil
}
