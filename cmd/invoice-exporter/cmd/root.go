package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outDir       string
	templateName string
)

var rootCmd = &cobra.Command{
	Use:   "invoice-exporter",
	Short: "Generate EHF XML and PDF invoice documents",
	Long: `Invoice Exporter turns validated invoice snapshots into regulated
output documents.

Supports:
  - EHF / PEPPOL BIS Billing 3.0 conformant UBL XML
  - Paginated PDF exports of a rendered invoice layout
  - Layout templates: classic, contrast

Examples:
  # Generate both documents from a snapshot
  invoice-exporter export invoice.json

  # XML only, into a target directory
  invoice-exporter export invoice.json --format xml -d out/

  # Preview the rendered layout as PNG
  invoice-exporter preview invoice.json

  # Run the HTTP API
  invoice-exporter serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out-dir", "d", ".", "Output directory (env: EXPORT_OUT_DIR)")
	rootCmd.PersistentFlags().StringVarP(&templateName, "template", "t", "", "Layout template override (env: EXPORT_TEMPLATE)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Output directory
	if outDir == "." {
		if dir := os.Getenv("EXPORT_OUT_DIR"); dir != "" {
			outDir = dir
		}
	}
	// Template override
	if templateName == "" {
		templateName = os.Getenv("EXPORT_TEMPLATE")
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
