package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-exporter/internal/export"
	"github.com/rezonia/invoice-exporter/internal/generator"
	"github.com/rezonia/invoice-exporter/internal/layout"
	"github.com/rezonia/invoice-exporter/internal/model"
)

var (
	exportFormat  string
	exportTimeout time.Duration
	exportScale   int
)

var exportCmd = &cobra.Command{
	Use:   "export [snapshot.json]",
	Short: "Generate export documents from an invoice snapshot",
	Long: `Export reads an invoice snapshot (invoice, client and company profile
as one JSON document) and writes the requested documents to the output
directory.

Formats:
  xml   EHF / PEPPOL BIS Billing 3.0 UBL XML
  pdf   Paginated PDF of the rendered layout
  both  XML and PDF (default)

The XML format requires organisation numbers on both company and client;
the command fails with a validation message when they are missing.

Examples:
  invoice-exporter export invoice.json
  invoice-exporter export invoice.json --format pdf -d out/
  invoice-exporter export invoice.json --format xml --timeout 10s`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "both", "Output format: xml, pdf or both")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", generator.DefaultCaptureTimeout, "Timeout for the render stage")
	exportCmd.Flags().IntVar(&exportScale, "scale", layout.DefaultScale, "Oversampling factor for the rendered layout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}

	formats, err := resolveFormats(exportFormat)
	if err != nil {
		return err
	}

	pipeline := generator.NewPipeline(
		generator.WithCaptureOptions(layout.CaptureOptions{Scale: exportScale}),
		generator.WithCaptureTimeout(exportTimeout),
	)
	exporter := export.NewExporter(outDir)

	ctx := context.Background()
	for _, format := range formats {
		printVerbose("Generating %s for invoice %s...\n", format, snap.Invoice.Number)

		var result *generator.Result
		switch format {
		case generator.FormatXML:
			result = pipeline.GenerateXML(ctx, snap)
		case generator.FormatPDF:
			result = pipeline.GeneratePDF(ctx, snap)
		}
		if result.Error != nil {
			return result.Error
		}

		path, err := exporter.Save(result.Artifact)
		if err != nil {
			return err
		}

		for _, warning := range result.Artifact.Warnings {
			fmt.Fprintln(os.Stderr, "Warning:", warning)
		}
		if format == generator.FormatPDF {
			printVerbose("Pagination: %s, %d page(s)\n", result.Decision, result.Pages)
		}
		fmt.Println(path)
	}
	return nil
}

func resolveFormats(format string) ([]generator.Format, error) {
	switch format {
	case "xml":
		return []generator.Format{generator.FormatXML}, nil
	case "pdf":
		return []generator.Format{generator.FormatPDF}, nil
	case "both":
		return []generator.Format{generator.FormatXML, generator.FormatPDF}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (expected xml, pdf or both)", format)
	}
}

func loadSnapshot(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.Invoice.Number == "" {
		return nil, fmt.Errorf("snapshot has no invoice number")
	}
	if templateName != "" {
		snap.Invoice.Template = model.Template(templateName)
	}
	return &snap, nil
}
