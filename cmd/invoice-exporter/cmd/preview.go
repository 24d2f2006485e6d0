package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-exporter/internal/export"
	"github.com/rezonia/invoice-exporter/internal/layout"
	"github.com/rezonia/invoice-exporter/internal/paginate"
)

var previewScale int

var previewCmd = &cobra.Command{
	Use:   "preview [snapshot.json]",
	Short: "Render the invoice layout as a single PNG",
	Long: `Preview renders the invoice layout and writes it as one PNG image,
without pagination. Useful for checking a template before exporting.

Examples:
  invoice-exporter preview invoice.json
  invoice-exporter preview invoice.json -t contrast -d out/`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewScale, "scale", layout.DefaultScale, "Oversampling factor for the rendered layout")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}

	registry := layout.NewRegistry()
	capture := layout.NewCapture(layout.CaptureOptions{Scale: previewScale})

	printVerbose("Rendering %s layout for invoice %s...\n", snap.Invoice.Template, snap.Invoice.Number)
	result, err := capture.Snapshot(context.Background(), registry.Resolve(snap.Invoice.Template), snap, paginate.UsableWidth())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result.Image); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	artifact := &export.Artifact{
		Filename: export.Filename(snap.Invoice.Number, "preview", snap.Invoice.IssueDate, "png"),
		MIME:     "image/png",
		Content:  buf.Bytes(),
		Warnings: result.Warnings,
	}
	path, err := export.NewExporter(outDir).Save(artifact)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(os.Stderr, "Warning:", warning)
	}
	fmt.Println(path)
	return nil
}
