package invoiceexport

import (
	"context"
	"time"

	"github.com/rezonia/invoice-exporter/internal/compliance"
	"github.com/rezonia/invoice-exporter/internal/generator"
	"github.com/rezonia/invoice-exporter/internal/layout"
)

// Document is a generated export document with its delivery metadata.
type Document struct {
	Filename string
	MIME     string
	Content  []byte
	Warnings []string

	// PDF only: how the rendered layout was laid onto pages.
	Pagination string
	Pages      int
}

// ExporterOptions configures document generation.
type ExporterOptions struct {
	// Scale is the oversampling factor for rendered layouts (default: 2)
	Scale int

	// CaptureTimeout bounds the render stage (default: 30s)
	CaptureTimeout time.Duration

	// LogoTimeout bounds fetching the company logo (default: 5s)
	LogoTimeout time.Duration
}

// DefaultExporterOptions returns default exporter options
func DefaultExporterOptions() ExporterOptions {
	return ExporterOptions{
		Scale:          layout.DefaultScale,
		CaptureTimeout: generator.DefaultCaptureTimeout,
		LogoTimeout:    layout.DefaultLogoTimeout,
	}
}

// Exporter generates export documents using the internal pipeline
type Exporter struct {
	pipeline *generator.Pipeline
	options  ExporterOptions
}

// NewExporter creates a new document exporter with the given options
func NewExporter(opts ExporterOptions) *Exporter {
	captureOpts := layout.CaptureOptions{
		Scale:       opts.Scale,
		LogoTimeout: opts.LogoTimeout,
	}

	pipelineOpts := []generator.Option{
		generator.WithCaptureOptions(captureOpts),
	}
	if opts.CaptureTimeout > 0 {
		pipelineOpts = append(pipelineOpts, generator.WithCaptureTimeout(opts.CaptureTimeout))
	}

	return &Exporter{
		pipeline: generator.NewPipeline(pipelineOpts...),
		options:  opts,
	}
}

// NewDefaultExporter creates an exporter with default options
func NewDefaultExporter() *Exporter {
	return NewExporter(DefaultExporterOptions())
}

// GenerateXML produces the EHF XML document for a snapshot.
//
// Returns a PreconditionError when the snapshot is missing data the
// compliance format requires.
func (e *Exporter) GenerateXML(ctx context.Context, snap *Snapshot) (*Document, error) {
	return document(e.pipeline.GenerateXML(ctx, snap))
}

// GeneratePDF produces the paginated PDF document for a snapshot.
func (e *Exporter) GeneratePDF(ctx context.Context, snap *Snapshot) (*Document, error) {
	return document(e.pipeline.GeneratePDF(ctx, snap))
}

// GenerateAll produces both documents. Documents generated before the
// first failure are returned alongside the error.
func (e *Exporter) GenerateAll(ctx context.Context, snap *Snapshot) ([]*Document, error) {
	xmlDoc, err := e.GenerateXML(ctx, snap)
	if err != nil {
		return nil, err
	}

	pdfDoc, err := e.GeneratePDF(ctx, snap)
	if err != nil {
		return []*Document{xmlDoc}, err
	}

	return []*Document{xmlDoc, pdfDoc}, nil
}

// Validate checks the compliance preconditions without generating anything.
func (e *Exporter) Validate(snap *Snapshot) error {
	return compliance.RequireOrgNumbers(snap.Company, &snap.Client)
}

func document(result *generator.Result) (*Document, error) {
	if result.Error != nil {
		return nil, result.Error
	}

	doc := &Document{
		Filename: result.Artifact.Filename,
		MIME:     result.Artifact.MIME,
		Content:  result.Artifact.Content,
		Warnings: result.Artifact.Warnings,
		Pages:    result.Pages,
	}
	if result.Pages > 0 {
		doc.Pagination = result.Decision.String()
	}
	return doc, nil
}
