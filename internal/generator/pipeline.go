// Package generator orchestrates document generation as a sequence of
// named stages.
//
// Each invocation builds its own tree and its own bitmaps, so independent
// concurrent calls never share mutable state. A failure in any stage
// aborts the rest and surfaces exactly one terminal error; no partial
// artifact ever reaches the exporter.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/rezonia/invoice-exporter/internal/compliance"
	"github.com/rezonia/invoice-exporter/internal/ehf"
	"github.com/rezonia/invoice-exporter/internal/export"
	"github.com/rezonia/invoice-exporter/internal/layout"
	"github.com/rezonia/invoice-exporter/internal/model"
	"github.com/rezonia/invoice-exporter/internal/paginate"
)

// Format selects an output artifact type
type Format string

// Supported output formats
const (
	FormatXML Format = "xml"
	FormatPDF Format = "pdf"
)

// xmlLabel is the fixed secondary filename segment for the XML artifact;
// the PDF artifact uses the customer name instead.
const xmlLabel = "ehf"

// DefaultCaptureTimeout is the budget for the capture stage.
const DefaultCaptureTimeout = 30 * time.Second

// Result holds the outcome of one generation call
type Result struct {
	// Artifact is the finished document, nil on error
	Artifact *export.Artifact

	// Decision is the pagination outcome (PDF path only)
	Decision paginate.Decision

	// Pages is the physical page count (PDF path only)
	Pages int

	// Error is the single terminal failure, if any
	Error error
}

// Pipeline generates invoice documents
type Pipeline struct {
	registry       *layout.Registry
	capture        *layout.Capture
	captureTimeout time.Duration
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithCaptureOptions sets the rendering context for the PDF path
func WithCaptureOptions(opts layout.CaptureOptions) Option {
	return func(p *Pipeline) {
		p.capture = layout.NewCapture(opts)
	}
}

// WithCaptureTimeout sets the capture stage budget
func WithCaptureTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.captureTimeout = d
	}
}

// NewPipeline creates a generation pipeline with default options
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:       layout.NewRegistry(),
		capture:        layout.NewCapture(layout.DefaultCaptureOptions()),
		captureTimeout: DefaultCaptureTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// stage is one named step with its own timeout budget.
type stage struct {
	name    string
	timeout time.Duration
	run     func(ctx context.Context) error
}

// runStages executes stages sequentially, stopping at the first failure
// or context cancellation.
func runStages(ctx context.Context, stages []stage) error {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("generation aborted before %s stage: %w", s.name, err)
		}
		if s.timeout > 0 {
			stageCtx, cancel := context.WithTimeout(ctx, s.timeout)
			err := s.run(stageCtx)
			cancel()
			if err != nil {
				return err
			}
			continue
		}
		if err := s.run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// GenerateXML produces the EHF interchange document for a snapshot.
func (p *Pipeline) GenerateXML(ctx context.Context, snap *model.Snapshot) *Result {
	var content string

	err := runStages(ctx, []stage{
		{name: "precondition", run: func(context.Context) error {
			return compliance.RequireOrgNumbers(snap.Company, &snap.Client)
		}},
		{name: "generate", run: func(context.Context) error {
			var err error
			content, err = ehf.Generate(snap)
			return err
		}},
	})
	if err != nil {
		return &Result{Error: err}
	}

	return &Result{
		Artifact: &export.Artifact{
			Filename: export.Filename(snap.Invoice.Number, xmlLabel, snap.Invoice.IssueDate, "xml"),
			MIME:     "application/xml",
			Content:  []byte(content),
		},
	}
}

// GeneratePDF produces the paginated raster document for a snapshot.
func (p *Pipeline) GeneratePDF(ctx context.Context, snap *model.Snapshot) *Result {
	l := p.registry.Resolve(snap.Invoice.Template)
	width := paginate.UsableWidth()

	result := &Result{}
	var (
		captured *layout.Result
		content  []byte
	)

	err := runStages(ctx, []stage{
		{name: "capture", timeout: p.captureTimeout, run: func(ctx context.Context) error {
			var err error
			captured, err = p.capture.Snapshot(ctx, l, snap, width)
			return err
		}},
		{name: "paginate", run: func(context.Context) error {
			_, usableH := paginate.UsableSize(captured.Scale)
			result.Decision = paginate.Decide(captured.Image.Bounds().Dy(), usableH)
			pages, err := paginate.Paginate(captured.Image, captured.Scale, p.capture.Background())
			if err != nil {
				return err
			}
			result.Pages = len(pages)
			content, err = export.AssemblePDF(pages)
			return err
		}},
	})
	if err != nil {
		return &Result{Error: err}
	}

	result.Artifact = &export.Artifact{
		Filename: export.Filename(snap.Invoice.Number, snap.Client.Name, snap.Invoice.IssueDate, "pdf"),
		MIME:     "application/pdf",
		Content:  content,
		Warnings: captured.Warnings,
	}
	return result
}
