package layout

import (
	"context"
	"image"
	"image/color"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"github.com/rezonia/invoice-exporter/internal/model"
)

// Capture defaults
const (
	// DefaultScale is the oversampling multiplier for output sharpness.
	DefaultScale = 2

	// DefaultLogoTimeout bounds the wait for one embedded image.
	DefaultLogoTimeout = 5 * time.Second

	// Logo slot at 1x, top-right of the page content.
	logoMaxWidth  = 160
	logoMaxHeight = 64
	logoTop       = 24
)

// CaptureOptions is the explicit rendering context for one capture.
// Theme and scale are parameters here, never ambient state, so
// concurrent captures cannot interfere.
type CaptureOptions struct {
	// Scale is the integer oversampling multiplier
	Scale int

	// Background is the forced opaque page background. Exports always
	// render light regardless of any live theme preference.
	Background color.NRGBA

	// LogoTimeout bounds each embedded image fetch
	LogoTimeout time.Duration
}

// DefaultCaptureOptions returns the documented default rendering context.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{
		Scale:       DefaultScale,
		Background:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		LogoTimeout: DefaultLogoTimeout,
	}
}

// Result is one captured page-content bitmap.
type Result struct {
	// Image is the oversampled content bitmap
	Image *image.NRGBA

	// Scale is the multiplier the bitmap was rendered at
	Scale int

	// Warnings lists non-fatal capture degradations (missing logo etc.)
	Warnings []string
}

// Capture turns rendered layout markup into a bitmap snapshot.
type Capture struct {
	opts   CaptureOptions
	client *http.Client
}

// NewCapture creates a capture with the given rendering context.
func NewCapture(opts CaptureOptions) *Capture {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.LogoTimeout <= 0 {
		opts.LogoTimeout = DefaultLogoTimeout
	}
	if opts.Background.A == 0 {
		opts.Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return &Capture{
		opts:   opts,
		client: &http.Client{},
	}
}

// Snapshot renders a snapshot through the given layout and rasterizes it.
// The pipeline runs in fixed named stages: render, normalize, contrast,
// rasterize, text, images. A failure in any stage except image fetching aborts
// the capture with a CaptureError; image failures degrade to warnings.
func (c *Capture) Snapshot(ctx context.Context, l Layout, snap *model.Snapshot, width int) (*Result, error) {
	data := BuildRenderData(snap, width)

	svg, err := l.Render(data)
	if err != nil {
		return nil, err
	}

	svg, err = NormalizeStyles(svg)
	if err != nil {
		return nil, err
	}

	if l.Contrast() {
		svg, _, err = ForceLightText(svg)
		if err != nil {
			return nil, err
		}
	}

	raster, err := rasterizeSVG(svg, c.opts.Scale, c.opts.Background)
	if err != nil {
		return nil, err
	}
	if err := drawTexts(raster, svg, c.opts.Scale); err != nil {
		return nil, err
	}
	out := imaging.Clone(raster)

	result := &Result{Image: out, Scale: c.opts.Scale}

	if snap.Company != nil && snap.Company.LogoURL != "" {
		logo, err := c.fetchLogo(ctx, snap.Company.LogoURL)
		if err != nil {
			// A failed or timed-out logo never fails the capture; the
			// bounded wait only guarantees we never snapshot mid-load.
			result.Warnings = append(result.Warnings, "logo omitted: "+err.Error())
		} else {
			result.Image = c.overlayLogo(out, logo, data)
		}
	}

	return result, nil
}

// overlayLogo fits the logo into its slot and composites it top-right.
func (c *Capture) overlayLogo(page *image.NRGBA, logo image.Image, data *RenderData) *image.NRGBA {
	s := c.opts.Scale
	fitted := imaging.Fit(logo, logoMaxWidth*s, logoMaxHeight*s, imaging.Lanczos)
	x := data.Right*s - fitted.Bounds().Dx()
	y := logoTop * s
	return imaging.Overlay(page, fitted, image.Pt(x, y), 1.0)
}

// Background returns the forced page background of this capture context.
func (c *Capture) Background() color.NRGBA {
	return c.opts.Background
}
