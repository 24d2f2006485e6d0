// Package layout renders an invoice snapshot into a bitmap of the invoice
// page content.
//
// A layout template produces SVG markup for the page; capture rasterizes
// that markup at an oversampling multiplier against a forced light
// background, fetches the company logo with a bounded timeout, and hands
// the bitmap to pagination.
package layout

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/rezonia/invoice-exporter/internal/model"
)

//go:embed templates/classic.svg.tmpl
var classicSVG string

//go:embed templates/contrast.svg.tmpl
var contrastSVG string

// Layout renders invoice page markup for one visual template.
type Layout interface {
	// Name returns the template identifier
	Name() model.Template

	// Render produces the SVG page markup for the snapshot data
	Render(data *RenderData) ([]byte, error)

	// Contrast reports whether the layout uses a dark, high-contrast
	// visual style that needs the light-text override before capture.
	Contrast() bool
}

// Registry holds all known layouts
type Registry struct {
	layouts []Layout
}

// NewRegistry creates a registry with all layouts.
// The first entry doubles as the fallback for unknown template identifiers.
func NewRegistry() *Registry {
	return &Registry{
		layouts: []Layout{
			newSVGLayout(model.TemplateClassic, classicSVG, false),
			newSVGLayout(model.TemplateContrast, contrastSVG, true),
		},
	}
}

// Resolve returns the layout for a template identifier, falling back to
// the default layout when the identifier is unknown or empty.
func (r *Registry) Resolve(t model.Template) Layout {
	for _, l := range r.layouts {
		if l.Name() == t {
			return l
		}
	}
	return r.layouts[0]
}

// svgLayout is a Layout backed by an embedded SVG text template.
type svgLayout struct {
	name     model.Template
	tmpl     *template.Template
	contrast bool
}

func newSVGLayout(name model.Template, markup string, contrast bool) *svgLayout {
	return &svgLayout{
		name:     name,
		tmpl:     template.Must(template.New(string(name)).Parse(markup)),
		contrast: contrast,
	}
}

func (l *svgLayout) Name() model.Template { return l.name }

func (l *svgLayout) Contrast() bool { return l.contrast }

func (l *svgLayout) Render(data *RenderData) ([]byte, error) {
	var buf bytes.Buffer
	if err := l.tmpl.Execute(&buf, data); err != nil {
		return nil, model.NewCaptureError("render", "template execution failed", err)
	}
	return buf.Bytes(), nil
}
