// Package paginate decides how captured invoice content maps onto
// physical pages and assembles the final page bitmaps.
//
// One decision drives everything, given content height H and usable page
// height P: fit naturally, shrink slightly onto one page, or slice across
// several. The scaled middle band exists so a short overflow never splits
// footer or payment content across a page boundary.
package paginate

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/rezonia/invoice-exporter/internal/model"
)

// Physical page constants: A4 portrait with fixed margins at a 96 dpi
// base. These are documented output contract values, not tunables.
const (
	PageWidthMM  = 210
	PageHeightMM = 297
	MarginMM     = 10
	BaseDPI      = 96

	mmPerInch = 25.4

	// ScaleThreshold is the overflow band, relative to P, inside which
	// content is shrunk onto a single page instead of sliced.
	ScaleThreshold = 1.5
)

// Decision is the pagination outcome for one content bitmap.
type Decision int

// Pagination decisions
const (
	// SinglePage places content at natural scale from the top margin
	SinglePage Decision = iota

	// ScaledPage downscales uniformly so content height equals exactly P
	ScaledPage

	// MultiPage slices content across consecutive pages
	MultiPage
)

func (d Decision) String() string {
	switch d {
	case SinglePage:
		return "single"
	case ScaledPage:
		return "scaled"
	case MultiPage:
		return "multi"
	}
	return "unknown"
}

func mmToPx(mm float64, scale int) int {
	return int(math.Round(mm / mmPerInch * BaseDPI * float64(scale)))
}

// PageSize returns the full page pixel dimensions at an oversampling scale.
func PageSize(scale int) (w, h int) {
	return mmToPx(PageWidthMM, scale), mmToPx(PageHeightMM, scale)
}

// UsableSize returns the page pixel dimensions inside the margins.
func UsableSize(scale int) (w, h int) {
	return mmToPx(PageWidthMM-2*MarginMM, scale), mmToPx(PageHeightMM-2*MarginMM, scale)
}

// UsableWidth returns the content width budget at 1x; layouts render to
// this width so slices keep natural horizontal scale.
func UsableWidth() int {
	w, _ := UsableSize(1)
	return w
}

// Decide classifies content height against usable page height.
func Decide(contentHeight, usableHeight int) Decision {
	switch {
	case contentHeight <= usableHeight:
		return SinglePage
	case float64(contentHeight) <= ScaleThreshold*float64(usableHeight):
		return ScaledPage
	default:
		return MultiPage
	}
}

// Paginate composes captured content onto full-page canvases.
// All inputs and outputs are at the same oversampling scale.
func Paginate(content *image.NRGBA, scale int, background color.NRGBA) ([]*image.NRGBA, error) {
	if scale <= 0 {
		return nil, model.NewCaptureError("paginate", "invalid oversampling scale", nil)
	}
	if content == nil || content.Bounds().Empty() {
		return nil, model.NewCaptureError("paginate", "empty content bitmap", nil)
	}

	margin := mmToPx(MarginMM, scale)
	_, usableH := UsableSize(scale)
	contentH := content.Bounds().Dy()
	contentW := content.Bounds().Dx()
	pageW, pageH := PageSize(scale)

	newPage := func() *image.NRGBA {
		return imaging.New(pageW, pageH, background)
	}

	switch Decide(contentH, usableH) {
	case SinglePage:
		page := imaging.Paste(newPage(), content, image.Pt(margin, margin))
		return []*image.NRGBA{page}, nil

	case ScaledPage:
		// Uniform shrink: scaled height is exactly P, width follows the
		// same factor, and the result re-centers horizontally.
		factor := float64(usableH) / float64(contentH)
		scaledW := max(int(math.Round(float64(contentW)*factor)), 1)
		resized := imaging.Resize(content, scaledW, usableH, imaging.Lanczos)
		x := (pageW - scaledW) / 2
		page := imaging.Paste(newPage(), resized, image.Pt(x, margin))
		return []*image.NRGBA{page}, nil

	default:
		// Slice with a vertical source cursor; each full slice maps to P
		// page units at unscaled width, the last slice may be short.
		var pages []*image.NRGBA
		for cursor := 0; cursor < contentH; cursor += usableH {
			sliceH := min(usableH, contentH-cursor)
			slice := imaging.Crop(content, image.Rect(0, cursor, contentW, cursor+sliceH))
			page := imaging.Paste(newPage(), slice, image.Pt(margin, margin))
			pages = append(pages, page)
		}
		return pages, nil
	}
}
