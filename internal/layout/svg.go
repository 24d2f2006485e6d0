package layout

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/rezonia/invoice-exporter/internal/model"
)

// maxRasterDim caps either pixel dimension when rasterizing. Prevents an
// absurd item count from allocating an unbounded RGBA buffer.
const maxRasterDim = 16384

// rasterizeSVG rasterizes the page markup's shapes at an integer
// oversampling scale against an opaque background. oksvg handles paths,
// rects and lines; text elements are composited afterwards by drawTexts.
// Output dimensions are the SVG viewBox multiplied by scale, clamped to
// maxRasterDim preserving aspect ratio.
func rasterizeSVG(svg []byte, scale int, background color.NRGBA) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, model.NewCaptureError("rasterize", "invalid page markup", err)
	}

	w := int(math.Ceil(icon.ViewBox.W)) * scale
	h := int(math.Ceil(icon.ViewBox.H)) * scale
	if w <= 0 || h <= 0 {
		return nil, model.NewCaptureError("rasterize", "page markup has no dimensions", nil)
	}
	if w > maxRasterDim || h > maxRasterDim {
		s := math.Min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
