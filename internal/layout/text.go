package layout

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/beevik/etree"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/rezonia/invoice-exporter/internal/model"
)

// defaultFontSize matches the templates' body text size.
const defaultFontSize = 12

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *sfnt.Font
	boldFont    *sfnt.Font

	faceMu sync.Mutex
	faces  = map[faceKey]font.Face{}
)

type faceKey struct {
	bold bool
	size int
}

func loadFonts() error {
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return fontErr
}

// face returns a cached rendering face for a weight and pixel size.
// Size is in device pixels, so DPI stays at 72 (1pt == 1px).
func face(bold bool, size int) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}

	key := faceKey{bold: bold, size: size}
	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faces[key]; ok {
		return f, nil
	}

	src := regularFont
	if bold {
		src = boldFont
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	faces[key] = f
	return f, nil
}

// drawTexts composites the markup's text elements onto the rasterized
// page. The shape rasterizer covers rects and lines only, so text runs a
// second pass over the same markup bytes: each element's x/y is the
// baseline anchor, text-anchor="end" right-aligns, and fill and
// font-weight come straight from the attributes the earlier style passes
// may have rewritten.
func drawTexts(dst *image.RGBA, svg []byte, scale int) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return model.NewCaptureError("text", "rendered markup did not parse", err)
	}

	for _, el := range doc.FindElements("//text") {
		content := el.Text()
		if content == "" {
			continue
		}

		fill, ok := fillColor(el.SelectAttrValue("fill", ""))
		if !ok {
			fill = color.NRGBA{A: 255}
		}
		bold := el.SelectAttrValue("font-weight", "") == "bold"
		size := attrFloat(el, "font-size")
		if size <= 0 {
			size = defaultFontSize
		}

		f, err := face(bold, int(math.Round(size))*scale)
		if err != nil {
			return model.NewCaptureError("text", "font face unavailable", err)
		}

		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(fill),
			Face: f,
			Dot: fixed.Point26_6{
				X: floatFixed(attrFloat(el, "x") * float64(scale)),
				Y: floatFixed(attrFloat(el, "y") * float64(scale)),
			},
		}
		if el.SelectAttrValue("text-anchor", "") == "end" {
			d.Dot.X -= d.MeasureString(content)
		}
		d.DrawString(content)
	}
	return nil
}

func floatFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
