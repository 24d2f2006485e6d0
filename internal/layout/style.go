package layout

import (
	"image/color"
	"strconv"

	"github.com/beevik/etree"

	"github.com/rezonia/invoice-exporter/internal/model"
)

// lightTextFill replaces unreadable dark fills on dark backgrounds.
const lightTextFill = "#f5f5f5"

// nearBlackLuminance is the threshold below which a fill counts as
// near-black.
const nearBlackLuminance = 48.0

// NormalizeStyles applies the pre-capture style pass to rendered markup:
// ligatures and kerning variance off, geometrically precise text
// rendering. It operates on the disposable rendered bytes only; the
// template itself is never touched.
func NormalizeStyles(svg []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return nil, model.NewCaptureError("normalize", "rendered markup did not parse", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, model.NewCaptureError("normalize", "rendered markup has no root element", nil)
	}
	root.CreateAttr("style", "font-kerning: none; font-variant-ligatures: none; text-rendering: geometricPrecision")
	return doc.WriteToBytes()
}

// ForceLightText scans the rendered markup for text sitting on a
// near-black background and forces a light fill so the high-contrast
// template stays readable in export form.
//
// Detection is heuristic, fill-attribute luminance plus bounding-box
// containment. Only x/y anchor points are tested against the rects.
func ForceLightText(svg []byte) ([]byte, bool, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(svg); err != nil {
		return nil, false, model.NewCaptureError("contrast", "rendered markup did not parse", err)
	}

	type box struct{ x, y, w, h float64 }
	var darkRects []box
	for _, rect := range doc.FindElements("//rect") {
		if !isNearBlack(rect.SelectAttrValue("fill", "")) {
			continue
		}
		darkRects = append(darkRects, box{
			x: attrFloat(rect, "x"),
			y: attrFloat(rect, "y"),
			w: attrFloat(rect, "width"),
			h: attrFloat(rect, "height"),
		})
	}
	if len(darkRects) == 0 {
		return svg, false, nil
	}

	changed := false
	for _, text := range doc.FindElements("//text") {
		if !isNearBlack(text.SelectAttrValue("fill", "")) && !isDark(text.SelectAttrValue("fill", "")) {
			continue
		}
		tx, ty := attrFloat(text, "x"), attrFloat(text, "y")
		for _, r := range darkRects {
			if tx >= r.x && tx <= r.x+r.w && ty >= r.y && ty <= r.y+r.h {
				text.CreateAttr("fill", lightTextFill)
				changed = true
				break
			}
		}
	}
	if !changed {
		return svg, false, nil
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, false, model.NewCaptureError("contrast", "failed to serialize adjusted markup", err)
	}
	return out, true, nil
}

func attrFloat(el *etree.Element, name string) float64 {
	v, err := strconv.ParseFloat(el.SelectAttrValue(name, "0"), 64)
	if err != nil {
		return 0
	}
	return v
}

func isNearBlack(fill string) bool {
	lum, ok := luminance(fill)
	return ok && lum < nearBlackLuminance
}

// isDark is the looser text-side threshold: anything darker than mid gray
// is assumed unreadable on a near-black background.
func isDark(fill string) bool {
	lum, ok := luminance(fill)
	return ok && lum < 128
}

// luminance computes the relative luminance of a #rgb or #rrggbb fill.
func luminance(fill string) (float64, bool) {
	c, ok := fillColor(fill)
	if !ok {
		return 0, false
	}
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B), true
}

// fillColor parses a #rgb or #rrggbb fill attribute.
func fillColor(fill string) (color.NRGBA, bool) {
	if len(fill) == 0 || fill[0] != '#' {
		return color.NRGBA{}, false
	}
	hex := fill[1:]
	var channels [3]string
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			channels[i] = hex[i:i+1] + hex[i:i+1]
		}
	case 6:
		for i := 0; i < 3; i++ {
			channels[i] = hex[2*i : 2*i+2]
		}
	default:
		return color.NRGBA{}, false
	}
	var rgb [3]uint8
	for i, ch := range channels {
		v, err := strconv.ParseUint(ch, 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		rgb[i] = uint8(v)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, true
}
