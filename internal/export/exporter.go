package export

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/rezonia/invoice-exporter/internal/model"
)

// Artifact is one finished output document ready to save or stream.
type Artifact struct {
	Filename string
	MIME     string
	Content  []byte
	Warnings []string
}

// importDetails places every page image onto an A4 sheet edge to edge;
// the page bitmaps already carry their own margins.
const importDetails = "form:A4, pos:full"

// AssemblePDF builds the final paginated PDF from ordered page bitmaps.
func AssemblePDF(pages []*image.NRGBA) ([]byte, error) {
	if len(pages) == 0 {
		return nil, model.NewExportError("", "no pages to assemble", nil)
	}

	imgs := make([]io.Reader, 0, len(pages))
	for _, page := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, page); err != nil {
			return nil, model.NewExportError("", "failed to encode page image", err)
		}
		imgs = append(imgs, bytes.NewReader(buf.Bytes()))
	}

	imp, err := api.Import(importDetails, types.POINTS)
	if err != nil {
		return nil, model.NewExportError("", "invalid page import configuration", err)
	}

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, imgs, imp, nil); err != nil {
		return nil, model.NewExportError("", "failed to assemble PDF", err)
	}
	return out.Bytes(), nil
}

// Exporter saves artifacts into a target directory.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Save writes the artifact atomically: content goes to a temporary file
// in the target directory which is renamed into place on success and
// removed on any failure. Either the complete document exists under its
// final name or nothing is written.
func (e *Exporter) Save(a *Artifact) (string, error) {
	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0o755); err != nil {
			return "", model.NewExportError(a.Filename, "failed to create output directory", err)
		}
	}

	tmp, err := os.CreateTemp(e.dir, ".export-*")
	if err != nil {
		return "", model.NewExportError(a.Filename, "failed to create temporary file", err)
	}

	// The temporary file is released on every exit path.
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	if _, err := tmp.Write(a.Content); err != nil {
		cleanup()
		return "", model.NewExportError(a.Filename, "failed to write artifact", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", model.NewExportError(a.Filename, "failed to flush artifact", err)
	}

	final := filepath.Join(e.dir, a.Filename)
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", model.NewExportError(a.Filename, "failed to finalize artifact", err)
	}
	return final, nil
}
