package export_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-exporter/internal/export"
	"github.com/rezonia/invoice-exporter/internal/model"
)

func TestSave_WritesAtomically(t *testing.T) {
	dir := t.TempDir()
	e := export.NewExporter(dir)

	path, err := e.Save(&export.Artifact{
		Filename: "inv-1-2024-01-15.xml",
		MIME:     "application/xml",
		Content:  []byte("<Invoice/>"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inv-1-2024-01-15.xml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<Invoice/>", string(data))

	// No temporary scaffolding left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSave_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	// A directory occupying the final name makes the rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "busy.xml"), 0o755))

	e := export.NewExporter(dir)
	_, err := e.Save(&export.Artifact{Filename: "busy.xml", Content: []byte("x")})

	var exportErr *model.ExportError
	require.ErrorAs(t, err, &exportErr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be removed on failure")
	assert.Equal(t, "busy.xml", entries[0].Name())
}

func TestAssemblePDF(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	page := imaging.New(100, 141, white)
	out, err := export.AssemblePDF([]*image.NRGBA{page, page})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestAssemblePDF_Empty(t *testing.T) {
	_, err := export.AssemblePDF(nil)
	require.Error(t, err)
}
