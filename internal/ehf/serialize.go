package ehf

import (
	"github.com/beevik/etree"

	"github.com/rezonia/invoice-exporter/internal/model"
)

// Serialize renders the document tree as UTF-8 text. etree preserves
// element and attribute insertion order, so output is deterministic for a
// given snapshot; no map iteration order can leak into the document.
func Serialize(doc *etree.Document) (string, error) {
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", model.NewExportError("", "failed to serialize UBL document", err)
	}
	return out, nil
}
