// Package ehf builds EHF (PEPPOL BIS Billing 3.0 conformant) UBL invoice
// documents.
//
// The target schema mandates an exact section order. To keep that order
// auditable it is encoded as an explicit slice of section builders rather
// than an implicit call sequence; each builder owns exactly one schema
// section.
package ehf

import (
	"github.com/beevik/etree"

	"github.com/rezonia/invoice-exporter/internal/compliance"
	"github.com/rezonia/invoice-exporter/internal/model"
)

// UBL namespaces and profile identifiers
const (
	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	customizationID = "urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0"
	profileID       = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"

	// invoiceTypeCode 380 is a commercial invoice per UNCL1001
	invoiceTypeCode = "380"

	// paymentMeansCode 30 is credit transfer per UNCL4461
	paymentMeansCode = "30"
)

// sectionBuilder appends one schema section to the invoice root.
type sectionBuilder func(root *etree.Element, snap *model.Snapshot)

// sections is the mandated emission order. Do not reorder: the receiving
// networks validate element sequence, not just presence.
var sections = []sectionBuilder{
	buildMetadata,
	buildHeader,
	buildSupplierParty,
	buildCustomerParty,
	buildPaymentMeans,
	buildPaymentTerms,
	buildTaxTotal,
	buildMonetaryTotal,
	buildInvoiceLines,
}

// Build assembles the complete UBL document tree for a snapshot.
// It fails with a PreconditionError before constructing anything when
// either party's organization number is missing.
func Build(snap *model.Snapshot) (*etree.Document, error) {
	if err := compliance.RequireOrgNumbers(snap.Company, &snap.Client); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", nsInvoice)
	root.CreateAttr("xmlns:cac", nsCAC)
	root.CreateAttr("xmlns:cbc", nsCBC)

	for _, build := range sections {
		build(root, snap)
	}
	return doc, nil
}

// Generate builds and serializes in one step.
func Generate(snap *model.Snapshot) (string, error) {
	doc, err := Build(snap)
	if err != nil {
		return "", err
	}
	return Serialize(doc)
}
