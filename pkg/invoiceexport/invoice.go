// Package invoiceexport provides a public API for generating invoice documents.
//
// This package exposes the core types and operations for turning an invoice
// snapshot into regulated output documents: EHF / PEPPOL BIS Billing 3.0
// conformant UBL XML and paginated PDF exports of a rendered layout.
//
// Example usage:
//
//	exporter := invoiceexport.NewDefaultExporter()
//	doc, err := exporter.GenerateXML(ctx, snapshot)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(doc.Filename, doc.Content, 0o644)
package invoiceexport

import "github.com/rezonia/invoice-exporter/internal/model"

// Re-export core types for public API
type (
	Snapshot       = model.Snapshot
	Invoice        = model.Invoice
	InvoiceItem    = model.InvoiceItem
	Client         = model.Client
	CompanyProfile = model.CompanyProfile
	Address        = model.Address
	BankDetails    = model.BankDetails
	Template       = model.Template
)

// Re-export layout templates
const (
	TemplateClassic  = model.TemplateClassic
	TemplateContrast = model.TemplateContrast
)

// Re-export error types
type (
	PreconditionError = model.PreconditionError
	CaptureError      = model.CaptureError
	ExportError       = model.ExportError
)
