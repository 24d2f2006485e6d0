package invoiceexport_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-exporter/pkg/invoiceexport"
)

func testSnapshot() *invoiceexport.Snapshot {
	return &invoiceexport.Snapshot{
		Invoice: invoiceexport.Invoice{
			Number:    "INV/2024-01",
			IssueDate: time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
			Subtotal:  decimal.NewFromInt(1000),
			TaxRate:   decimal.NewFromInt(25),
			TaxAmount: decimal.NewFromInt(250),
			Total:     decimal.NewFromInt(1250),
			Currency:  "NOK",
			Items: []invoiceexport.InvoiceItem{
				{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100), Amount: decimal.NewFromInt(1000)},
			},
		},
		Client: invoiceexport.Client{
			Name:      "Acme & Co",
			OrgNumber: "987654321",
		},
		Company: &invoiceexport.CompanyProfile{
			Name:      "Rezonia AS",
			OrgNumber: "123456789",
		},
	}
}

func TestNewExporter(t *testing.T) {
	e := invoiceexport.NewExporter(invoiceexport.ExporterOptions{Scale: 1})
	require.NotNil(t, e)
}

func TestNewDefaultExporter(t *testing.T) {
	e := invoiceexport.NewDefaultExporter()
	require.NotNil(t, e)
}

func TestDefaultExporterOptions(t *testing.T) {
	opts := invoiceexport.DefaultExporterOptions()

	assert.Equal(t, 2, opts.Scale)
	assert.Equal(t, 30*time.Second, opts.CaptureTimeout)
	assert.Equal(t, 5*time.Second, opts.LogoTimeout)
}

func TestExporterGenerateXML(t *testing.T) {
	e := invoiceexport.NewExporter(invoiceexport.ExporterOptions{Scale: 1})

	doc, err := e.GenerateXML(context.Background(), testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "inv-2024-01-ehf-2024-01-15.xml", doc.Filename)
	assert.Equal(t, "application/xml", doc.MIME)
	assert.True(t, strings.HasPrefix(string(doc.Content), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Zero(t, doc.Pages)
	assert.Empty(t, doc.Pagination)
}

func TestExporterGenerateXML_MissingOrgNumber(t *testing.T) {
	e := invoiceexport.NewExporter(invoiceexport.ExporterOptions{Scale: 1})

	snap := testSnapshot()
	snap.Client.OrgNumber = ""

	doc, err := e.GenerateXML(context.Background(), snap)
	require.Error(t, err)
	assert.Nil(t, doc)

	var precondErr *invoiceexport.PreconditionError
	require.ErrorAs(t, err, &precondErr)
	assert.Equal(t, "client.org_number", precondErr.Field)
}

func TestExporterGeneratePDF(t *testing.T) {
	e := invoiceexport.NewExporter(invoiceexport.ExporterOptions{Scale: 1})

	doc, err := e.GeneratePDF(context.Background(), testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "inv-2024-01-acme-co-2024-01-15.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.MIME)
	assert.True(t, strings.HasPrefix(string(doc.Content), "%PDF"))
	assert.Equal(t, 1, doc.Pages)
	assert.Equal(t, "single", doc.Pagination)
}

func TestExporterGenerateAll(t *testing.T) {
	e := invoiceexport.NewExporter(invoiceexport.ExporterOptions{Scale: 1})

	docs, err := e.GenerateAll(context.Background(), testSnapshot())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "application/xml", docs[0].MIME)
	assert.Equal(t, "application/pdf", docs[1].MIME)
}

func TestExporterValidate(t *testing.T) {
	e := invoiceexport.NewDefaultExporter()

	require.NoError(t, e.Validate(testSnapshot()))

	snap := testSnapshot()
	snap.Company = nil
	require.Error(t, e.Validate(snap))
}

func TestReExportedTypes(t *testing.T) {
	inv := invoiceexport.Invoice{
		Number:   "2024-0001",
		Template: invoiceexport.TemplateContrast,
	}

	assert.Equal(t, "2024-0001", inv.Number)
	assert.Equal(t, invoiceexport.Template("contrast"), inv.Template)
}
