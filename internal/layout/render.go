package layout

import (
	"strings"

	"github.com/rezonia/invoice-exporter/internal/decimal"
	"github.com/rezonia/invoice-exporter/internal/model"
)

// Layout geometry in 1x pixel units. All vertical positions are computed
// here so templates stay pure markup.
const (
	padX       = 40
	headerY    = 64
	partiesTop = 140
	lineStep   = 22
	rowStep    = 28
	blockGap   = 40
	tableHead  = 30
	bottomPad  = 40
)

// Line is one positioned text line.
type Line struct {
	Y    int
	Text string
}

// Row is one positioned item table row.
type Row struct {
	Y           int
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// Total is one positioned label/value pair in the totals block.
type Total struct {
	Y     int
	Label string
	Value string
	Bold  bool
}

// RenderData feeds a layout template. All strings are XML-escaped and all
// coordinates precomputed.
type RenderData struct {
	Width  int
	Height int
	Right  int // right text edge (Width - padX)
	QtyX   int
	PriceX int
	LabelX int

	Number    string
	IssueDate string
	DueDate   string
	Reference string

	CompanyName  string
	CompanyLines []Line
	ClientName   string
	ClientLines  []Line

	TableTop int
	RowsTop  int
	Rows     []Row

	Totals []Total

	FooterTop   int
	FooterLines []Line
}

func esc(s string) string {
	return xmlReplacer.Replace(s)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func stack(top int, texts []string) ([]Line, int) {
	lines := make([]Line, 0, len(texts))
	y := top
	for _, t := range texts {
		if t == "" {
			continue
		}
		lines = append(lines, Line{Y: y, Text: esc(t)})
		y += lineStep
	}
	return lines, y
}

func addressTexts(a model.Address) []string {
	texts := []string{a.Street}
	cityLine := strings.TrimSpace(a.PostalCode + " " + a.City)
	texts = append(texts, cityLine, a.Country)
	return texts
}

// BuildRenderData lays out the invoice content for a given content width.
// The resulting Height varies with item and footer line counts and drives
// the pagination decision downstream.
func BuildRenderData(snap *model.Snapshot, width int) *RenderData {
	inv := &snap.Invoice

	d := &RenderData{
		Width:     width,
		Right:     width - padX,
		QtyX:      width - 280,
		PriceX:    width - 160,
		LabelX:    width - 180,
		Number:    esc(inv.Number),
		IssueDate: inv.IssueDate.Format("2006-01-02"),
		Reference: esc(inv.KIDNumber),
	}
	if !inv.DueDate.IsZero() {
		d.DueDate = inv.DueDate.Format("2006-01-02")
	}

	companyBottom := partiesTop
	if snap.Company != nil {
		d.CompanyName = esc(snap.Company.Name)
		texts := append(addressTexts(snap.Company.Address),
			snap.Company.Email, snap.Company.Phone)
		d.CompanyLines, companyBottom = stack(partiesTop+lineStep, texts)
	}

	d.ClientName = esc(snap.Client.Name)
	clientLines, clientBottom := stack(partiesTop+lineStep, addressTexts(snap.Client.Address))
	d.ClientLines = clientLines

	d.TableTop = max(companyBottom, clientBottom) + blockGap
	d.RowsTop = d.TableTop + tableHead

	y := d.RowsTop + rowStep
	for _, item := range inv.Items {
		d.Rows = append(d.Rows, Row{
			Y:           y,
			Description: esc(item.Description),
			Quantity:    decimal.Format(item.Quantity),
			UnitPrice:   decimal.Format(item.UnitPrice),
			Amount:      decimal.Format(item.Amount),
		})
		y += rowStep
	}

	y += blockGap
	currency := " " + esc(inv.Currency)
	totals := []Total{{Y: y, Label: "Subtotal", Value: decimal.Format(inv.Subtotal) + currency}}
	y += lineStep
	if decimal.IsPositive(inv.Discount) {
		totals = append(totals, Total{Y: y, Label: "Discount", Value: "-" + decimal.Format(inv.Discount) + currency})
		y += lineStep
	}
	totals = append(totals, Total{Y: y, Label: "Tax (" + decimal.Format(inv.TaxRate) + "%)", Value: decimal.Format(inv.TaxAmount) + currency})
	y += lineStep
	totals = append(totals, Total{Y: y, Label: "Total", Value: decimal.Format(inv.Total) + currency, Bold: true})
	y += lineStep
	d.Totals = totals

	d.FooterTop = y + blockGap
	d.FooterLines, y = stack(d.FooterTop+lineStep, footerTexts(snap))

	d.Height = y + bottomPad
	return d
}

// footerTexts assembles the payment block respecting the invoice display
// flags.
func footerTexts(snap *model.Snapshot) []string {
	inv := &snap.Invoice
	var texts []string
	if snap.Company != nil {
		bank := snap.Company.Bank
		if inv.ShowAccountNumber && bank.AccountNumber != "" {
			texts = append(texts, "Account number: "+bank.AccountNumber)
		}
		if inv.ShowIBAN && bank.IBAN != "" {
			texts = append(texts, "IBAN: "+bank.IBAN)
		}
		if inv.ShowSwiftBIC && bank.SwiftBIC != "" {
			texts = append(texts, "SWIFT/BIC: "+bank.SwiftBIC)
		}
	}
	if inv.KIDNumber != "" {
		texts = append(texts, "KID: "+inv.KIDNumber)
	}
	if inv.Notes != "" {
		texts = append(texts, inv.Notes)
	}
	return texts
}
