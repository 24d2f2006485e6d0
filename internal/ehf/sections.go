package ehf

import (
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	sd "github.com/shopspring/decimal"

	"github.com/rezonia/invoice-exporter/internal/compliance"
	"github.com/rezonia/invoice-exporter/internal/decimal"
	"github.com/rezonia/invoice-exporter/internal/model"
)

// text creates a child element with character content.
func text(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(value)
	return el
}

// amount creates a monetary child element: exactly two decimal digits plus
// an explicit currency attribute.
func amount(parent *etree.Element, tag string, v sd.Decimal, currency string) *etree.Element {
	el := text(parent, tag, decimal.Format(v))
	el.CreateAttr("currencyID", currency)
	return el
}

// dateString normalizes any timestamp to its calendar date.
func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// paymentReference prefers the KID number over the invoice number.
func paymentReference(inv *model.Invoice) string {
	if inv.KIDNumber != "" {
		return inv.KIDNumber
	}
	return inv.Number
}

func buildMetadata(root *etree.Element, snap *model.Snapshot) {
	text(root, "cbc:CustomizationID", customizationID)
	text(root, "cbc:ProfileID", profileID)
}

func buildHeader(root *etree.Element, snap *model.Snapshot) {
	inv := &snap.Invoice
	text(root, "cbc:ID", inv.Number)
	text(root, "cbc:IssueDate", dateString(inv.IssueDate))
	if !inv.DueDate.IsZero() {
		text(root, "cbc:DueDate", dateString(inv.DueDate))
	}
	text(root, "cbc:InvoiceTypeCode", invoiceTypeCode)
	text(root, "cbc:DocumentCurrencyCode", inv.Currency)
}

func buildSupplierParty(root *etree.Element, snap *model.Snapshot) {
	c := snap.Company
	party := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")
	buildPartyBody(party, c.Name, c.OrgNumber, c.TaxNumber, c.Email, c.Phone, c.Address)
}

func buildCustomerParty(root *etree.Element, snap *model.Snapshot) {
	c := &snap.Client
	party := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	buildPartyBody(party, c.Name, c.OrgNumber, c.TaxNumber, c.Email, c.Phone, c.Address)
}

// buildPartyBody emits the shared party structure. Sub-blocks appear only
// when the underlying data exists; absent data omits the element entirely.
func buildPartyBody(party *etree.Element, name, orgNumber, taxNumber, email, phone string, addr model.Address) {
	country := compliance.CountryCode(addr.Country)
	scheme := compliance.SchemeID(country)

	endpoint := text(party, "cbc:EndpointID", orgNumber)
	endpoint.CreateAttr("schemeID", scheme)

	if name != "" {
		text(party.CreateElement("cac:PartyName"), "cbc:Name", name)
	}

	if !addr.Empty() {
		postal := party.CreateElement("cac:PostalAddress")
		if addr.Street != "" {
			text(postal, "cbc:StreetName", addr.Street)
		}
		if addr.City != "" {
			text(postal, "cbc:CityName", addr.City)
		}
		if addr.PostalCode != "" {
			text(postal, "cbc:PostalZone", addr.PostalCode)
		}
		text(postal.CreateElement("cac:Country"), "cbc:IdentificationCode", country)
	}

	if taxNumber != "" {
		taxScheme := party.CreateElement("cac:PartyTaxScheme")
		text(taxScheme, "cbc:CompanyID", taxNumber)
		text(taxScheme.CreateElement("cac:TaxScheme"), "cbc:ID", "VAT")
	}

	legal := party.CreateElement("cac:PartyLegalEntity")
	text(legal, "cbc:RegistrationName", name)
	companyID := text(legal, "cbc:CompanyID", orgNumber)
	companyID.CreateAttr("schemeID", scheme)

	if email != "" || phone != "" {
		contact := party.CreateElement("cac:Contact")
		if email != "" {
			text(contact, "cbc:ElectronicMail", email)
		}
		if phone != "" {
			text(contact, "cbc:Telephone", phone)
		}
	}
}

func buildPaymentMeans(root *etree.Element, snap *model.Snapshot) {
	means := root.CreateElement("cac:PaymentMeans")
	text(means, "cbc:PaymentMeansCode", paymentMeansCode)
	text(means, "cbc:PaymentID", paymentReference(&snap.Invoice))

	// Banking block only when the supplier has an account to pay into.
	// IBAN wins over the plain account number when both exist.
	bank := snap.Company.Bank
	iban := compliance.SanitizeIBAN(bank.IBAN)
	accountID := iban
	if accountID == "" {
		accountID = strings.TrimSpace(bank.AccountNumber)
	}
	if accountID == "" {
		return
	}

	account := means.CreateElement("cac:PayeeFinancialAccount")
	text(account, "cbc:ID", accountID)
	if bank.SwiftBIC != "" {
		branch := account.CreateElement("cac:FinancialInstitutionBranch")
		text(branch, "cbc:ID", bank.SwiftBIC)
	}
}

func buildPaymentTerms(root *etree.Element, snap *model.Snapshot) {
	terms := root.CreateElement("cac:PaymentTerms")
	note := "Payment reference: " + paymentReference(&snap.Invoice)
	text(terms, "cbc:Note", note)
}

func buildTaxTotal(root *etree.Element, snap *model.Snapshot) {
	inv := &snap.Invoice
	taxable := inv.Subtotal.Sub(inv.Discount)

	total := root.CreateElement("cac:TaxTotal")
	amount(total, "cbc:TaxAmount", inv.TaxAmount, inv.Currency)

	// The subtotal and its category are emitted unconditionally: a zero
	// rate is a real zero-rated category, not an omission.
	sub := total.CreateElement("cac:TaxSubtotal")
	amount(sub, "cbc:TaxableAmount", taxable, inv.Currency)
	amount(sub, "cbc:TaxAmount", inv.TaxAmount, inv.Currency)
	buildTaxCategory(sub, "cac:TaxCategory", inv.TaxRate)
}

// buildTaxCategory emits a tax category block under the given tag.
func buildTaxCategory(parent *etree.Element, tag string, rate sd.Decimal) {
	cat := parent.CreateElement(tag)
	text(cat, "cbc:ID", compliance.TaxCategory(rate))
	text(cat, "cbc:Percent", decimal.Format(rate))
	text(cat.CreateElement("cac:TaxScheme"), "cbc:ID", "VAT")
}

func buildMonetaryTotal(root *etree.Element, snap *model.Snapshot) {
	inv := &snap.Invoice
	taxExclusive := inv.Subtotal.Sub(inv.Discount)

	total := root.CreateElement("cac:LegalMonetaryTotal")
	amount(total, "cbc:LineExtensionAmount", inv.Subtotal, inv.Currency)
	amount(total, "cbc:TaxExclusiveAmount", taxExclusive, inv.Currency)
	amount(total, "cbc:TaxInclusiveAmount", inv.Total, inv.Currency)
	if decimal.IsPositive(inv.Discount) {
		amount(total, "cbc:AllowanceTotalAmount", inv.Discount, inv.Currency)
	}
	amount(total, "cbc:PayableAmount", inv.Total, inv.Currency)
}

func buildInvoiceLines(root *etree.Element, snap *model.Snapshot) {
	inv := &snap.Invoice
	for i, item := range inv.Items {
		line := root.CreateElement("cac:InvoiceLine")

		// Line IDs are 1-based array positions, independent of any item
		// identifier.
		text(line, "cbc:ID", strconv.Itoa(i+1))

		qty := text(line, "cbc:InvoicedQuantity", decimal.Format(item.Quantity))
		qty.CreateAttr("unitCode", "EA")

		amount(line, "cbc:LineExtensionAmount", item.Amount, inv.Currency)

		itemEl := line.CreateElement("cac:Item")
		text(itemEl, "cbc:Name", item.Description)
		buildTaxCategory(itemEl, "cac:ClassifiedTaxCategory", inv.TaxRate)

		price := line.CreateElement("cac:Price")
		amount(price, "cbc:PriceAmount", item.UnitPrice, inv.Currency)
	}
}
