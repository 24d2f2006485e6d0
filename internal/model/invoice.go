// Package model defines the read-only domain snapshot consumed by
// document generation.
//
// All values are created and owned by the caller's data layer; generation
// reads them for the duration of one call and never mutates or persists
// them.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Template identifies a visual invoice layout.
type Template string

// Known layout templates
const (
	TemplateClassic  Template = "classic"
	TemplateContrast Template = "contrast"
)

// Invoice is an immutable invoice snapshot at generation time.
type Invoice struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`

	// KIDNumber is the payment reference used to match incoming payments.
	// When empty the invoice number doubles as the payment reference.
	KIDNumber string `json:"kid_number,omitempty"`

	Template Template `json:"template,omitempty"`
	Notes    string   `json:"notes,omitempty"`

	ShowAccountNumber bool `json:"show_account_number"`
	ShowIBAN          bool `json:"show_iban"`
	ShowSwiftBIC      bool `json:"show_swift_bic"`

	// Items order determines 1-based line numbering in all outputs.
	Items []InvoiceItem `json:"items"`
}

// InvoiceItem is one invoice line.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Address is a postal address. Country may be a full name or a 2-letter code.
type Address struct {
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Empty reports whether no address field is set.
func (a Address) Empty() bool {
	return a.Street == "" && a.PostalCode == "" && a.City == "" && a.Country == ""
}

// BankDetails holds supplier banking identifiers.
type BankDetails struct {
	AccountNumber string `json:"account_number,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	SwiftBIC      string `json:"swift_bic,omitempty"`
}

// Client is the invoice recipient ("customer" party).
type Client struct {
	Name      string  `json:"name"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	OrgNumber string  `json:"org_number,omitempty"`
	TaxNumber string  `json:"tax_number,omitempty"`
	Address   Address `json:"address"`
}

// CompanyProfile is the issuing company ("supplier" party).
type CompanyProfile struct {
	Name      string      `json:"name"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	OrgNumber string      `json:"org_number,omitempty"`
	TaxNumber string      `json:"tax_number,omitempty"`
	Address   Address     `json:"address"`
	Bank      BankDetails `json:"bank"`
	LogoURL   string      `json:"logo_url,omitempty"`
}

// Snapshot bundles everything one generation call reads.
// Company may be absent; the XML path rejects such snapshots up front.
type Snapshot struct {
	Invoice Invoice         `json:"invoice"`
	Client  Client          `json:"client"`
	Company *CompanyProfile `json:"company,omitempty"`
}
