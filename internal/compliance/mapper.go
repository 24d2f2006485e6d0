// Package compliance maps domain snapshot fields onto the identifiers and
// categories required by the EHF / PEPPOL BIS Billing profile.
//
// All functions are pure; nothing here touches I/O or mutates the snapshot.
package compliance

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-exporter/internal/model"
)

// DefaultCountryCode is the supplier's home jurisdiction, used whenever a
// country name is absent or not in the known table.
const DefaultCountryCode = "NO"

// DefaultSchemeID identifies the Norwegian organization number registry
// (Brønnøysund). Currently returned for every country; the country
// parameter exists so non-domestic registries can be added later.
const DefaultSchemeID = "0192"

// Tax category codes per UNCL5305
const (
	TaxCategoryStandard = "S"
	TaxCategoryZero     = "Z"
)

// CountryCode resolves a country name to its ISO 3166-1 alpha-2 code.
// A value that already is a 2-letter uppercase code passes through
// unchanged. Unknown or empty input resolves to DefaultCountryCode.
func CountryCode(name string) string {
	if len(name) == 2 && name == strings.ToUpper(name) &&
		name[0] >= 'A' && name[0] <= 'Z' && name[1] >= 'A' && name[1] <= 'Z' {
		return name
	}
	if code, ok := countryCodes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code
	}
	return DefaultCountryCode
}

// SchemeID returns the identifier scheme for a party's organization number.
// Always DefaultSchemeID today regardless of country.
func SchemeID(countryCode string) string {
	_ = countryCode
	return DefaultSchemeID
}

// TaxCategory classifies a tax rate. Exactly zero is zero-rated, any other
// non-negative rate is standard-rated. No exempt category is produced.
func TaxCategory(rate decimal.Decimal) string {
	if rate.IsZero() {
		return TaxCategoryZero
	}
	return TaxCategoryStandard
}

// SanitizeIBAN strips every whitespace character, preserving all other
// characters and their order.
func SanitizeIBAN(iban string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, iban)
}

// RequireOrgNumbers gates the XML path: both parties must carry a non-empty
// organization number before any tree construction begins.
func RequireOrgNumbers(company *model.CompanyProfile, client *model.Client) error {
	if company == nil || strings.TrimSpace(company.OrgNumber) == "" {
		return model.NewPreconditionError("company.org_number", "supplier organization number is required for EHF generation")
	}
	if client == nil || strings.TrimSpace(client.OrgNumber) == "" {
		return model.NewPreconditionError("client.org_number", "customer organization number is required for EHF generation")
	}
	return nil
}
