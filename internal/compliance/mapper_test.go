package compliance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-exporter/internal/compliance"
	"github.com/rezonia/invoice-exporter/internal/model"
)

func TestCountryCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"two-letter code passes through", "SE", "SE"},
		{"two-letter code not uppercased", "se", compliance.DefaultCountryCode},
		{"known name", "Sweden", "SE"},
		{"known name lower", "sweden", "SE"},
		{"known name with spaces", "  Denmark  ", "DK"},
		{"local spelling", "Norge", "NO"},
		{"unknown name", "Atlantis", compliance.DefaultCountryCode},
		{"empty", "", compliance.DefaultCountryCode},
		{"two letters but not a code shape", "n0", compliance.DefaultCountryCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compliance.CountryCode(tt.input))
		})
	}
}

func TestSchemeID_Constant(t *testing.T) {
	// One registry scheme today regardless of country.
	assert.Equal(t, compliance.DefaultSchemeID, compliance.SchemeID("NO"))
	assert.Equal(t, compliance.DefaultSchemeID, compliance.SchemeID("DE"))
	assert.Equal(t, compliance.DefaultSchemeID, compliance.SchemeID(""))
}

func TestTaxCategory(t *testing.T) {
	assert.Equal(t, compliance.TaxCategoryZero, compliance.TaxCategory(decimal.Zero))
	assert.Equal(t, compliance.TaxCategoryStandard, compliance.TaxCategory(decimal.NewFromInt(25)))
	assert.Equal(t, compliance.TaxCategoryStandard, compliance.TaxCategory(decimal.NewFromFloat(0.1)))
	assert.Equal(t, compliance.TaxCategoryStandard, compliance.TaxCategory(decimal.NewFromInt(100)))
}

func TestSanitizeIBAN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"NO93 8601 1117 947", "NO9386011117947"},
		{" NO93\t8601\n1117 947 ", "NO9386011117947"},
		{"NO9386011117947", "NO9386011117947"},
		{"", ""},
		{"a b-c_d", "ab-c_d"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compliance.SanitizeIBAN(tt.input))
	}
}

func TestRequireOrgNumbers(t *testing.T) {
	company := &model.CompanyProfile{Name: "Rezonia AS", OrgNumber: "123456789"}
	client := &model.Client{Name: "Acme & Co", OrgNumber: "987654321"}

	require.NoError(t, compliance.RequireOrgNumbers(company, client))

	var precond *model.PreconditionError

	err := compliance.RequireOrgNumbers(nil, client)
	require.ErrorAs(t, err, &precond)
	assert.Equal(t, "company.org_number", precond.Field)

	err = compliance.RequireOrgNumbers(&model.CompanyProfile{Name: "Rezonia AS"}, client)
	require.ErrorAs(t, err, &precond)

	err = compliance.RequireOrgNumbers(&model.CompanyProfile{OrgNumber: "  "}, client)
	require.ErrorAs(t, err, &precond)

	err = compliance.RequireOrgNumbers(company, &model.Client{Name: "Acme & Co"})
	require.ErrorAs(t, err, &precond)
	assert.Equal(t, "client.org_number", precond.Field)

	err = compliance.RequireOrgNumbers(company, nil)
	require.ErrorAs(t, err, &precond)
}
