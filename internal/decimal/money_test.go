package decimal_test

import (
	"testing"

	sd "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-exporter/internal/decimal"
)

func TestFormat_TwoDecimals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "100", "100.00"},
		{"one decimal", "99.5", "99.50"},
		{"two decimals", "12.34", "12.34"},
		{"half-up rounding", "19.995", "20.00"},
		{"truncation rounding", "0.004", "0.00"},
		{"round up at midpoint", "0.005", "0.01"},
		{"zero", "0", "0.00"},
		{"large", "1234567.891", "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.MustFromString(tt.input)
			assert.Equal(t, tt.want, decimal.Format(d))
		})
	}
}

func TestCalculateTax(t *testing.T) {
	amount := sd.NewFromInt(1000)

	tax := decimal.CalculateTax(amount, sd.NewFromInt(25))
	assert.True(t, tax.Equal(sd.NewFromInt(250)), "got %s", tax)

	zero := decimal.CalculateTax(amount, sd.NewFromInt(0))
	assert.True(t, zero.IsZero())
}

func TestCalculateLineAmount(t *testing.T) {
	amount := decimal.CalculateLineAmount(sd.NewFromFloat(2.5), sd.NewFromFloat(19.99))
	assert.Equal(t, "49.98", decimal.Format(amount))
}

func TestSum(t *testing.T) {
	total := decimal.Sum([]sd.Decimal{
		sd.NewFromInt(1),
		sd.NewFromFloat(2.5),
		sd.NewFromFloat(0.25),
	})
	assert.Equal(t, "3.75", decimal.Format(total))
}

func TestFromString_Invalid(t *testing.T) {
	_, err := decimal.FromString("not a number")
	require.Error(t, err)
}

func TestDiv_ByZero(t *testing.T) {
	out := decimal.Div(sd.NewFromInt(10), sd.NewFromInt(0))
	assert.True(t, out.IsZero())
}
