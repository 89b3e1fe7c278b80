package tuistyles

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "RM0"},
		{"999.49", "RM999"},
		{"1000", "RM1,000"},
		{"25650.50", "RM25,651"},
		{"1528357.2", "RM1,528,357"},
		{"-60000", "-RM60,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestFormatCurrencyShort(t *testing.T) {
	assert.Equal(t, "RM1.53M", FormatCurrencyShort(decimal.NewFromInt(1528357)))
	assert.Equal(t, "RM60K", FormatCurrencyShort(decimal.NewFromInt(60000)))
	assert.Equal(t, "RM450", FormatCurrencyShort(decimal.NewFromInt(450)))
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, ColorSuccess, ScoreColor(100))
	assert.Equal(t, ColorWarning, ScoreColor(76))
	assert.Equal(t, ColorAccent, ScoreColor(50))
	assert.Equal(t, ColorDanger, ScoreColor(49))
}

func TestTrendIndicator(t *testing.T) {
	assert.Equal(t, "▲", TrendIndicator(true))
	assert.Equal(t, "▼", TrendIndicator(false))
}
