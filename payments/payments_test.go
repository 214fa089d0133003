package payments

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"49.99", 4999},
		{"100", 10000},
		{"0.5", 50},
		{"1234.567", 123457},
		{"0.004", 0},
		{"0.005", 1},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, MinorUnits(d))
		})
	}
}

func TestCurrencyIsUSD(t *testing.T) {
	assert.Equal(t, "usd", Currency)
}
