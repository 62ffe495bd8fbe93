package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrencyNoDecimal(t *testing.T) {
	cases := map[float64]string{
		1234.9:     "1,234",
		0:          "0",
		999:        "999",
		1000000.99: "1,000,000",
		-1.5:       "-2",
	}
	for in, want := range cases {
		assert.Equal(t, want, CurrencyNoDecimal(in), "amount %v", in)
	}
	assert.Equal(t, "0", CurrencyNoDecimal(math.NaN()))
	assert.Equal(t, "0", CurrencyNoDecimal(math.Inf(1)))
	assert.Equal(t, "0", CurrencyNoDecimalPtr(nil))

	v := 12345.6
	assert.Equal(t, "12,345", CurrencyNoDecimalPtr(&v))
}

func TestCurrencyWithDecimal(t *testing.T) {
	assert.Equal(t, "1,234.50", CurrencyWithDecimal(1234.5))
	assert.Equal(t, "0.00", CurrencyWithDecimal(0))
	assert.Equal(t, "12.35", CurrencyWithDecimal(12.345))
	assert.Equal(t, "1,000,000.00", CurrencyWithDecimal(1e6))
	assert.Equal(t, "-2,500.10", CurrencyWithDecimal(-2500.1))
	assert.Equal(t, "0.00", CurrencyWithDecimal(math.NaN()))
	assert.Equal(t, "0.00", CurrencyWithDecimalPtr(nil))
}

func TestFormatDecimalNegativeZero(t *testing.T) {
	assert.Equal(t, "0.00", FormatDecimal(decimal.RequireFromString("-0.001")))
}

func TestCurrencyNoDecimalBeyondInt64(t *testing.T) {
	assert.Equal(t, "10,000,000,000,000,000,000", CurrencyNoDecimal(1e19))
	assert.Equal(t, "-10,000,000,000,000,000,000", CurrencyNoDecimal(-1e19))
	assert.Equal(t, "10,000,000,000,000,000,000.00", FormatDecimal(decimal.RequireFromString("1e19")))
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "7", groupDigits("7"))
	assert.Equal(t, "123", groupDigits("123"))
	assert.Equal(t, "1,234", groupDigits("1234"))
	assert.Equal(t, "123,456", groupDigits("123456"))
}
