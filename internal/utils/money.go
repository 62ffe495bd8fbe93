package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// grouping printer; invoices are issued with English number formatting.
var moneyPrinter = message.NewPrinter(language.English)

// 2^63; floats at or above it do not convert to int64.
const int64Limit = 9223372036854775808.0

func invalidAmount(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// CurrencyNoDecimal floors amount and renders it with thousand separators.
// 1234.9 -> "1,234". NaN/Inf -> "0".
func CurrencyNoDecimal(amount float64) string {
	if invalidAmount(amount) {
		return "0"
	}
	floored := math.Floor(amount)
	if math.Abs(floored) < int64Limit {
		return moneyPrinter.Sprintf("%d", int64(floored))
	}
	d := decimal.NewFromFloat(floored)
	if d.IsNegative() {
		return "-" + groupDigits(d.Neg().String())
	}
	return groupDigits(d.String())
}

// CurrencyNoDecimalPtr is CurrencyNoDecimal for optional amounts; nil -> "0".
func CurrencyNoDecimalPtr(amount *float64) string {
	if amount == nil {
		return "0"
	}
	return CurrencyNoDecimal(*amount)
}

// CurrencyWithDecimal renders amount with exactly two decimals and thousand
// separators. 1234.5 -> "1,234.50". NaN/Inf -> "0.00".
func CurrencyWithDecimal(amount float64) string {
	if invalidAmount(amount) {
		return "0.00"
	}
	return FormatDecimal(decimal.NewFromFloat(amount))
}

// CurrencyWithDecimalPtr is CurrencyWithDecimal for optional amounts; nil -> "0.00".
func CurrencyWithDecimalPtr(amount *float64) string {
	if amount == nil {
		return "0.00"
	}
	return CurrencyWithDecimal(*amount)
}

// FormatDecimal renders a decimal amount rounded half-up to two places with
// thousand separators on the integer part.
func FormatDecimal(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	grouped := groupDigits(intPart)
	if grouped == "0" && frac == "00" {
		sign = ""
	}
	return sign + grouped + "." + frac
}

// groupDigits inserts thousand separators into an unsigned digit string.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
