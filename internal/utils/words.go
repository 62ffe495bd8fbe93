package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teenWords = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	// short scale, index = group position from the right
	scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion", "Quadrillion",
		"Quintillion", "Sextillion", "Septillion", "Octillion", "Nonillion", "Decillion"}
)

// NumberToWords spells the integer part of amount in English cardinal words,
// e.g. 1500 -> "One Thousand Five Hundred". Cents are ignored; legal total
// declarations print the integer amount only. Negative amounts use their
// absolute value. Amounts past the Decillion group are printed as grouped
// digits instead of words.
func NumberToWords(amount float64) string {
	if invalidAmount(amount) {
		return "Zero"
	}
	digits := decimal.NewFromFloat(math.Floor(math.Abs(amount))).String()
	if digits == "0" {
		return "Zero"
	}
	if (len(digits)+2)/3 > len(scaleWords) {
		return groupDigits(digits)
	}

	var groups []string
	for scale, end := 0, len(digits); end > 0; scale, end = scale+1, end-3 {
		chunk, _ := strconv.Atoi(digits[max(0, end-3):end])
		if chunk == 0 {
			continue
		}
		words := hundredsToWords(chunk)
		if scaleWords[scale] != "" {
			words += " " + scaleWords[scale]
		}
		groups = append([]string{words}, groups...)
	}
	return strings.Join(groups, " ")
}

// hundredsToWords converts 1..999.
func hundredsToWords(n int) string {
	parts := make([]string, 0, 4)
	if h := n / 100; h > 0 {
		parts = append(parts, onesWords[h], "Hundred")
	}
	rest := n % 100
	switch {
	case rest >= 10 && rest < 20:
		parts = append(parts, teenWords[rest-10])
	default:
		if t := rest / 10; t > 0 {
			parts = append(parts, tensWords[t])
		}
		if o := rest % 10; o > 0 {
			parts = append(parts, onesWords[o])
		}
	}
	return strings.Join(parts, " ")
}
