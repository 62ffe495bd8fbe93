package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{42, "Forty Two"},
		{100, "One Hundred"},
		{115, "One Hundred Fifteen"},
		{1500, "One Thousand Five Hundred"},
		{1500.99, "One Thousand Five Hundred"},
		{1000000, "One Million"},
		{2000017, "Two Million Seventeen"},
		{1234567891, "One Billion Two Hundred Thirty Four Million Five Hundred Sixty Seven Thousand Eight Hundred Ninety One"},
		{-45, "Forty Five"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NumberToWords(tc.in), "amount %v", tc.in)
	}
}

func TestNumberToWordsInvalid(t *testing.T) {
	assert.Equal(t, "Zero", NumberToWords(math.NaN()))
	assert.Equal(t, "Zero", NumberToWords(0.4))
}

func TestNumberToWordsLargeAmounts(t *testing.T) {
	assert.Equal(t, "One Quadrillion", NumberToWords(1e15))
	assert.Equal(t, "Two Quadrillion Five", NumberToWords(2e15+5))
	assert.Equal(t, "One Quintillion Two Hundred Thirty Four Quadrillion", NumberToWords(1234e15))
	assert.Equal(t, "Ten Quintillion", NumberToWords(1e19))
	assert.Equal(t, "One Decillion", NumberToWords(1e33))
}

func TestNumberToWordsBeyondScaleFallsBackToDigits(t *testing.T) {
	got := NumberToWords(1e36)
	assert.Equal(t, "1,000,000,000,000,000,000,000,000,000,000,000,000", got)
	assert.NotEmpty(t, NumberToWords(math.MaxFloat64))
}
