package invoicecalc

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatFixed(t *testing.T) {
	tests := map[string]string{
		"45":      "45.00",
		"0":       "0.00",
		"11.2455": "11.25",
		"-0.5":    "-0.50",
	}
	for in, want := range tests {
		if got := FormatFixed(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatFixed(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatIndian(t *testing.T) {
	tests := map[string]string{
		"0":           "0.00",
		"999.5":       "999.50",
		"1234":        "1,234.00",
		"123456":      "1,23,456.00",
		"1234567.891": "12,34,567.89",
		"100000000":   "10,00,00,000.00",
		"-123456.5":   "-1,23,456.50",
	}
	for in, want := range tests {
		if got := FormatIndian(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatIndian(%s) = %q, want %q", in, got, want)
		}
	}
}
