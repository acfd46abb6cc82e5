package invoicecalc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatFixed renders d with exactly two decimals and no currency symbol.
func FormatFixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatIndian renders d with two decimals and Indian digit grouping:
// the last three integer digits, then pairs (1,23,45,678.00).
func FormatIndian(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if len(intPart) <= 3 {
		b.WriteString(intPart)
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		if len(head)%2 == 1 {
			b.WriteString(head[:1])
			b.WriteByte(',')
			head = head[1:]
		}
		for i := 0; i < len(head); i += 2 {
			b.WriteString(head[i : i+2])
			b.WriteByte(',')
		}
		b.WriteString(tail)
	}
	b.WriteString(frac)
	return b.String()
}
