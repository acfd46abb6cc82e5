// Package invoicenumber holds the financial-year based numbering rules.
package invoicenumber

import (
	"fmt"
	"time"
)

// Counter is the persisted state of the invoice sequence.
type Counter struct {
	Sequence      int    `json:"inv_no"`
	FinancialYear string `json:"fy"`
}

// Preview describes the number the next invoice will receive.
type Preview struct {
	InvoiceNumber  string `json:"invoice_number"`
	FinancialYear  string `json:"financial_year"`
	SequenceNumber int    `json:"sequence_number"`
}

// FinancialYear returns the Indian financial year (April to March) containing t,
// formatted "2025-2026".
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%d", start, start+1)
}

// Format builds "INV/25-26/0001" from a sequence and a "2025-2026" year.
func Format(seq int, fy string) string {
	short := fy
	if len(fy) == 9 {
		short = fy[2:4] + "-" + fy[7:9]
	}
	return fmt.Sprintf("INV/%s/%04d", short, seq)
}

// Next returns the sequence that follows current within fy. A nil counter or
// a counter from another financial year restarts at 1.
func Next(current *Counter, fy string) int {
	if current == nil || current.FinancialYear != fy {
		return 1
	}
	return current.Sequence + 1
}

// PreviewAt computes the preview for the given counter at time now.
func PreviewAt(current *Counter, now time.Time) Preview {
	fy := FinancialYear(now)
	seq := Next(current, fy)
	return Preview{
		InvoiceNumber:  Format(seq, fy),
		FinancialYear:  fy,
		SequenceNumber: seq,
	}
}
