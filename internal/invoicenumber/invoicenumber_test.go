package invoicenumber

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{date(2025, time.April, 1), "2025-2026"},
		{date(2025, time.December, 31), "2025-2026"},
		{date(2026, time.January, 1), "2025-2026"},
		{date(2026, time.March, 31), "2025-2026"},
		{date(2026, time.April, 1), "2026-2027"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FinancialYear(tt.at), tt.at.String())
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "INV/25-26/0001", Format(1, "2025-2026"))
	assert.Equal(t, "INV/25-26/0042", Format(42, "2025-2026"))
	assert.Equal(t, "INV/99-00/12345", Format(12345, "2099-2100"))
}

func TestNext(t *testing.T) {
	assert.Equal(t, 1, Next(nil, "2025-2026"))
	assert.Equal(t, 8, Next(&Counter{Sequence: 7, FinancialYear: "2025-2026"}, "2025-2026"))
	assert.Equal(t, 1, Next(&Counter{Sequence: 7, FinancialYear: "2024-2025"}, "2025-2026"))
}

func TestPreviewAt(t *testing.T) {
	p := PreviewAt(&Counter{Sequence: 12, FinancialYear: "2025-2026"}, date(2025, time.October, 19))

	assert.Equal(t, "INV/25-26/0013", p.InvoiceNumber)
	assert.Equal(t, "2025-2026", p.FinancialYear)
	assert.Equal(t, 13, p.SequenceNumber)
}
