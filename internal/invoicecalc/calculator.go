// Package invoicecalc computes GST invoice totals and renders amounts for
// display. It is shared by the invoice editor preview, the persistence path,
// the print view, the PDF renderer and the spreadsheet export so every surface
// agrees on the same numbers.
//
// All functions are pure and safe for concurrent use.
package invoicecalc

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxInvoiceAmount caps the subtotal of a saved invoice at ten lakh crore
// rupees. With GST at most 100% the rounded total stays well inside int64.
var MaxInvoiceAmount = decimal.New(1, 13)

var (
	half      = decimal.New(5, -1)
	halfOfPct = decimal.New(5, -3) // rate / 2 / 100

	maxTotal = decimal.NewFromInt(math.MaxInt64)
	minTotal = decimal.NewFromInt(math.MinInt64)
)

// LineItem is one row of an invoice.
type LineItem struct {
	Name          string `json:"name"`
	HSN           string `json:"hsn"`
	UOM           string `json:"uom"`
	Quantity      Number `json:"quantity"`
	Rate          Number `json:"rate"`
	GSTPercentage Number `json:"gst_percentage"`
}

// Amount is quantity × rate.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.Rate.Decimal)
}

// Totals is the derived summary of an invoice. RoundedTotal always equals
// Total; both are carried because stored invoice documents use both keys.
type Totals struct {
	Subtotal      Number `json:"subtotal"`
	SGST          Number `json:"sgst"`
	CGST          Number `json:"cgst"`
	RoundOff      Number `json:"round_off"`
	RoundedTotal  int64  `json:"rounded_total"`
	Total         int64  `json:"total"`
	AmountInWords string `json:"amount_in_words"`
}

// RawTotal is subtotal + sgst + cgst before rounding.
func (t Totals) RawTotal() decimal.Decimal {
	return t.Subtotal.Add(t.SGST.Decimal).Add(t.CGST.Decimal)
}

// ComputeTotals derives the invoice totals from its line items.
//
// The GST rate of the first item applies to the whole invoice; rates on
// later items are ignored. The tax is split evenly into SGST and CGST.
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount())
	}

	rate := decimal.Zero
	if len(items) > 0 {
		rate = items[0].GSTPercentage.Decimal
	}

	gstHalf := subtotal.Mul(rate).Mul(halfOfPct)
	raw := subtotal.Add(gstHalf).Add(gstHalf)
	total := RoundTotal(raw)

	return Totals{
		Subtotal:      Number{subtotal},
		SGST:          Number{gstHalf},
		CGST:          Number{gstHalf},
		RoundOff:      Number{RoundOff(raw, total)},
		RoundedTotal:  total,
		Total:         total,
		AmountInWords: NumberToWords(total),
	}
}

// RoundTotal rounds up only when the fractional part is strictly above one
// half, so 100.50 becomes 100 and 100.51 becomes 101. Totals outside int64
// saturate at its bounds.
func RoundTotal(raw decimal.Decimal) int64 {
	if raw.GreaterThanOrEqual(maxTotal) {
		return math.MaxInt64
	}
	if raw.LessThanOrEqual(minTotal) {
		return math.MinInt64
	}
	floor := raw.Floor()
	if raw.Sub(floor).GreaterThan(half) {
		return raw.Ceil().IntPart()
	}
	return floor.IntPart()
}

// RoundOff is total − raw, rounded to two places.
func RoundOff(raw decimal.Decimal, total int64) decimal.Decimal {
	return decimal.NewFromInt(total).Sub(raw).Round(2)
}
