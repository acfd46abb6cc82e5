package service

import (
	"github.com/spm-engineering/billing-service/internal/invoicecalc"
	"github.com/spm-engineering/billing-service/internal/models"
)

// PriceInvoice recomputes each line amount and the invoice totals. Amounts
// and totals supplied by the client are discarded.
func PriceInvoice(items []models.InvoiceItem) ([]models.InvoiceItem, invoicecalc.Totals) {
	priced := make([]models.InvoiceItem, len(items))
	lines := make([]invoicecalc.LineItem, len(items))
	for i, it := range items {
		line := it.Line()
		it.Amount = invoicecalc.NumberFromDecimal(line.Amount())
		priced[i] = it
		lines[i] = line
	}
	return priced, invoicecalc.ComputeTotals(lines)
}
