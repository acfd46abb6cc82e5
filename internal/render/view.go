// Package render turns stored invoices into printable documents.
package render

import (
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/invoicecalc"
	"github.com/spm-engineering/billing-service/internal/models"
)

// blankRows pads the items table so short invoices keep the A4 layout.
const blankRows = 15

type lineView struct {
	No       int
	Name     string
	HSN      string
	UOM      string
	Quantity string
	Rate     string
	Amount   string
}

type invoiceView struct {
	Company   config.CompanyConfig
	Number    string
	Date      string
	PONumber  string
	Buyer     models.Party
	Consignee models.Party
	Lines     []lineView
	Padding   []struct{}
	GSTRate   string
	HalfRate  string
	Subtotal  string
	CGST      string
	SGST      string
	RoundOff  string
	Total     string
	Words     string
}

func newInvoiceView(inv *models.Invoice, company config.CompanyConfig) invoiceView {
	v := invoiceView{
		Company:   company,
		Number:    inv.InvoiceNumber,
		Date:      inv.InvoiceDate,
		PONumber:  inv.PONumber,
		Buyer:     inv.Buyer,
		Consignee: inv.Consignee,
		Subtotal:  invoicecalc.FormatIndian(inv.Totals.Subtotal.Decimal),
		CGST:      invoicecalc.FormatIndian(inv.Totals.CGST.Decimal),
		SGST:      invoicecalc.FormatIndian(inv.Totals.SGST.Decimal),
		RoundOff:  invoicecalc.FormatFixed(inv.Totals.RoundOff.Decimal),
		Total:     invoicecalc.FormatIndian(invoicecalc.NumberFromInt(inv.Totals.Total).Decimal),
		Words:     inv.Totals.AmountInWords,
	}

	if len(inv.Items) > 0 {
		rate := inv.Items[0].GSTPercentage.Decimal
		v.GSTRate = rate.String()
		v.HalfRate = rate.Div(invoicecalc.NumberFromInt(2).Decimal).String()
	}

	for i, it := range inv.Items {
		v.Lines = append(v.Lines, lineView{
			No:       i + 1,
			Name:     it.Name,
			HSN:      it.HSN,
			UOM:      it.UOM,
			Quantity: it.Quantity.String(),
			Rate:     invoicecalc.FormatFixed(it.Rate.Decimal),
			Amount:   invoicecalc.FormatIndian(it.Amount.Decimal),
		})
	}
	if pad := blankRows - len(v.Lines); pad > 0 {
		v.Padding = make([]struct{}, pad)
	}
	return v
}
