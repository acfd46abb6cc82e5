package models

import (
	"time"

	"github.com/spm-engineering/billing-service/internal/invoicecalc"
)

// Party is the buyer or consignee block, copied onto the invoice at save time.
type Party struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	GSTIN     string `json:"gstin" binding:"omitempty,gstin"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty"`
	PANNumber string `json:"panNumber,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type InvoiceItem struct {
	ItemID        string             `json:"item_id"`
	Name          string             `json:"name"`
	HSN           string             `json:"hsn"`
	UOM           string             `json:"uom"`
	Quantity      invoicecalc.Number `json:"quantity"`
	Rate          invoicecalc.Number `json:"rate"`
	GSTPercentage invoicecalc.Number `json:"gst_percentage"`
	Amount        invoicecalc.Number `json:"amount"`
}

// Line is the calculator view of the row.
func (it InvoiceItem) Line() invoicecalc.LineItem {
	return invoicecalc.LineItem{
		Name:          it.Name,
		HSN:           it.HSN,
		UOM:           it.UOM,
		Quantity:      it.Quantity,
		Rate:          it.Rate,
		GSTPercentage: it.GSTPercentage,
	}
}

type InvoiceMeta struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type Invoice struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	FinancialYear  string             `json:"financial_year"`
	SequenceNumber int                `json:"sequence_number"`
	InvoiceDate    string             `json:"invoice_date"`
	PONumber       string             `json:"po_number"`
	Buyer          Party              `json:"buyer"`
	Consignee      Party              `json:"consignee"`
	Items          []InvoiceItem      `json:"items"`
	Totals         invoicecalc.Totals `json:"totals"`
	Meta           InvoiceMeta        `json:"meta"`
}

// Lines returns the calculator rows for the invoice items.
func (inv *Invoice) Lines() []invoicecalc.LineItem {
	lines := make([]invoicecalc.LineItem, len(inv.Items))
	for i, it := range inv.Items {
		lines[i] = it.Line()
	}
	return lines
}

// InvoiceRequest is the body of create and update calls. Totals sent by the
// client are accepted for compatibility but always recomputed.
type InvoiceRequest struct {
	InvoiceDate string              `json:"invoice_date" binding:"required"`
	PONumber    string              `json:"po_number"`
	Buyer       Party               `json:"buyer"`
	Consignee   Party               `json:"consignee"`
	Items       []InvoiceItem       `json:"items"`
	Totals      *invoicecalc.Totals `json:"totals,omitempty"`
}

type CalculateRequest struct {
	Items []invoicecalc.LineItem `json:"items"`
}
