package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spm-engineering/billing-service/internal/models"
)

const registerSheet = "Invoices"

var registerHeadings = []interface{}{
	"Invoice No", "Date", "PO Number", "Buyer", "Buyer GSTIN",
	"Sub Total", "CGST", "SGST", "Round Off", "Total",
}

// InvoiceRegister writes one row per invoice into an XLSX workbook.
func InvoiceRegister(invoices []*models.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(registerSheet, "A1", &registerHeadings); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(registerSheet, "A1", "J1", bold); err != nil {
		return nil, err
	}

	for i, inv := range invoices {
		t := inv.Totals
		row := []interface{}{
			inv.InvoiceNumber,
			inv.InvoiceDate,
			inv.PONumber,
			inv.Buyer.Name,
			inv.Buyer.GSTIN,
			t.Subtotal.InexactFloat64(),
			t.CGST.InexactFloat64(),
			t.SGST.InexactFloat64(),
			t.RoundOff.InexactFloat64(),
			t.Total,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write register row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(registerSheet, "A", "A", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(registerSheet, "D", "E", 28); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write invoice register: %w", err)
	}
	return buf.Bytes(), nil
}
