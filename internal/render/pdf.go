package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/models"
)

// Column widths of the items table, in mm. They add up to the 190mm frame.
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"S.No", 10, "C"},
	{"Description of Goods", 70, "L"},
	{"HSN/SAC", 22, "C"},
	{"Quantity", 20, "R"},
	{"UOM", 16, "C"},
	{"Rate", 22, "R"},
	{"Amount", 30, "R"},
}

// InvoicePDF renders inv as a single A4 tax invoice.
func InvoicePDF(inv *models.Invoice, company config.CompanyConfig) ([]byte, error) {
	v := newInvoiceView(inv, company)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 8, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.SetTitle("Tax Invoice "+v.Number, true)
	pdf.SetCreator(company.Name, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, "TAX INVOICE", "", 1, "C", false, 0, "")

	top := pdf.GetY()
	writeParty(pdf, tr, 10, top, "", company.Name, []string{
		company.Address,
		"GSTIN/UIN : " + company.GSTIN,
		fmt.Sprintf("State Name : %s, Code : %s", company.State, company.StateCode),
	})
	writeParty(pdf, tr, 10, top+26, "Consignee (Ship to)", v.Consignee.Name, partyLines(v.Consignee))
	writeParty(pdf, tr, 10, top+52, "Buyer (Bill to)", v.Buyer.Name, partyLines(v.Buyer))

	metaRow := func(y float64, label, value string) {
		pdf.SetXY(124, y)
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(76, 5, label, "LTR", 2, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(76, 8, tr(value), "LBR", 0, "L", false, 0, "")
	}
	metaRow(top, "Invoice No", v.Number)
	metaRow(top+13, "Dated", v.Date)
	metaRow(top+26, "Buyer's Order No.", v.PONumber)

	pdf.SetXY(10, top+80)
	pdf.SetFont("Arial", "B", 9)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range v.Lines {
		cells := []string{fmt.Sprint(line.No), line.Name, line.HSN, line.Quantity, line.UOM, line.Rate, line.Amount}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, tr(cells[i]), "LR", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	for range v.Padding {
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, "", "LR", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 9)
		pdf.CellFormat(160, 6, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, value, "1", 1, "R", false, 0, "")
	}
	totalRow("Sub Total", v.Subtotal, false)
	totalRow(fmt.Sprintf("CGST @ %s%%", v.HalfRate), v.CGST, false)
	totalRow(fmt.Sprintf("SGST @ %s%%", v.HalfRate), v.SGST, false)
	totalRow("Round Off", v.RoundOff, false)
	totalRow("Total", "Rs. "+v.Total, true)

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(190, 6, "Amount Chargeable (in words)", "LR", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.MultiCell(190, 6, tr(v.Words), "LBR", "L", false)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(190, 6, tr("for "+company.Name), "", 1, "R", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(190, 6, "Authorised Signatory", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeParty(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, caption, name string, lines []string) {
	pdf.Rect(x, y, 114, 26, "D")
	pdf.SetXY(x+1, y+1)
	if caption != "" {
		pdf.SetFont("Arial", "", 7)
		pdf.CellFormat(112, 4, caption, "", 2, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(112, 5, tr(name), "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	for _, l := range lines {
		pdf.CellFormat(112, 4, tr(l), "", 2, "L", false, 0, "")
	}
}

func partyLines(p models.Party) []string {
	lines := []string{"GSTIN/UIN : " + p.GSTIN}
	if p.Address != "" {
		lines = append([]string{p.Address}, lines...)
	}
	lines = append(lines, "PAN/IT No : "+p.PANNumber, "Contact : "+p.Phone)
	return lines
}
