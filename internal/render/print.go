package render

import (
	"bytes"
	"html/template"

	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/models"
)

var printTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tax Invoice {{.Number}}</title>
<style>
@page { size: A4; margin: 10mm; }
body { font-family: Arial, sans-serif; font-size: 9pt; margin: 0; }
h1 { text-align: center; font-size: 14px; margin: 2mm 0; }
.frame { width: 190mm; margin: 0 auto; border: 1px solid #000; }
.head { display: flex; border-bottom: 1px solid #000; }
.parties { width: 114mm; border-right: 1px solid #000; }
.party { border-bottom: 1px solid #000; padding: 1mm; min-height: 22mm; }
.party:last-child { border-bottom: none; }
.caption { font-size: 8pt; }
.name { font-size: 10pt; font-weight: bold; }
.meta { width: 76mm; }
.meta div { border-bottom: 1px solid #000; padding: 1mm; }
table { width: 100%; border-collapse: collapse; }
th, td { border-left: 1px solid #000; border-right: 1px solid #000; padding: 1mm; }
th { border-bottom: 1px solid #000; }
td.num { text-align: right; }
tr.blank td { height: 5mm; }
tfoot td { border-top: 1px solid #000; }
.words { border-top: 1px solid #000; padding: 1mm; }
.sign { text-align: right; padding: 1mm 1mm 12mm; }
</style>
</head>
<body>
<h1>TAX INVOICE</h1>
<div class="frame">
  <div class="head">
    <div class="parties">
      <div class="party">
        <div class="name">{{.Company.Name}}</div>
        <div>{{.Company.Address}}</div>
        <div>GSTIN/UIN : {{.Company.GSTIN}}</div>
        <div>State Name : {{.Company.State}}, Code : {{.Company.StateCode}}</div>
      </div>
      <div class="party">
        <div class="caption">Consignee (Ship to)</div>
        <div class="name">{{.Consignee.Name}}</div>
        <div>GSTIN/UIN : {{.Consignee.GSTIN}}</div>
        <div>PAN/IT No : {{.Consignee.PANNumber}}</div>
        <div>Contact : {{.Consignee.Phone}}</div>
      </div>
      <div class="party">
        <div class="caption">Buyer (Bill to)</div>
        <div class="name">{{.Buyer.Name}}</div>
        <div>GSTIN/UIN : {{.Buyer.GSTIN}}</div>
        <div>PAN/IT No : {{.Buyer.PANNumber}}</div>
        <div>Mobile : {{.Buyer.Phone}}</div>
      </div>
    </div>
    <div class="meta">
      <div><span class="caption">Invoice No</span><br><b>{{.Number}}</b></div>
      <div><span class="caption">Dated</span><br><b>{{.Date}}</b></div>
      <div><span class="caption">Buyer's Order No.</span><br><b>{{.PONumber}}</b></div>
    </div>
  </div>
  <table>
    <thead>
      <tr><th>S.No</th><th>Description of Goods</th><th>HSN/SAC</th><th>Quantity</th><th>UOM</th><th>Rate</th><th>Amount</th></tr>
    </thead>
    <tbody>
      {{- range .Lines}}
      <tr><td>{{.No}}</td><td>{{.Name}}</td><td>{{.HSN}}</td><td class="num">{{.Quantity}}</td><td>{{.UOM}}</td><td class="num">{{.Rate}}</td><td class="num">{{.Amount}}</td></tr>
      {{- end}}
      {{- range .Padding}}
      <tr class="blank"><td></td><td></td><td></td><td></td><td></td><td></td><td></td></tr>
      {{- end}}
    </tbody>
    <tfoot>
      <tr><td colspan="6" class="num">Sub Total</td><td class="num">{{.Subtotal}}</td></tr>
      <tr><td colspan="6" class="num">CGST @ {{.HalfRate}}%</td><td class="num">{{.CGST}}</td></tr>
      <tr><td colspan="6" class="num">SGST @ {{.HalfRate}}%</td><td class="num">{{.SGST}}</td></tr>
      <tr><td colspan="6" class="num">Round Off</td><td class="num">{{.RoundOff}}</td></tr>
      <tr><td colspan="6" class="num"><b>Total</b></td><td class="num"><b>&#8377; {{.Total}}</b></td></tr>
    </tfoot>
  </table>
  <div class="words"><span class="caption">Amount Chargeable (in words)</span><br><b>{{.Words}}</b></div>
  <div class="sign"><b>for {{.Company.Name}}</b><br><br><br>Authorised Signatory</div>
</div>
{{- if .AutoPrint}}
<script>
window.addEventListener("load", function () {
  setTimeout(function () { window.focus(); window.print(); }, 300);
});
window.onafterprint = function () { window.close(); };
</script>
{{- end}}
</body>
</html>
`))

type printView struct {
	invoiceView
	AutoPrint bool
}

// InvoiceHTML renders the printable page. With autoPrint the page opens the
// browser print dialog once loaded and closes itself afterwards.
func InvoiceHTML(inv *models.Invoice, company config.CompanyConfig, autoPrint bool) ([]byte, error) {
	var buf bytes.Buffer
	err := printTemplate.Execute(&buf, printView{
		invoiceView: newInvoiceView(inv, company),
		AutoPrint:   autoPrint,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
