package printing

import (
	"bytes"
	"html/template"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
)

const baseStyle = `
body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1f2937; font-size: 12px; margin: 0; }
h1 { font-size: 22px; margin: 0 0 4px; }
h2 { font-size: 15px; margin: 24px 0 8px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 12px; }
th, td { border: 1px solid #d1d5db; padding: 6px 8px; text-align: left; }
th { background: #f3f4f6; }
.muted { color: #6b7280; }
`

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>Receipt {{.Number}}</title>
<style>` + baseStyle + `
.header { display: flex; justify-content: space-between; border-bottom: 2px solid #111827; padding-bottom: 12px; }
.header img { max-height: 64px; }
.title { text-align: right; }
.watermark { position: fixed; top: 40%; left: 18%; font-size: 140px; color: rgba(22, 163, 74, 0.15); transform: rotate(-30deg); font-weight: bold; }
.signatures { display: flex; justify-content: space-between; margin-top: 64px; }
.signatures div { width: 40%; border-top: 1px solid #111827; padding-top: 6px; text-align: center; }
</style></head>
<body>
{{if .Paid}}<div class="watermark">PAID</div>{{end}}
<div class="header">
  <div>
    {{if .Office.LogoURL}}<img src="{{.Office.LogoURL}}" alt="logo">{{end}}
    <h1>{{.Office.Name}}</h1>
    {{with .Office.Address}}<div>{{.}}</div>{{end}}
    {{with .Office.City}}<div>{{.}}</div>{{end}}
    {{with .Office.Phone}}<div>Phone: {{.}}</div>{{end}}
    {{with .Office.Email}}<div>Email: {{.}}</div>{{end}}
    {{with .Office.CRNumber}}<div>CR: {{.}}</div>{{end}}
  </div>
  <div class="title">
    <h1>RECEIPT</h1>
    <div>Receipt #{{.Number}}</div>
  </div>
</div>
<h2>Receipt Details</h2>
<table>
  <tr><th>Amount</th><td>{{.Amount}}</td></tr>
  <tr><th>Category</th><td>{{.Category}}</td></tr>
  <tr><th>Type</th><td>{{.Type}}</td></tr>
  <tr><th>Status</th><td>{{.Status}}</td></tr>
  <tr><th>Due Date</th><td>{{.DueDate}}</td></tr>
  <tr><th>Payment Date</th><td>{{.PaymentDate}}</td></tr>
  <tr><th>Payment Method</th><td>{{.PaymentMethod}}</td></tr>
  <tr><th>Reference</th><td>{{.Reference}}</td></tr>
</table>
<h2>Property Details</h2>
<table>
  <tr><th>Building</th><td>{{.Building}}</td></tr>
  <tr><th>Unit</th><td>{{.Unit}}</td></tr>
  <tr><th>Tenant</th><td>{{.Tenant}}</td></tr>
</table>
{{with .Notes}}<h2>Notes</h2><p>{{.}}</p>{{end}}
<div class="signatures"><div>Received By</div><div>Authorized Signature</div></div>
</body></html>`))

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>{{.Title}}</title>
<style>` + baseStyle + `</style></head>
<body>
<h1>{{.Title}}</h1>
<div class="muted">{{.Start}} - {{.End}}</div>
{{range .Sections}}
<h2>{{.Name}}</h2>
<table>
  <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
</table>
{{else}}
<p class="muted">No records in this period.</p>
{{end}}
{{if .Errors}}
<h2>Sections left out</h2>
<ul>{{range .Errors}}<li>{{.Section}}: {{.Message}}</li>{{end}}</ul>
{{end}}
</body></html>`))

// pageFooter numbers the pages of long reports
const pageFooter = `<div style="font-size:9px;width:100%;text-align:center;color:#6b7280;">Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// ReceiptHTML lays out a receipt
func ReceiptHTML(r report.Receipt) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, r); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to lay out receipt", err)
	}
	return buf.String(), nil
}

// ReportHTML lays out a financial report document
func ReportHTML(doc report.Document) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, doc); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to lay out report", err)
	}
	return buf.String(), nil
}
