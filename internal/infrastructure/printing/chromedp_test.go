package printing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	html string
	opts PageOptions
	err  error
}

func (f *fakeRenderer) RenderHTML(_ context.Context, html string, opts PageOptions) ([]byte, error) {
	f.html, f.opts = html, opts
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7"), nil
}

func TestPrintParamsFor(t *testing.T) {
	p := printParamsFor(A4Portrait())

	assert.InDelta(t, 210/25.4, p.PaperWidth, 0.001)
	assert.InDelta(t, 297/25.4, p.PaperHeight, 0.001)
	assert.InDelta(t, 12/25.4, p.MarginTop, 0.001)
	assert.False(t, p.Landscape)
	assert.False(t, p.DisplayHeaderFooter)

	opts := A4Landscape()
	opts.MarginMM = 5
	opts.FooterHTML = pageFooter
	p = printParamsFor(opts)

	assert.True(t, p.Landscape)
	assert.True(t, p.DisplayHeaderFooter)
	assert.InDelta(t, 10/25.4, p.MarginBottom, 0.001)
	assert.InDelta(t, 5/25.4, p.MarginTop, 0.001)
}

func TestChromedpRenderer_RejectsEmptyHTML(t *testing.T) {
	r := NewChromedpRenderer(ChromedpConfig{})
	defer r.Close()

	_, err := r.RenderHTML(context.Background(), "  ", A4Portrait())

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func sampleReceipt() report.Receipt {
	return report.Receipt{
		Office: report.ReceiptOffice{
			Name:     "Debrah Realty",
			Address:  "King Fahd Road",
			City:     "Riyadh",
			CRNumber: "1010123456",
		},
		Number:        "3F2A9C1B",
		Amount:        "SAR 1,500.00",
		Category:      "Rent",
		Type:          "Incoming",
		Status:        "PAID",
		DueDate:       "April 1, 2026",
		PaymentDate:   "April 2, 2026",
		PaymentMethod: "Bank Transfer",
		Reference:     "TRX-1",
		Building:      "Palm Tower",
		Unit:          "A-12",
		Tenant:        "Omar <Saleh>",
		Paid:          true,
	}
}

func TestReceiptHTML(t *testing.T) {
	html, err := ReceiptHTML(sampleReceipt())
	require.NoError(t, err)

	for _, want := range []string{"Debrah Realty", "RECEIPT", "Receipt #3F2A9C1B", "SAR 1,500.00", "CR: 1010123456", "Palm Tower", "Authorized Signature"} {
		assert.Contains(t, html, want)
	}
	assert.Contains(t, html, `class="watermark">PAID`)
	assert.Contains(t, html, "Omar &lt;Saleh&gt;")

	unpaid := sampleReceipt()
	unpaid.Paid = false
	html, err = ReceiptHTML(unpaid)
	require.NoError(t, err)
	assert.NotContains(t, html, `class="watermark"`)
}

func TestReceiptPrinter(t *testing.T) {
	fake := &fakeRenderer{}
	pdf, err := NewReceiptPrinter(fake).RenderReceipt(context.Background(), sampleReceipt())

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(pdf))
	assert.Contains(t, fake.html, "Receipt #3F2A9C1B")
	assert.False(t, fake.opts.Landscape)

	fake.err = errors.New("chrome crashed")
	_, err = NewReceiptPrinter(fake).RenderReceipt(context.Background(), sampleReceipt())
	assert.Error(t, err)
}

func TestPDFEncoder(t *testing.T) {
	fake := &fakeRenderer{}
	enc := NewPDFEncoder(fake)
	doc := report.Document{
		Title: "Financial Report (January 1, 2026 - March 31, 2026)",
		Sections: []report.Section{{
			Name:    report.SectionPayables,
			Columns: report.PayableColumns,
			Rows:    [][]string{{"1500.00", "Rent", "pending", "2026-04-01", "", ""}},
		}},
		Errors: []report.SectionError{{Section: report.SectionPayouts, Message: "malformed payout"}},
	}

	data, err := enc.Encode(context.Background(), doc)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.True(t, fake.opts.Landscape)
	assert.NotEmpty(t, fake.opts.FooterHTML)
	assert.Contains(t, fake.html, "<th>Due Date</th>")
	assert.Contains(t, fake.html, "Owner Payouts: malformed payout")
	assert.Equal(t, 1, strings.Count(fake.html, "<h2>Tenant Payables</h2>"))
	assert.Equal(t, "application/pdf", enc.ContentType())
	assert.Equal(t, "pdf", enc.Extension())
}
