package printing

import (
	"context"

	reportapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
)

// ReceiptPrinter prints payable receipts
type ReceiptPrinter struct {
	renderer HTMLRenderer
}

// NewReceiptPrinter creates a ReceiptPrinter
func NewReceiptPrinter(renderer HTMLRenderer) *ReceiptPrinter {
	return &ReceiptPrinter{renderer: renderer}
}

// RenderReceipt prints one receipt on A4
func (p *ReceiptPrinter) RenderReceipt(ctx context.Context, r report.Receipt) ([]byte, error) {
	html, err := ReceiptHTML(r)
	if err != nil {
		return nil, err
	}
	return p.renderer.RenderHTML(ctx, html, A4Portrait())
}

// PDFEncoder exports report documents as landscape PDF tables
type PDFEncoder struct {
	renderer HTMLRenderer
}

// NewPDFEncoder creates a PDFEncoder
func NewPDFEncoder(renderer HTMLRenderer) *PDFEncoder {
	return &PDFEncoder{renderer: renderer}
}

func (e *PDFEncoder) Encode(ctx context.Context, doc report.Document) ([]byte, error) {
	html, err := ReportHTML(doc)
	if err != nil {
		return nil, err
	}
	opts := A4Landscape()
	opts.FooterHTML = pageFooter
	return e.renderer.RenderHTML(ctx, html, opts)
}

func (e *PDFEncoder) ContentType() string { return "application/pdf" }
func (e *PDFEncoder) Extension() string   { return "pdf" }

var (
	_ reportapp.ReceiptRenderer = (*ReceiptPrinter)(nil)
	_ reportapp.Encoder         = (*PDFEncoder)(nil)
)
