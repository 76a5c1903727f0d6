package report

import (
	"bytes"
	"context"
	"strings"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"go.uber.org/zap"
)

// Format is an export file format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// ErrExportFailed is returned when no part of the report could be exported
var ErrExportFailed = shared.NewDomainError("EXPORT_FAILED", "We couldn't export the report. Please try again")

// Encoder renders a report document into a file
type Encoder interface {
	Encode(ctx context.Context, doc report.Document) ([]byte, error)
	ContentType() string
	Extension() string
}

// CSVEncoder writes the document as CSV
type CSVEncoder struct{}

func (CSVEncoder) Encode(_ context.Context, doc report.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := report.EncodeCSV(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (CSVEncoder) ContentType() string { return "text/csv; charset=utf-8" }
func (CSVEncoder) Extension() string   { return "csv" }

// ExportResult is a finished export file
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
	// Errors lists the sections left out because their records were malformed
	Errors []report.SectionError
}

// ExportService exports filtered ledger records to files
type ExportService struct {
	reports  *Service
	encoders map[Format]Encoder
	logger   *zap.Logger
}

// NewExportService creates an ExportService. CSV is always available; other
// formats are registered by the caller.
func NewExportService(reports *Service, encoders map[Format]Encoder, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	all := map[Format]Encoder{FormatCSV: CSVEncoder{}}
	for f, enc := range encoders {
		if enc != nil {
			all[f] = enc
		}
	}
	return &ExportService{reports: reports, encoders: all, logger: logger}
}

// Formats lists the registered formats
func (s *ExportService) Formats() []Format {
	out := make([]Format, 0, len(s.encoders))
	for _, f := range []Format{FormatCSV, FormatExcel, FormatPDF} {
		if _, ok := s.encoders[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Export loads the records selected by filter and encodes them. Sections with
// malformed records are dropped and reported in the result; the export only
// fails when every non-empty section failed.
func (s *ExportService) Export(ctx context.Context, session shared.Session, filter report.Filter, format Format) (*ExportResult, error) {
	enc, ok := s.encoders[Format(strings.ToLower(string(format)))]
	if !ok {
		return nil, shared.NewDomainError("INVALID_FORMAT", "Export format must be csv, excel or pdf")
	}

	records, err := s.reports.Load(ctx, session, filter)
	if err != nil {
		return nil, err
	}

	doc := report.BuildDocument(records, filter.Range)
	for _, e := range doc.Errors {
		s.logger.Warn("export section dropped",
			zap.String("office_id", session.OfficeID.String()),
			zap.String("section", e.Section),
			zap.String("reason", e.Message),
		)
	}
	if doc.Failed() {
		return nil, ErrExportFailed
	}

	data, err := enc.Encode(ctx, doc)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("export encoding failed", zap.String("format", string(format)), zap.Error(err))
		return nil, ErrExportFailed
	}

	return &ExportResult{
		Filename:    report.Filename("financial-report", filter.Range, enc.Extension()),
		ContentType: enc.ContentType(),
		Data:        data,
		Errors:      doc.Errors,
	}, nil
}
