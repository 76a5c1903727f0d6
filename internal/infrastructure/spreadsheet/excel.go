// Package spreadsheet exports report documents as Excel workbooks.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"

	reportapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	overviewSheet = "Overview"
	errorsSheet   = "Left Out"
	columnWidth   = 18
)

// ExcelEncoder writes one worksheet per report section behind an overview
// sheet carrying the title and period
type ExcelEncoder struct{}

// NewExcelEncoder creates an ExcelEncoder
func NewExcelEncoder() *ExcelEncoder {
	return &ExcelEncoder{}
}

func (e *ExcelEncoder) Encode(_ context.Context, doc report.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F3F4F6"}},
	})
	if err != nil {
		return nil, err
	}

	overview := [][]any{
		{"Title", doc.Title},
		{"Period Start", doc.Start},
		{"Period End", doc.End},
	}
	for _, sec := range doc.Sections {
		overview = append(overview, []any{sec.Name, fmt.Sprintf("%d records", len(sec.Rows))})
	}
	if err := writeRows(f, overviewSheet, overview); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(overviewSheet, "A", "B", 40)

	for _, sec := range doc.Sections {
		if err := writeSection(f, sec, header); err != nil {
			return nil, fmt.Errorf("write %s: %w", sec.Name, err)
		}
	}

	if doc.HasErrors() {
		if _, err := f.NewSheet(errorsSheet); err != nil {
			return nil, err
		}
		rows := [][]any{{"Section", "Problem"}}
		for _, se := range doc.Errors {
			rows = append(rows, []any{se.Section, se.Message})
		}
		if err := writeRows(f, errorsSheet, rows); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(errorsSheet, "A1", "B1", header)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *ExcelEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelEncoder) Extension() string { return "xlsx" }

func writeSection(f *excelize.File, sec report.Section, header int) error {
	if _, err := f.NewSheet(sec.Name); err != nil {
		return err
	}
	rows := make([][]any, 0, len(sec.Rows)+1)
	head := make([]any, len(sec.Columns))
	for i, c := range sec.Columns {
		head[i] = c
	}
	rows = append(rows, head)
	for _, r := range sec.Rows {
		row := make([]any, len(r))
		for i, v := range r {
			row[i] = cellValue(sec.Columns, i, v)
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, sec.Name, rows); err != nil {
		return err
	}

	last, err := excelize.ColumnNumberToName(max(len(sec.Columns), 1))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sec.Name, "A1", last+"1", header); err != nil {
		return err
	}
	return f.SetColWidth(sec.Name, "A", last, columnWidth)
}

// cellValue keeps amounts numeric so they can be summed in Excel
func cellValue(columns []string, i int, v string) any {
	if i < len(columns) && columns[i] == "Amount" {
		if d, err := decimal.NewFromString(v); err == nil {
			f, _ := d.Float64()
			return f
		}
	}
	return v
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

var _ reportapp.Encoder = (*ExcelEncoder)(nil)
