package spreadsheet

import (
	"bytes"
	"context"
	"testing"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelEncoder_Encode(t *testing.T) {
	doc := report.Document{
		Title: "Financial Report (January 1, 2026 - March 31, 2026)",
		Start: "January 1, 2026",
		End:   "March 31, 2026",
		Sections: []report.Section{{
			Name:    report.SectionPayables,
			Columns: report.PayableColumns,
			Rows: [][]string{
				{"1500.00", "Rent", "pending", "2026-04-01", "", ""},
				{"200.50", "Maintenance", "paid", "2026-02-01", "2026-02-03", "Cash"},
			},
		}},
		Errors: []report.SectionError{{Section: report.SectionPayouts, Message: "malformed payout"}},
	}

	data, err := NewExcelEncoder().Encode(context.Background(), doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{overviewSheet, report.SectionPayables, errorsSheet}, f.GetSheetList())

	title, err := f.GetCellValue(overviewSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, title)

	rows, err := f.GetRows(report.SectionPayables)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Amount", rows[0][0])
	assert.Equal(t, "Maintenance", rows[2][1])

	amount, err := f.GetCellType(report.SectionPayables, "A3")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, amount)

	problem, err := f.GetCellValue(errorsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "malformed payout", problem)
}

func TestExcelEncoder_EmptyDocument(t *testing.T) {
	data, err := NewExcelEncoder().Encode(context.Background(), report.Document{Title: "Financial Report (All time)"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{overviewSheet}, f.GetSheetList())
}

func TestExcelEncoder_Metadata(t *testing.T) {
	enc := NewExcelEncoder()
	assert.Equal(t, "xlsx", enc.Extension())
	assert.Contains(t, enc.ContentType(), "spreadsheetml")
}
