package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EncodeCSV writes the document as a single CSV text: the title, then each
// section as a name line, a column line and its rows, separated by blank
// lines.
func EncodeCSV(w io.Writer, doc Document) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{doc.Title}); err != nil {
		return err
	}
	for _, sec := range doc.Sections {
		cw.Flush()
		buf.WriteString("\n")
		if err := cw.Write([]string{sec.Name}); err != nil {
			return err
		}
		if err := cw.Write(sec.Columns); err != nil {
			return err
		}
		if err := cw.WriteAll(sec.Rows); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// ParseCSV reads a document written by EncodeCSV back into its sections
func ParseCSV(r io.Reader) (Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var doc Document
	var current *Section
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, fmt.Errorf("parse export: %w", err)
		}

		switch {
		case first:
			doc.Title = rec[0]
			first = false
		case len(rec) == 1 && isSectionName(rec[0]):
			doc.Sections = append(doc.Sections, Section{Name: rec[0]})
			current = &doc.Sections[len(doc.Sections)-1]
		case current == nil:
			return Document{}, fmt.Errorf("parse export: row outside of a section")
		case current.Columns == nil:
			current.Columns = rec
		default:
			current.Rows = append(current.Rows, rec)
		}
	}
	if first {
		return Document{}, errors.New("parse export: empty input")
	}
	return doc, nil
}

func isSectionName(s string) bool {
	return s == SectionPayables || s == SectionPayouts || s == SectionFinances
}

// Section returns the named section, if present
func (d Document) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// PayableRow is a payables line read back from an export
type PayableRow struct {
	Amount        decimal.Decimal
	Category      finance.PayableCategory
	Status        finance.PayableStatus
	DueDate       time.Time
	PaymentDate   *time.Time
	PaymentMethod string
}

// PayableRows decodes the rows of a payables section
func PayableRows(sec Section) ([]PayableRow, error) {
	if sec.Name != SectionPayables {
		return nil, fmt.Errorf("section %q is not %q", sec.Name, SectionPayables)
	}
	out := make([]PayableRow, 0, len(sec.Rows))
	for i, rec := range sec.Rows {
		if len(rec) != len(PayableColumns) {
			return nil, fmt.Errorf("payables row %d: expected %d fields, got %d", i+1, len(PayableColumns), len(rec))
		}
		amount, err := decimal.NewFromString(rec[0])
		if err != nil {
			return nil, fmt.Errorf("payables row %d: amount: %w", i+1, err)
		}
		due, err := shared.ParseDate(rec[3])
		if err != nil {
			return nil, fmt.Errorf("payables row %d: due date: %w", i+1, err)
		}
		row := PayableRow{
			Amount:        amount,
			Category:      finance.PayableCategory(rec[1]),
			Status:        finance.PayableStatus(rec[2]),
			DueDate:       due,
			PaymentMethod: rec[5],
		}
		if rec[4] != "" {
			paid, err := shared.ParseDate(rec[4])
			if err != nil {
				return nil, fmt.Errorf("payables row %d: payment date: %w", i+1, err)
			}
			row.PaymentDate = &paid
		}
		out = append(out, row)
	}
	return out, nil
}
