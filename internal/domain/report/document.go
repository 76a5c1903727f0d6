package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
)

// Section names, in the order they appear in every export
const (
	SectionPayables = "Tenant Payables"
	SectionPayouts  = "Owner Payouts"
	SectionFinances = "Office Finances"
)

var (
	PayableColumns = []string{"Amount", "Category", "Status", "Due Date", "Payment Date", "Payment Method"}
	PayoutColumns  = []string{"Amount", "Owner", "Status", "Payout Date", "Period Start", "Period End", "Payment Method"}
	FinanceColumns = []string{"Amount", "Type", "Category", "Status", "Date", "Is Recurring"}
)

// Section is one table of an export
type Section struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// SectionError records a section that could not be exported
type SectionError struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// Document is the format-neutral form of a financial export. Encoders turn
// it into CSV, a workbook or a PDF.
type Document struct {
	Title    string
	Start    string
	End      string
	Sections []Section
	Errors   []SectionError
}

// HasErrors reports whether any section was dropped
func (d Document) HasErrors() bool {
	return len(d.Errors) > 0
}

// Failed reports whether nothing could be exported although there was data
func (d Document) Failed() bool {
	return len(d.Sections) == 0 && len(d.Errors) > 0
}

// FailedSections lists the names of dropped sections
func (d Document) FailedSections() []string {
	names := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		names = append(names, e.Section)
	}
	return names
}

// BuildDocument lays out the given, already filtered, records. The range only
// feeds the title. Each section is built on its own: a malformed record
// drops its section and is reported in Errors while the other sections are
// kept. Empty collections produce no section at all.
func BuildDocument(data Records, r DateRange) Document {
	start, end := r.Label()
	doc := Document{
		Title: fmt.Sprintf("Financial Report (%s - %s)", start, end),
		Start: start,
		End:   end,
	}

	builders := []struct {
		name    string
		columns []string
		size    int
		rows    func() ([][]string, error)
	}{
		{SectionPayables, PayableColumns, len(data.Payables), func() ([][]string, error) { return payableRows(data.Payables) }},
		{SectionPayouts, PayoutColumns, len(data.Payouts), func() ([][]string, error) { return payoutRows(data.Payouts) }},
		{SectionFinances, FinanceColumns, len(data.Finances), func() ([][]string, error) { return financeRows(data.Finances) }},
	}

	for _, b := range builders {
		if b.size == 0 {
			continue
		}
		rows, err := safeRows(b.rows)
		if err != nil {
			doc.Errors = append(doc.Errors, SectionError{
				Section: b.name,
				Message: fmt.Sprintf("%s could not be exported: %v", b.name, err),
			})
			continue
		}
		doc.Sections = append(doc.Sections, Section{Name: b.name, Columns: b.columns, Rows: rows})
	}

	return doc
}

func safeRows(build func() ([][]string, error)) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("unexpected record layout: %v", r)
		}
	}()
	return build()
}

func payableRows(items []finance.Payable) ([][]string, error) {
	rows := make([][]string, 0, len(items))
	for i := range items {
		p := &items[i]
		if err := p.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, []string{
			p.Amount.StringFixed(2),
			string(p.Category),
			string(p.Status),
			shared.FormatDate(p.DueDate),
			shared.FormatDatePtr(p.PaymentDate),
			methodString(p.PaymentMethod),
		})
	}
	return rows, nil
}

func payoutRows(items []finance.OwnerPayout) ([][]string, error) {
	rows := make([][]string, 0, len(items))
	for i := range items {
		p := &items[i]
		if err := p.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, []string{
			p.Amount.StringFixed(2),
			p.OwnerName(),
			string(p.Status),
			shared.FormatDate(p.PayoutDate),
			shared.FormatDate(p.PeriodStart),
			shared.FormatDate(p.PeriodEnd),
			methodString(p.PaymentMethod),
		})
	}
	return rows, nil
}

func financeRows(items []finance.OfficeFinance) ([][]string, error) {
	rows := make([][]string, 0, len(items))
	for i := range items {
		f := &items[i]
		if err := f.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, []string{
			f.Amount.StringFixed(2),
			string(f.Type),
			string(f.Category),
			string(f.Status),
			shared.FormatDate(f.Date),
			strconv.FormatBool(f.IsRecurring),
		})
	}
	return rows, nil
}

func methodString(m *finance.PaymentMethod) string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Filename builds "<name>-<start>-<end>.<ext>" with open bounds spelled
// all-time and present.
func Filename(name string, r DateRange, ext string) string {
	start, end := "all-time", "present"
	if r.Start != nil {
		start = shared.FormatDate(*r.Start)
	}
	if r.End != nil {
		end = shared.FormatDate(*r.End)
	}
	return fmt.Sprintf("%s-%s-%s.%s", name, start, end, strings.TrimPrefix(ext, "."))
}
