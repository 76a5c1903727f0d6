package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, doc Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, doc))
	return buf.String()
}

func TestBuildDocument_SectionOrderAndHeader(t *testing.T) {
	method := finance.PaymentMethodBankTransfer
	p := payable(1000, finance.PayableStatusPaid, day(2026, 3, 1))
	p.PaymentDate = ptr(day(2026, 3, 2))
	p.PaymentMethod = &method
	po := payout(800, finance.PayoutStatusPending, day(2026, 3, 5))
	po.Owner = &finance.OwnerRef{FullName: "Al-Qahtani, Noura"}

	doc := BuildDocument(Records{
		Payables: []finance.Payable{p},
		Payouts:  []finance.OwnerPayout{po},
		Finances: []finance.OfficeFinance{officeFinance(90, finance.FinanceTypeExpense, finance.FinanceCategoryUtilities, finance.FinanceStatusCompleted, day(2026, 3, 9))},
	}, DateRange{Start: ptr(day(2026, 3, 1))})

	assert.Equal(t, "Financial Report (2026-03-01 - Present)", doc.Title)
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, SectionPayables, doc.Sections[0].Name)
	assert.Equal(t, SectionPayouts, doc.Sections[1].Name)
	assert.Equal(t, SectionFinances, doc.Sections[2].Name)
	assert.False(t, doc.HasErrors())

	out := encode(t, doc)
	assert.True(t, strings.HasPrefix(out, "Financial Report (2026-03-01 - Present)\n\nTenant Payables\n"))
	assert.Contains(t, out, "Amount,Category,Status,Due Date,Payment Date,Payment Method\n1000.00,rent,paid,2026-03-01,2026-03-02,bank_transfer\n")
	assert.Contains(t, out, `800.00,"Al-Qahtani, Noura",pending,2026-03-05,2026-02-05,2026-03-05,`)
	assert.Contains(t, out, "90.00,expense,utilities,completed,2026-03-09,false\n")
}

func TestBuildDocument_OmitsEmptySections(t *testing.T) {
	doc := BuildDocument(Records{
		Finances: []finance.OfficeFinance{officeFinance(10, finance.FinanceTypeIncome, finance.FinanceCategoryOther, finance.FinanceStatusPending, day(2026, 1, 1))},
	}, DateRange{})

	out := encode(t, doc)
	assert.NotContains(t, out, SectionPayables)
	assert.NotContains(t, out, SectionPayouts)
	assert.Contains(t, out, SectionFinances)

	empty := encode(t, BuildDocument(Records{}, DateRange{}))
	assert.Equal(t, "Financial Report (All time - Present)\n", empty)
}

func TestBuildDocument_ContainsSectionFailures(t *testing.T) {
	broken := payout(100, "lost", day(2026, 1, 1))

	doc := BuildDocument(Records{
		Payables: []finance.Payable{payable(10, finance.PayableStatusPaid, day(2026, 1, 1))},
		Payouts:  []finance.OwnerPayout{payout(5, finance.PayoutStatusPaid, day(2026, 1, 1)), broken},
		Finances: []finance.OfficeFinance{officeFinance(20, finance.FinanceTypeIncome, finance.FinanceCategoryOther, finance.FinanceStatusCompleted, day(2026, 1, 1))},
	}, DateRange{})

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, SectionPayables, doc.Sections[0].Name)
	assert.Equal(t, SectionFinances, doc.Sections[1].Name)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, SectionPayouts, doc.Errors[0].Section)
	assert.Contains(t, doc.Errors[0].Message, "unknown status")
	assert.Equal(t, []string{SectionPayouts}, doc.FailedSections())
	assert.False(t, doc.Failed())
}

func TestBuildDocument_AllSectionsFailed(t *testing.T) {
	bad := payable(10, finance.PayableStatusPaid, time.Time{})
	doc := BuildDocument(Records{Payables: []finance.Payable{bad}}, DateRange{})
	assert.True(t, doc.Failed())
}

func TestCSV_PayablesRoundTrip(t *testing.T) {
	originals := []finance.Payable{
		payable(1000, finance.PayableStatusPending, day(2026, 1, 5)),
		payable(500, finance.PayableStatusPaid, day(2026, 2, 5)),
		payable(200, finance.PayableStatusOverdue, day(2026, 3, 5)),
	}
	originals[1].Amount = decimal.RequireFromString("500.75")
	originals[1].Category = finance.PayableCategoryServiceFee
	originals[1].PaymentDate = ptr(day(2026, 2, 6))

	out := encode(t, BuildDocument(Records{Payables: originals}, DateRange{}))

	parsed, err := ParseCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Financial Report (All time - Present)", parsed.Title)

	sec, ok := parsed.Section(SectionPayables)
	require.True(t, ok)
	assert.Equal(t, PayableColumns, sec.Columns)

	rows, err := PayableRows(sec)
	require.NoError(t, err)
	require.Len(t, rows, len(originals))
	for i, want := range originals {
		assert.True(t, want.Amount.Equal(rows[i].Amount), "row %d amount", i)
		assert.Equal(t, want.Category, rows[i].Category)
		assert.Equal(t, want.Status, rows[i].Status)
		assert.Equal(t, want.DueDate, rows[i].DueDate)
	}
	require.NotNil(t, rows[1].PaymentDate)
	assert.Equal(t, day(2026, 2, 6), *rows[1].PaymentDate)
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader("Title\n\n1,2,3\n"))
	assert.Error(t, err)

	_, err = PayableRows(Section{Name: SectionPayouts})
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "financial-report-all-time-present.csv", Filename("financial-report", DateRange{}, "csv"))
	assert.Equal(t, "financial-report-2026-01-01-2026-03-31.xlsx",
		Filename("financial-report", DateRange{Start: ptr(day(2026, 1, 1)), End: ptr(day(2026, 3, 31))}, ".xlsx"))
}

func TestBuildOwnerStatement(t *testing.T) {
	method := finance.PaymentMethodCash
	paid := payout(1500, finance.PayoutStatusPaid, day(2026, 2, 1))
	paid.PaymentMethod = &method
	paid.TransactionRef = "TRX-7"
	paid.Unit = &finance.UnitRef{UnitID: uuid.New(), UnitNumber: "4B", BuildingName: "Palm Tower"}
	pending := payout(500, finance.PayoutStatusPending, day(2026, 3, 1))
	cancelled := payout(999, finance.PayoutStatusCancelled, day(2026, 3, 2))

	st := BuildOwnerStatement("Khalid Omar", []finance.OwnerPayout{paid, pending, cancelled},
		DateRange{Start: ptr(day(2026, 1, 1)), End: ptr(day(2026, 3, 31))})

	assert.Equal(t, "statement-Khalid-Omar-2026-01-01-2026-03-31.txt", st.Filename)
	assertDecimal(t, 2999, st.TotalAmount)
	assertDecimal(t, 1500, st.PaidAmount)
	assertDecimal(t, 500, st.PendingAmount)
	assert.True(t, strings.HasPrefix(st.Text, "Statement for Khalid Omar\nPeriod: 2026-01-01 - 2026-03-31\n"))
	assert.Contains(t, st.Text, "Total Amount: SAR 2,999.00")
	assert.Contains(t, st.Text, "Unit: Palm Tower - Unit 4B")
	assert.Contains(t, st.Text, "Payment Method: cash")
	assert.Contains(t, st.Text, "Reference: TRX-7")
}

func TestNewReceipt(t *testing.T) {
	office := property.Office{Name: "Debrah Realty", City: "Riyadh", CRNumber: "1010"}

	p := payable(1234, finance.PayableStatusPending, day(2026, 3, 4))
	p.ID = uuid.MustParse("abcdef12-3456-4789-8abc-def012345678")
	r := NewReceipt(office, p)

	assert.Equal(t, "ABCDEF12", r.Number)
	assert.Equal(t, "SAR 1,234.00", r.Amount)
	assert.Equal(t, "Rent", r.Category)
	assert.Equal(t, "Incoming", r.Type)
	assert.Equal(t, "PENDING", r.Status)
	assert.Equal(t, "March 4, 2026", r.DueDate)
	assert.Equal(t, "N/A", r.PaymentDate)
	assert.Equal(t, "N/A", r.PaymentMethod)
	assert.Equal(t, "N/A", r.Tenant)
	assert.False(t, r.Paid)

	method := finance.PaymentMethodBankTransfer
	p.Status = finance.PayableStatusPaid
	p.PaymentMethod = &method
	p.Contract = &finance.ContractRef{TenantName: "Fahad", UnitNumber: "7", BuildingName: "Nakheel"}
	r = NewReceipt(office, p)
	assert.Equal(t, "BANK TRANSFER", r.PaymentMethod)
	assert.Equal(t, "Fahad", r.Tenant)
	assert.True(t, r.Paid)
}
