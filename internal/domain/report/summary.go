package report

import (
	"sort"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// Uncategorized is the breakdown key used when a grouping field is empty
const Uncategorized = "uncategorized"

// Breakdown sums one collection
type Breakdown struct {
	Total      decimal.Decimal            `json:"total"`
	Count      int                        `json:"count"`
	ByStatus   map[string]decimal.Decimal `json:"by_status"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
}

func newBreakdown() Breakdown {
	return Breakdown{
		Total:      decimal.Zero,
		ByStatus:   map[string]decimal.Decimal{},
		ByCategory: map[string]decimal.Decimal{},
	}
}

func (b *Breakdown) add(amount decimal.Decimal, status, category string) {
	b.Total = b.Total.Add(amount)
	b.Count++
	b.ByStatus[groupKey(status)] = b.ByStatus[groupKey(status)].Add(amount)
	b.ByCategory[groupKey(category)] = b.ByCategory[groupKey(category)].Add(amount)
}

func groupKey(v string) string {
	if v == "" {
		return Uncategorized
	}
	return v
}

// PayablesSummary adds the payable status cards
type PayablesSummary struct {
	Breakdown
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
	PaidAmount      decimal.Decimal            `json:"paid_amount"`
	PendingAmount   decimal.Decimal            `json:"pending_amount"`
	OverdueAmount   decimal.Decimal            `json:"overdue_amount"`
}

// PayoutsSummary adds the payout status cards
type PayoutsSummary struct {
	Breakdown
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
	PaidAmount      decimal.Decimal            `json:"paid_amount"`
	PendingAmount   decimal.Decimal            `json:"pending_amount"`
}

// FinancesSummary adds completed income and expense totals
type FinancesSummary struct {
	Breakdown
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthBucket is one point of the monthly trend series
type MonthBucket struct {
	Month    time.Month      `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Payouts  decimal.Decimal `json:"payouts"`
}

// IsZero reports whether the bucket has no activity
func (m MonthBucket) IsZero() bool {
	return m.Income.IsZero() && m.Expenses.IsZero() && m.Payouts.IsZero()
}

// CategorySlice is one slice of the category pie
type CategorySlice struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary is the aggregated view of one office's ledger
type Summary struct {
	Payables PayablesSummary `json:"payables"`
	Payouts  PayoutsSummary  `json:"payouts"`
	Finances FinancesSummary `json:"finances"`

	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetCashFlow     decimal.Decimal `json:"net_cash_flow"`
	PendingPayables decimal.Decimal `json:"pending_payables"`
	PendingPayouts  decimal.Decimal `json:"pending_payouts"`
	OverduePayables decimal.Decimal `json:"overdue_payables"`
	OverduePayouts  decimal.Decimal `json:"overdue_payouts"`

	Year       int             `json:"year"`
	Monthly    [12]MonthBucket `json:"monthly"`
	Categories []CategorySlice `json:"categories"`
}

// Aggregate filters the records and computes the summary. The monthly series
// covers the calendar year of asOf, which also decides when a pending payout
// counts as overdue. Cancelled records are counted unless the filter drops
// them.
func Aggregate(records Records, filter Filter, asOf time.Time) Summary {
	selected := filter.Apply(records)
	today := asOf.UTC()

	s := Summary{
		Payables: PayablesSummary{
			Breakdown:       newBreakdown(),
			ByPaymentMethod: map[string]decimal.Decimal{},
		},
		Payouts: PayoutsSummary{
			Breakdown:       newBreakdown(),
			ByPaymentMethod: map[string]decimal.Decimal{},
		},
		Finances:   FinancesSummary{Breakdown: newBreakdown()},
		Year:       today.Year(),
		Categories: []CategorySlice{},
	}
	for i := range s.Monthly {
		s.Monthly[i] = MonthBucket{Month: time.Month(i + 1)}
	}

	for _, p := range selected.Payables {
		s.addPayable(p)
	}
	for _, p := range selected.Payouts {
		s.addPayout(p, today)
	}
	pie := map[string]decimal.Decimal{}
	for _, f := range selected.Finances {
		s.addFinance(f)
		if f.IsCompleted() {
			key := groupKey(string(f.Category))
			pie[key] = pie[key].Add(f.Amount)
		}
	}

	s.NetCashFlow = s.TotalIncome.Sub(s.TotalExpenses)
	s.Categories = sortedSlices(pie)
	return s
}

func (s *Summary) addPayable(p finance.Payable) {
	s.Payables.add(p.Amount, string(p.Status), string(p.Category))
	method := ""
	if p.PaymentMethod != nil {
		method = string(*p.PaymentMethod)
	}
	s.Payables.ByPaymentMethod[groupKey(method)] = s.Payables.ByPaymentMethod[groupKey(method)].Add(p.Amount)

	switch p.Status {
	case finance.PayableStatusPaid:
		s.Payables.PaidAmount = s.Payables.PaidAmount.Add(p.Amount)
		if p.IsIncoming() {
			s.TotalIncome = s.TotalIncome.Add(p.Amount)
		} else {
			s.TotalExpenses = s.TotalExpenses.Add(p.Amount)
		}
		// monthly series follows the due date, not when the money arrived
		if b := s.bucket(p.DueDate); b != nil {
			if p.IsIncoming() {
				b.Income = b.Income.Add(p.Amount)
			} else {
				b.Expenses = b.Expenses.Add(p.Amount)
			}
		}
	case finance.PayableStatusPending:
		s.Payables.PendingAmount = s.Payables.PendingAmount.Add(p.Amount)
		s.PendingPayables = s.PendingPayables.Add(p.Amount)
	case finance.PayableStatusOverdue:
		s.Payables.OverdueAmount = s.Payables.OverdueAmount.Add(p.Amount)
		s.OverduePayables = s.OverduePayables.Add(p.Amount)
	}
}

func (s *Summary) addPayout(p finance.OwnerPayout, today time.Time) {
	s.Payouts.add(p.Amount, string(p.Status), string(p.PayoutType))
	method := ""
	if p.PaymentMethod != nil {
		method = string(*p.PaymentMethod)
	}
	s.Payouts.ByPaymentMethod[groupKey(method)] = s.Payouts.ByPaymentMethod[groupKey(method)].Add(p.Amount)

	switch p.Status {
	case finance.PayoutStatusPaid:
		s.Payouts.PaidAmount = s.Payouts.PaidAmount.Add(p.Amount)
		if b := s.bucket(p.PayoutDate); b != nil {
			b.Payouts = b.Payouts.Add(p.Amount)
		}
	case finance.PayoutStatusPending:
		s.Payouts.PendingAmount = s.Payouts.PendingAmount.Add(p.Amount)
		s.PendingPayouts = s.PendingPayouts.Add(p.Amount)
		if !p.PayoutDate.IsZero() && p.PayoutDate.Before(dayStart(today)) {
			s.OverduePayouts = s.OverduePayouts.Add(p.Amount)
		}
	}
}

func (s *Summary) addFinance(f finance.OfficeFinance) {
	s.Finances.add(f.Amount, string(f.Status), string(f.Category))
	if !f.IsCompleted() {
		return
	}

	b := s.bucket(f.Date)
	switch f.Type {
	case finance.FinanceTypeIncome:
		s.Finances.Income = s.Finances.Income.Add(f.Amount)
		s.TotalIncome = s.TotalIncome.Add(f.Amount)
		if b != nil {
			b.Income = b.Income.Add(f.Amount)
		}
	case finance.FinanceTypeExpense:
		s.Finances.Expenses = s.Finances.Expenses.Add(f.Amount)
		s.TotalExpenses = s.TotalExpenses.Add(f.Amount)
		if b != nil {
			b.Expenses = b.Expenses.Add(f.Amount)
		}
	}
}

// bucket returns the month bucket for t, or nil outside the summary year
func (s *Summary) bucket(t time.Time) *MonthBucket {
	if t.IsZero() || t.Year() != s.Year {
		return nil
	}
	return &s.Monthly[t.Month()-1]
}

// NonZeroMonths counts the months with any activity
func (s Summary) NonZeroMonths() int {
	n := 0
	for _, m := range s.Monthly {
		if !m.IsZero() {
			n++
		}
	}
	return n
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sortedSlices(pie map[string]decimal.Decimal) []CategorySlice {
	out := make([]CategorySlice, 0, len(pie))
	for k, v := range pie {
		out = append(out, CategorySlice{Category: k, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
