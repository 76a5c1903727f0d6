package report

import (
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Kind selects which slice of the ledger a report covers
type Kind string

const (
	KindPayables Kind = "payables"
	KindPayouts  Kind = "payouts"
	KindIncome   Kind = "income"
	KindExpenses Kind = "expenses"
)

// IsValid checks if the kind is known
func (k Kind) IsValid() bool {
	switch k {
	case KindPayables, KindPayouts, KindIncome, KindExpenses:
		return true
	}
	return false
}

// DateRange bounds a report by calendar day. Either bound may be open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsOpen reports whether neither bound is set
func (r DateRange) IsOpen() bool {
	return r.Start == nil && r.End == nil
}

// Contains checks t against the inclusive range at day precision. A zero
// date never matches an active bound.
func (r DateRange) Contains(t time.Time) bool {
	if r.IsOpen() {
		return true
	}
	if t.IsZero() {
		return false
	}
	day := shared.DateOf(t)
	if r.Start != nil && day.Before(shared.DateOf(*r.Start)) {
		return false
	}
	if r.End != nil && day.After(shared.DateOf(*r.End)) {
		return false
	}
	return true
}

// Label renders the range for report headers, e.g. "2026-01-01 - Present"
func (r DateRange) Label() (start, end string) {
	start, end = "All time", "Present"
	if r.Start != nil {
		start = shared.FormatDate(*r.Start)
	}
	if r.End != nil {
		end = shared.FormatDate(*r.End)
	}
	return start, end
}

// Filter is the set of user-selected constraints applied before
// aggregation or export. Empty slices mean "everything".
type Filter struct {
	Range      DateRange
	Kinds      []Kind
	Categories []string
	Statuses   []string
	Types      []string
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// Wants reports whether records of kind k are selected
func (f Filter) Wants(k Kind) bool {
	if len(f.Kinds) == 0 {
		return true
	}
	for _, want := range f.Kinds {
		if want == k {
			return true
		}
	}
	return false
}

func (f Filter) matches(date time.Time, category, status, typ string, amount decimal.Decimal) bool {
	if !f.Range.Contains(date) {
		return false
	}
	if !contains(f.Categories, category) || !contains(f.Statuses, status) {
		return false
	}
	// payouts carry no type
	if typ != "" && !contains(f.Types, typ) {
		return false
	}
	if f.MinAmount != nil && amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}

func contains(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Records holds the three collections a report is built from. All records
// must belong to the same office.
type Records struct {
	Payables []finance.Payable
	Payouts  []finance.OwnerPayout
	Finances []finance.OfficeFinance
}

// IsEmpty reports whether no collection has rows
func (r Records) IsEmpty() bool {
	return len(r.Payables) == 0 && len(r.Payouts) == 0 && len(r.Finances) == 0
}

// Apply returns the records selected by the filter. Payables are matched on
// due date, payouts on payout date and finances on their date. Payout type
// stands in for category on payouts.
func (f Filter) Apply(in Records) Records {
	var out Records

	if f.Wants(KindPayables) {
		for _, p := range in.Payables {
			if f.matches(p.DueDate, string(p.Category), string(p.Status), string(p.Type), p.Amount) {
				out.Payables = append(out.Payables, p)
			}
		}
	}

	if f.Wants(KindPayouts) {
		for _, p := range in.Payouts {
			if f.matches(p.PayoutDate, string(p.PayoutType), string(p.Status), "", p.Amount) {
				out.Payouts = append(out.Payouts, p)
			}
		}
	}

	wantIncome, wantExpenses := f.Wants(KindIncome), f.Wants(KindExpenses)
	for _, e := range in.Finances {
		if e.Type == finance.FinanceTypeIncome && !wantIncome {
			continue
		}
		if e.Type == finance.FinanceTypeExpense && !wantExpenses {
			continue
		}
		if f.matches(e.Date, string(e.Category), string(e.Status), string(e.Type), e.Amount) {
			out.Finances = append(out.Finances, e)
		}
	}

	return out
}
