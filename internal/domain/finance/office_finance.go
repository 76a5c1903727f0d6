package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recurrence describes how a recurring office finance repeats
type Recurrence struct {
	Frequency  RecurringFrequency
	DayOfMonth int
}

// Validate checks the recurrence rule
func (r Recurrence) Validate() error {
	if !r.Frequency.IsValid() {
		return shared.NewDomainError("INVALID_FREQUENCY", "Recurring entries need a monthly, quarterly or yearly frequency")
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return shared.NewDomainError("INVALID_RECURRING_DAY", "Recurring day must be between 1 and 31")
	}
	return nil
}

// OfficeFinance is a general ledger style income or expense of the office
// itself, not tied to a tenant contract.
type OfficeFinance struct {
	shared.OfficeAggregateRoot
	Amount         decimal.Decimal
	Type           FinanceType
	Category       FinanceCategory
	Status         FinanceStatus
	Date           time.Time
	IsRecurring    bool
	Recurrence     *Recurrence
	TransactionRef string
	Notes          string
	// SourceID links a generated occurrence to the recurring entry it came from
	SourceID *uuid.UUID
}

// NewOfficeFinanceInput carries the fields of a new entry
type NewOfficeFinanceInput struct {
	Amount         decimal.Decimal
	Type           FinanceType
	Category       FinanceCategory
	Status         FinanceStatus
	Date           time.Time
	Recurrence     *Recurrence
	TransactionRef string
	Notes          string
}

// NewOfficeFinance creates an office income or expense entry
func NewOfficeFinance(officeID uuid.UUID, in NewOfficeFinanceInput) (*OfficeFinance, error) {
	if officeID == uuid.Nil {
		return nil, shared.ErrSessionRequired
	}
	if in.Status == "" {
		in.Status = FinanceStatusPending
	}
	if in.Status == FinanceStatusCancelled || !in.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "A new entry must be pending or completed")
	}
	if err := validateFinanceFields(in.Amount, in.Type, in.Category, in.Date, in.Recurrence); err != nil {
		return nil, err
	}

	f := &OfficeFinance{
		OfficeAggregateRoot: shared.NewOfficeAggregateRoot(officeID),
		Amount:              in.Amount,
		Type:                in.Type,
		Category:            in.Category,
		Status:              in.Status,
		Date:                shared.DateOf(in.Date),
		IsRecurring:         in.Recurrence != nil,
		Recurrence:          in.Recurrence,
		TransactionRef:      strings.TrimSpace(in.TransactionRef),
		Notes:               strings.TrimSpace(in.Notes),
	}

	f.AddDomainEvent(NewOfficeFinanceCreatedEvent(f))
	return f, nil
}

func validateFinanceFields(amount decimal.Decimal, typ FinanceType, category FinanceCategory, date time.Time, rec *Recurrence) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if !typ.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Type must be income or expense")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Please choose a valid category")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	if rec != nil {
		return rec.Validate()
	}
	return nil
}

// OfficeFinanceUpdate holds the editable fields
type OfficeFinanceUpdate struct {
	Amount         decimal.Decimal
	Type           FinanceType
	Category       FinanceCategory
	Date           time.Time
	Recurrence     *Recurrence
	TransactionRef string
	Notes          string
}

// Update edits a pending entry
func (f *OfficeFinance) Update(u OfficeFinanceUpdate) error {
	if f.Status != FinanceStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("A %s entry can no longer be edited", f.Status))
	}
	if err := validateFinanceFields(u.Amount, u.Type, u.Category, u.Date, u.Recurrence); err != nil {
		return err
	}

	f.Amount = u.Amount
	f.Type = u.Type
	f.Category = u.Category
	f.Date = shared.DateOf(u.Date)
	f.IsRecurring = u.Recurrence != nil
	f.Recurrence = u.Recurrence
	f.TransactionRef = strings.TrimSpace(u.TransactionRef)
	f.Notes = strings.TrimSpace(u.Notes)
	f.Touch()
	return nil
}

// Complete marks the entry as settled
func (f *OfficeFinance) Complete(transactionRef string) error {
	if f.Status != FinanceStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete a %s entry", f.Status))
	}
	f.Status = FinanceStatusCompleted
	if ref := strings.TrimSpace(transactionRef); ref != "" {
		f.TransactionRef = ref
	}
	f.Touch()
	f.AddDomainEvent(NewOfficeFinanceCompletedEvent(f))
	return nil
}

// Cancel voids a pending entry
func (f *OfficeFinance) Cancel() error {
	if f.Status != FinanceStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s entry", f.Status))
	}
	f.Status = FinanceStatusCancelled
	f.Touch()
	return nil
}

// NextOccurrence returns the date of the occurrence following after, using
// the recurrence day clamped to the target month's length. It returns false
// for non-recurring entries.
func (f *OfficeFinance) NextOccurrence(after time.Time) (time.Time, bool) {
	if !f.IsRecurring || f.Recurrence == nil {
		return time.Time{}, false
	}
	step := f.Recurrence.Frequency.Months()
	after = shared.DateOf(after)

	anchor := f.Date
	for i := 1; i < 1200; i++ {
		candidate := occurrenceIn(anchor, step*i, f.Recurrence.DayOfMonth)
		if candidate.After(after) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

func occurrenceIn(anchor time.Time, monthsAhead, day int) time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, monthsAhead, 0)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// SpawnOccurrence creates the pending entry for the given occurrence date.
// The generated entry is not itself recurring.
func (f *OfficeFinance) SpawnOccurrence(on time.Time) (*OfficeFinance, error) {
	if !f.IsRecurring {
		return nil, shared.NewDomainError("INVALID_STATE", "Only recurring entries generate occurrences")
	}
	next, err := NewOfficeFinance(f.OfficeID, NewOfficeFinanceInput{
		Amount:   f.Amount,
		Type:     f.Type,
		Category: f.Category,
		Status:   FinanceStatusPending,
		Date:     on,
		Notes:    f.Notes,
	})
	if err != nil {
		return nil, err
	}
	source := f.ID
	next.SourceID = &source
	return next, nil
}

// Validate checks a loaded entry for fields an export cannot represent
func (f *OfficeFinance) Validate() error {
	if !f.Type.IsValid() {
		return fmt.Errorf("office finance %s: unknown type %q", f.ID, f.Type)
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("office finance %s: unknown category %q", f.ID, f.Category)
	}
	if !f.Status.IsValid() {
		return fmt.Errorf("office finance %s: unknown status %q", f.ID, f.Status)
	}
	if f.Date.IsZero() {
		return fmt.Errorf("office finance %s: missing date", f.ID)
	}
	if f.Amount.IsNegative() {
		return fmt.Errorf("office finance %s: negative amount", f.ID)
	}
	return nil
}

func (f *OfficeFinance) IsCompleted() bool { return f.Status == FinanceStatusCompleted }
