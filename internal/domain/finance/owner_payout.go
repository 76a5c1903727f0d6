package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerRef is the read-only view of the owner receiving a payout
type OwnerRef struct {
	OwnerID  uuid.UUID `json:"owner_id"`
	FullName string    `json:"full_name"`
}

// UnitRef is the read-only view of a unit and its building
type UnitRef struct {
	UnitID       uuid.UUID `json:"unit_id"`
	UnitNumber   string    `json:"unit_number"`
	BuildingName string    `json:"building_name"`
}

// OwnerPayout is money disbursed to a property owner for rent collected on
// their behalf over a period.
type OwnerPayout struct {
	shared.OfficeAggregateRoot
	OwnerID        uuid.UUID
	UnitID         *uuid.UUID
	Amount         decimal.Decimal
	PayoutDate     time.Time
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Status         PayoutStatus
	PayoutType     PayoutType
	PaymentMethod  *PaymentMethod
	TransactionRef string
	Notes          string
	Attachments    []Attachment

	// Filled by read queries only.
	Owner *OwnerRef
	Unit  *UnitRef
}

// NewOwnerPayoutInput carries the fields of a new payout
type NewOwnerPayoutInput struct {
	OwnerID        uuid.UUID
	UnitID         *uuid.UUID
	Amount         decimal.Decimal
	PayoutDate     time.Time
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Status         PayoutStatus
	PayoutType     PayoutType
	PaymentMethod  *PaymentMethod
	TransactionRef string
	Notes          string
}

// NewOwnerPayout records a payout. Status defaults to pending; a payout can be
// entered directly as paid when the transfer already happened.
func NewOwnerPayout(officeID uuid.UUID, in NewOwnerPayoutInput) (*OwnerPayout, error) {
	if officeID == uuid.Nil {
		return nil, shared.ErrSessionRequired
	}
	if in.OwnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Please choose the owner receiving this payout")
	}
	if in.Status == "" {
		in.Status = PayoutStatusPending
	}
	if in.Status == PayoutStatusCancelled || !in.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "A new payout must be pending or paid")
	}
	if err := validatePayoutFields(in.Amount, in.PayoutType, in.PayoutDate, in.PeriodStart, in.PeriodEnd, in.PaymentMethod); err != nil {
		return nil, err
	}

	p := &OwnerPayout{
		OfficeAggregateRoot: shared.NewOfficeAggregateRoot(officeID),
		OwnerID:             in.OwnerID,
		UnitID:              in.UnitID,
		Amount:              in.Amount,
		PayoutDate:          shared.DateOf(in.PayoutDate),
		PeriodStart:         shared.DateOf(in.PeriodStart),
		PeriodEnd:           shared.DateOf(in.PeriodEnd),
		Status:              in.Status,
		PayoutType:          in.PayoutType,
		PaymentMethod:       in.PaymentMethod,
		TransactionRef:      strings.TrimSpace(in.TransactionRef),
		Notes:               strings.TrimSpace(in.Notes),
		Attachments:         []Attachment{},
	}

	p.AddDomainEvent(NewOwnerPayoutCreatedEvent(p))
	return p, nil
}

func validatePayoutFields(amount decimal.Decimal, typ PayoutType, payoutDate, start, end time.Time, method *PaymentMethod) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if !typ.IsValid() {
		return shared.NewDomainError("INVALID_PAYOUT_TYPE", "Please choose a valid payout type")
	}
	if payoutDate.IsZero() {
		return shared.NewDomainError("INVALID_PAYOUT_DATE", "Payout date is required")
	}
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_PERIOD", "The rental period start and end are required")
	}
	if end.Before(start) {
		return shared.NewDomainError("INVALID_PERIOD", "The rental period cannot end before it starts")
	}
	if method != nil && !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Please choose a valid payment method")
	}
	return nil
}

// OwnerPayoutUpdate holds the editable fields of a payout
type OwnerPayoutUpdate struct {
	UnitID         *uuid.UUID
	Amount         decimal.Decimal
	PayoutDate     time.Time
	PeriodStart    time.Time
	PeriodEnd      time.Time
	PayoutType     PayoutType
	PaymentMethod  *PaymentMethod
	TransactionRef string
	Notes          string
}

// Update edits a pending payout
func (p *OwnerPayout) Update(u OwnerPayoutUpdate) error {
	if p.Status != PayoutStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("A %s payout can no longer be edited", p.Status))
	}
	if err := validatePayoutFields(u.Amount, u.PayoutType, u.PayoutDate, u.PeriodStart, u.PeriodEnd, u.PaymentMethod); err != nil {
		return err
	}

	p.UnitID = u.UnitID
	p.Amount = u.Amount
	p.PayoutDate = shared.DateOf(u.PayoutDate)
	p.PeriodStart = shared.DateOf(u.PeriodStart)
	p.PeriodEnd = shared.DateOf(u.PeriodEnd)
	p.PayoutType = u.PayoutType
	p.PaymentMethod = u.PaymentMethod
	p.TransactionRef = strings.TrimSpace(u.TransactionRef)
	p.Notes = strings.TrimSpace(u.Notes)
	p.Touch()
	return nil
}

// MarkAsPaid records that the owner has been paid
func (p *OwnerPayout) MarkAsPaid(method PaymentMethod, transactionRef string) error {
	if p.Status != PayoutStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s payout as paid", p.Status))
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Please choose a valid payment method")
	}
	p.Status = PayoutStatusPaid
	p.PaymentMethod = &method
	if ref := strings.TrimSpace(transactionRef); ref != "" {
		p.TransactionRef = ref
	}
	p.Touch()
	p.AddDomainEvent(NewOwnerPayoutPaidEvent(p))
	return nil
}

// Cancel voids a pending payout
func (p *OwnerPayout) Cancel() error {
	if p.Status != PayoutStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s payout", p.Status))
	}
	p.Status = PayoutStatusCancelled
	p.Touch()
	p.AddDomainEvent(NewOwnerPayoutCancelledEvent(p))
	return nil
}

// Validate checks a loaded payout for fields an export cannot represent
func (p *OwnerPayout) Validate() error {
	if !p.Status.IsValid() {
		return fmt.Errorf("payout %s: unknown status %q", p.ID, p.Status)
	}
	if !p.PayoutType.IsValid() {
		return fmt.Errorf("payout %s: unknown payout type %q", p.ID, p.PayoutType)
	}
	if p.PayoutDate.IsZero() {
		return fmt.Errorf("payout %s: missing payout date", p.ID)
	}
	if p.Amount.IsNegative() {
		return fmt.Errorf("payout %s: negative amount", p.ID)
	}
	return nil
}

// OwnerName returns the joined owner name or "" when not loaded
func (p *OwnerPayout) OwnerName() string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.FullName
}
