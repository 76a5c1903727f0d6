package finance

import (
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types raised by the finance aggregates
const (
	EventTypePayableCreated        = "PayableCreated"
	EventTypePayablePaid           = "PayablePaid"
	EventTypePayableOverdue        = "PayableOverdue"
	EventTypePayableCancelled      = "PayableCancelled"
	EventTypeOwnerPayoutCreated    = "OwnerPayoutCreated"
	EventTypeOwnerPayoutPaid       = "OwnerPayoutPaid"
	EventTypeOwnerPayoutCancelled  = "OwnerPayoutCancelled"
	EventTypeOfficeFinanceCreated  = "OfficeFinanceCreated"
	EventTypeOfficeFinanceComplete = "OfficeFinanceCompleted"
)

const (
	aggregateTypePayable       = "Payable"
	aggregateTypeOwnerPayout   = "OwnerPayout"
	aggregateTypeOfficeFinance = "OfficeFinance"
)

// PayableCreatedEvent is raised when a contract charge is issued
type PayableCreatedEvent struct {
	shared.BaseDomainEvent
	PayableID  uuid.UUID       `json:"payable_id"`
	ContractID uuid.UUID       `json:"contract_id"`
	Category   PayableCategory `json:"category"`
	Type       PayableType     `json:"payable_type"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
}

// NewPayableCreatedEvent creates a PayableCreatedEvent
func NewPayableCreatedEvent(p *Payable) *PayableCreatedEvent {
	return &PayableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayableCreated, aggregateTypePayable, p.ID, p.OfficeID),
		PayableID:       p.ID,
		ContractID:      p.ContractID,
		Category:        p.Category,
		Type:            p.Type,
		Amount:          p.Amount,
		DueDate:         p.DueDate,
	}
}

// PayablePaidEvent is raised when a payable is settled
type PayablePaidEvent struct {
	shared.BaseDomainEvent
	PayableID     uuid.UUID       `json:"payable_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaidOn        time.Time       `json:"paid_on"`
}

// NewPayablePaidEvent creates a PayablePaidEvent
func NewPayablePaidEvent(p *Payable) *PayablePaidEvent {
	e := &PayablePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayablePaid, aggregateTypePayable, p.ID, p.OfficeID),
		PayableID:       p.ID,
		Amount:          p.Amount,
	}
	if p.PaymentMethod != nil {
		e.PaymentMethod = *p.PaymentMethod
	}
	if p.PaymentDate != nil {
		e.PaidOn = *p.PaymentDate
	}
	return e
}

// PayableOverdueEvent is raised when a pending payable passes its due date
type PayableOverdueEvent struct {
	shared.BaseDomainEvent
	PayableID uuid.UUID       `json:"payable_id"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
}

// NewPayableOverdueEvent creates a PayableOverdueEvent
func NewPayableOverdueEvent(p *Payable) *PayableOverdueEvent {
	return &PayableOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayableOverdue, aggregateTypePayable, p.ID, p.OfficeID),
		PayableID:       p.ID,
		Amount:          p.Amount,
		DueDate:         p.DueDate,
	}
}

// PayableCancelledEvent is raised when a payable is voided
type PayableCancelledEvent struct {
	shared.BaseDomainEvent
	PayableID uuid.UUID `json:"payable_id"`
}

// NewPayableCancelledEvent creates a PayableCancelledEvent
func NewPayableCancelledEvent(p *Payable) *PayableCancelledEvent {
	return &PayableCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayableCancelled, aggregateTypePayable, p.ID, p.OfficeID),
		PayableID:       p.ID,
	}
}

// OwnerPayoutCreatedEvent is raised when a payout is recorded
type OwnerPayoutCreatedEvent struct {
	shared.BaseDomainEvent
	PayoutID   uuid.UUID       `json:"payout_id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	Amount     decimal.Decimal `json:"amount"`
	PayoutDate time.Time       `json:"payout_date"`
}

// NewOwnerPayoutCreatedEvent creates an OwnerPayoutCreatedEvent
func NewOwnerPayoutCreatedEvent(p *OwnerPayout) *OwnerPayoutCreatedEvent {
	return &OwnerPayoutCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOwnerPayoutCreated, aggregateTypeOwnerPayout, p.ID, p.OfficeID),
		PayoutID:        p.ID,
		OwnerID:         p.OwnerID,
		Amount:          p.Amount,
		PayoutDate:      p.PayoutDate,
	}
}

// OwnerPayoutPaidEvent is raised when a payout is transferred
type OwnerPayoutPaidEvent struct {
	shared.BaseDomainEvent
	PayoutID uuid.UUID       `json:"payout_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewOwnerPayoutPaidEvent creates an OwnerPayoutPaidEvent
func NewOwnerPayoutPaidEvent(p *OwnerPayout) *OwnerPayoutPaidEvent {
	return &OwnerPayoutPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOwnerPayoutPaid, aggregateTypeOwnerPayout, p.ID, p.OfficeID),
		PayoutID:        p.ID,
		Amount:          p.Amount,
	}
}

// OwnerPayoutCancelledEvent is raised when a payout is voided
type OwnerPayoutCancelledEvent struct {
	shared.BaseDomainEvent
	PayoutID uuid.UUID `json:"payout_id"`
}

// NewOwnerPayoutCancelledEvent creates an OwnerPayoutCancelledEvent
func NewOwnerPayoutCancelledEvent(p *OwnerPayout) *OwnerPayoutCancelledEvent {
	return &OwnerPayoutCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOwnerPayoutCancelled, aggregateTypeOwnerPayout, p.ID, p.OfficeID),
		PayoutID:        p.ID,
	}
}

// OfficeFinanceCreatedEvent is raised when an office income or expense is entered
type OfficeFinanceCreatedEvent struct {
	shared.BaseDomainEvent
	FinanceID uuid.UUID       `json:"finance_id"`
	Type      FinanceType     `json:"finance_type"`
	Category  FinanceCategory `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// NewOfficeFinanceCreatedEvent creates an OfficeFinanceCreatedEvent
func NewOfficeFinanceCreatedEvent(f *OfficeFinance) *OfficeFinanceCreatedEvent {
	return &OfficeFinanceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfficeFinanceCreated, aggregateTypeOfficeFinance, f.ID, f.OfficeID),
		FinanceID:       f.ID,
		Type:            f.Type,
		Category:        f.Category,
		Amount:          f.Amount,
		Date:            f.Date,
	}
}

// OfficeFinanceCompletedEvent is raised when an entry is settled
type OfficeFinanceCompletedEvent struct {
	shared.BaseDomainEvent
	FinanceID uuid.UUID       `json:"finance_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewOfficeFinanceCompletedEvent creates an OfficeFinanceCompletedEvent
func NewOfficeFinanceCompletedEvent(f *OfficeFinance) *OfficeFinanceCompletedEvent {
	return &OfficeFinanceCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfficeFinanceComplete, aggregateTypeOfficeFinance, f.ID, f.OfficeID),
		FinanceID:       f.ID,
		Amount:          f.Amount,
	}
}
