package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attachment is a file stored alongside a payable, e.g. a scanned invoice
type Attachment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ContractRef is the read-only view of the contract a payable belongs to
type ContractRef struct {
	ContractID   uuid.UUID `json:"contract_id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	TenantName   string    `json:"tenant_name"`
	UnitID       uuid.UUID `json:"unit_id"`
	UnitNumber   string    `json:"unit_number"`
	BuildingName string    `json:"building_name"`
}

// Payable is an amount owed by a tenant to the office (incoming) or by the
// office under a contract (outgoing).
type Payable struct {
	shared.OfficeAggregateRoot
	ContractID     uuid.UUID
	Amount         decimal.Decimal
	Category       PayableCategory
	Status         PayableStatus
	Type           PayableType
	DueDate        time.Time
	PaymentDate    *time.Time
	PaymentMethod  *PaymentMethod
	TransactionRef string
	Notes          string
	Attachments    []Attachment

	// Contract is filled by read queries; it is never written back.
	Contract *ContractRef
}

// NewPayableInput carries the fields needed to raise a payable
type NewPayableInput struct {
	ContractID uuid.UUID
	Amount     decimal.Decimal
	Category   PayableCategory
	Type       PayableType
	DueDate    time.Time
	Notes      string
}

// NewPayable creates a pending payable for a contract
func NewPayable(officeID uuid.UUID, in NewPayableInput) (*Payable, error) {
	if officeID == uuid.Nil {
		return nil, shared.ErrSessionRequired
	}
	if in.ContractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Please choose the contract this payable belongs to")
	}
	if err := validatePayableFields(in.Amount, in.Category, in.Type, in.DueDate); err != nil {
		return nil, err
	}

	p := &Payable{
		OfficeAggregateRoot: shared.NewOfficeAggregateRoot(officeID),
		ContractID:          in.ContractID,
		Amount:              in.Amount,
		Category:            in.Category,
		Status:              PayableStatusPending,
		Type:                in.Type,
		DueDate:             shared.DateOf(in.DueDate),
		Notes:               strings.TrimSpace(in.Notes),
		Attachments:         []Attachment{},
	}

	p.AddDomainEvent(NewPayableCreatedEvent(p))
	return p, nil
}

func validatePayableFields(amount decimal.Decimal, category PayableCategory, typ PayableType, due time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be greater than zero")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Please choose a valid payable category")
	}
	if !typ.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Payable type must be incoming or outgoing")
	}
	if due.IsZero() {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}
	return nil
}

// PayableUpdate holds the editable fields of a payable
type PayableUpdate struct {
	Amount         decimal.Decimal
	Category       PayableCategory
	Type           PayableType
	DueDate        time.Time
	TransactionRef string
	Notes          string
}

// Update edits an open payable
func (p *Payable) Update(u PayableUpdate) error {
	if !p.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("A %s payable can no longer be edited", p.Status))
	}
	if err := validatePayableFields(u.Amount, u.Category, u.Type, u.DueDate); err != nil {
		return err
	}

	p.Amount = u.Amount
	p.Category = u.Category
	p.Type = u.Type
	p.DueDate = shared.DateOf(u.DueDate)
	p.TransactionRef = strings.TrimSpace(u.TransactionRef)
	p.Notes = strings.TrimSpace(u.Notes)
	p.Touch()
	return nil
}

// MarkAsPaid settles the payable
func (p *Payable) MarkAsPaid(paidOn time.Time, method PaymentMethod, transactionRef string) error {
	if !p.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s payable as paid", p.Status))
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Please choose a valid payment method")
	}
	if paidOn.IsZero() {
		paidOn = time.Now()
	}

	day := shared.DateOf(paidOn)
	p.Status = PayableStatusPaid
	p.PaymentDate = &day
	p.PaymentMethod = &method
	p.TransactionRef = strings.TrimSpace(transactionRef)
	p.Touch()

	p.AddDomainEvent(NewPayablePaidEvent(p))
	return nil
}

// MarkOverdue flips a pending payable to overdue once asOf is past its due
// date. It reports whether anything changed.
func (p *Payable) MarkOverdue(asOf time.Time) bool {
	if p.Status != PayableStatusPending {
		return false
	}
	if !shared.DateOf(asOf).After(p.DueDate) {
		return false
	}
	p.Status = PayableStatusOverdue
	p.Touch()
	p.AddDomainEvent(NewPayableOverdueEvent(p))
	return true
}

// Cancel voids an open payable
func (p *Payable) Cancel(reason string) error {
	if !p.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s payable", p.Status))
	}
	p.Status = PayableStatusCancelled
	if reason = strings.TrimSpace(reason); reason != "" {
		if p.Notes != "" {
			p.Notes += "\n"
		}
		p.Notes += "Cancelled: " + reason
	}
	p.Touch()
	p.AddDomainEvent(NewPayableCancelledEvent(p))
	return nil
}

// AddAttachment appends a stored file to the payable
func (p *Payable) AddAttachment(a Attachment) error {
	if a.ID == "" || a.URL == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment is missing its storage location")
	}
	for _, existing := range p.Attachments {
		if existing.ID == a.ID {
			return shared.NewDomainError("DUPLICATE_ATTACHMENT", "This file is already attached")
		}
	}
	p.Attachments = append(p.Attachments, a)
	p.Touch()
	return nil
}

// RemoveAttachment drops an attachment by id
func (p *Payable) RemoveAttachment(id string) (Attachment, error) {
	for i, a := range p.Attachments {
		if a.ID == id {
			p.Attachments = append(p.Attachments[:i], p.Attachments[i+1:]...)
			p.Touch()
			return a, nil
		}
	}
	return Attachment{}, shared.NewDomainError("NOT_FOUND", "Attachment not found")
}

// Validate checks a loaded payable for fields an export or report cannot
// represent.
func (p *Payable) Validate() error {
	if !p.Status.IsValid() {
		return fmt.Errorf("payable %s: unknown status %q", p.ID, p.Status)
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("payable %s: unknown category %q", p.ID, p.Category)
	}
	if !p.Type.IsValid() {
		return fmt.Errorf("payable %s: unknown type %q", p.ID, p.Type)
	}
	if p.DueDate.IsZero() {
		return fmt.Errorf("payable %s: missing due date", p.ID)
	}
	if p.Amount.IsNegative() {
		return fmt.Errorf("payable %s: negative amount", p.ID)
	}
	return nil
}

// ReceiptNumber is the short human reference printed on receipts
func (p *Payable) ReceiptNumber() string {
	id := strings.ReplaceAll(p.ID.String(), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

func (p *Payable) IsPaid() bool      { return p.Status == PayableStatusPaid }
func (p *Payable) IsIncoming() bool  { return p.Type == PayableTypeIncoming }
func (p *Payable) IsCancelled() bool { return p.Status == PayableStatusCancelled }
