package finance

import (
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===================== Payables =====================

// PayableResponse represents a payable in API responses
type PayableResponse struct {
	ID             uuid.UUID            `json:"id"`
	OfficeID       uuid.UUID            `json:"office_id"`
	ContractID     uuid.UUID            `json:"contract_id"`
	Amount         decimal.Decimal      `json:"amount"`
	Category       string               `json:"category"`
	CategoryName   string               `json:"category_name"`
	Status         string               `json:"status"`
	Type           string               `json:"type"`
	DueDate        time.Time            `json:"due_date"`
	PaymentDate    *time.Time           `json:"payment_date,omitempty"`
	PaymentMethod  *string              `json:"payment_method,omitempty"`
	TransactionRef string               `json:"transaction_ref,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	Attachments    []finance.Attachment `json:"attachments"`
	Contract       *finance.ContractRef `json:"contract,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	Version        int                  `json:"version"`
}

// CreatePayableRequest represents a request to raise a payable
type CreatePayableRequest struct {
	ContractID uuid.UUID       `json:"contract_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Category   string          `json:"category" binding:"required,payable_category"`
	Type       string          `json:"type" binding:"required,payable_type"`
	DueDate    time.Time       `json:"due_date" binding:"required"`
	Notes      string          `json:"notes"`
}

// UpdatePayableRequest represents a request to edit an open payable
type UpdatePayableRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Category       string          `json:"category" binding:"required,payable_category"`
	Type           string          `json:"type" binding:"required,payable_type"`
	DueDate        time.Time       `json:"due_date" binding:"required"`
	TransactionRef string          `json:"transaction_ref"`
	Notes          string          `json:"notes"`
}

// MarkPaidRequest settles a payable or payout
type MarkPaidRequest struct {
	PaymentMethod  string     `json:"payment_method" binding:"required,payment_method"`
	PaymentDate    *time.Time `json:"payment_date"`
	TransactionRef string     `json:"transaction_ref"`
}

// CancelRequest voids a record
type CancelRequest struct {
	Reason string `json:"reason"`
}

// PayableListFilter defines filtering options for payable list queries
type PayableListFilter struct {
	ContractID *uuid.UUID
	Statuses   []string
	Categories []string
	Types      []string
	FromDate   *time.Time
	ToDate     *time.Time
	Page       int
	PageSize   int
}

// AttachmentUpload is a file received for a payable
type AttachmentUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// ===================== Payouts =====================

// PayoutResponse represents an owner payout in API responses
type PayoutResponse struct {
	ID             uuid.UUID            `json:"id"`
	OfficeID       uuid.UUID            `json:"office_id"`
	OwnerID        uuid.UUID            `json:"owner_id"`
	UnitID         *uuid.UUID           `json:"unit_id,omitempty"`
	Amount         decimal.Decimal      `json:"amount"`
	PayoutDate     time.Time            `json:"payout_date"`
	PeriodStart    time.Time            `json:"period_start"`
	PeriodEnd      time.Time            `json:"period_end"`
	Status         string               `json:"status"`
	PayoutType     string               `json:"payout_type"`
	PaymentMethod  *string              `json:"payment_method,omitempty"`
	TransactionRef string               `json:"transaction_ref,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	Attachments    []finance.Attachment `json:"attachments"`
	Owner          *finance.OwnerRef    `json:"owner,omitempty"`
	Unit           *finance.UnitRef     `json:"unit,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	Version        int                  `json:"version"`
}

// CreatePayoutRequest represents a request to record a payout
type CreatePayoutRequest struct {
	OwnerID        uuid.UUID       `json:"owner_id" binding:"required"`
	UnitID         *uuid.UUID      `json:"unit_id"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	PayoutDate     time.Time       `json:"payout_date" binding:"required"`
	PeriodStart    time.Time       `json:"period_start" binding:"required"`
	PeriodEnd      time.Time       `json:"period_end" binding:"required"`
	Status         string          `json:"status"`
	PayoutType     string          `json:"payout_type" binding:"required,payout_type"`
	PaymentMethod  *string         `json:"payment_method"`
	TransactionRef string          `json:"transaction_ref"`
	Notes          string          `json:"notes"`
}

// UpdatePayoutRequest represents a request to edit a pending payout
type UpdatePayoutRequest struct {
	UnitID         *uuid.UUID      `json:"unit_id"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	PayoutDate     time.Time       `json:"payout_date" binding:"required"`
	PeriodStart    time.Time       `json:"period_start" binding:"required"`
	PeriodEnd      time.Time       `json:"period_end" binding:"required"`
	PayoutType     string          `json:"payout_type" binding:"required,payout_type"`
	PaymentMethod  *string         `json:"payment_method"`
	TransactionRef string          `json:"transaction_ref"`
	Notes          string          `json:"notes"`
}

// PayoutListFilter defines filtering options for payout list queries
type PayoutListFilter struct {
	OwnerID     *uuid.UUID
	Statuses    []string
	PayoutTypes []string
	FromDate    *time.Time
	ToDate      *time.Time
	Page        int
	PageSize    int
}

// ===================== Office finances =====================

// OfficeFinanceResponse represents an office finance entry in API responses
type OfficeFinanceResponse struct {
	ID                 uuid.UUID       `json:"id"`
	OfficeID           uuid.UUID       `json:"office_id"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	CategoryName       string          `json:"category_name"`
	Status             string          `json:"status"`
	Date               time.Time       `json:"date"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringFrequency *string         `json:"recurring_frequency,omitempty"`
	RecurringDay       *int            `json:"recurring_day,omitempty"`
	TransactionRef     string          `json:"transaction_ref,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	SourceID           *uuid.UUID      `json:"source_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// OfficeFinanceRequest creates or edits an office finance entry
type OfficeFinanceRequest struct {
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Type               string          `json:"type" binding:"required,finance_type"`
	Category           string          `json:"category" binding:"required,finance_category"`
	Status             string          `json:"status"`
	Date               time.Time       `json:"date" binding:"required"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringFrequency string          `json:"recurring_frequency"`
	RecurringDay       int             `json:"recurring_day"`
	TransactionRef     string          `json:"transaction_ref"`
	Notes              string          `json:"notes"`
}

// CompleteRequest settles an office finance entry
type CompleteRequest struct {
	TransactionRef string `json:"transaction_ref"`
}

// OfficeFinanceListFilter defines filtering options for office finance lists
type OfficeFinanceListFilter struct {
	Types      []string
	Categories []string
	Statuses   []string
	FromDate   *time.Time
	ToDate     *time.Time
	Page       int
	PageSize   int
}

func (r OfficeFinanceRequest) recurrence() *finance.Recurrence {
	if !r.IsRecurring {
		return nil
	}
	return &finance.Recurrence{
		Frequency:  finance.RecurringFrequency(r.RecurringFrequency),
		DayOfMonth: r.RecurringDay,
	}
}

// ===================== Mappers =====================

func methodPtr(m *finance.PaymentMethod) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}

func parseMethod(s *string) *finance.PaymentMethod {
	if s == nil || *s == "" {
		return nil
	}
	m := finance.PaymentMethod(*s)
	return &m
}

func toPayableResponse(p *finance.Payable) *PayableResponse {
	attachments := p.Attachments
	if attachments == nil {
		attachments = []finance.Attachment{}
	}
	return &PayableResponse{
		ID:             p.ID,
		OfficeID:       p.OfficeID,
		ContractID:     p.ContractID,
		Amount:         p.Amount,
		Category:       string(p.Category),
		CategoryName:   p.Category.DisplayName(),
		Status:         string(p.Status),
		Type:           string(p.Type),
		DueDate:        p.DueDate,
		PaymentDate:    p.PaymentDate,
		PaymentMethod:  methodPtr(p.PaymentMethod),
		TransactionRef: p.TransactionRef,
		Notes:          p.Notes,
		Attachments:    attachments,
		Contract:       p.Contract,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

func toPayoutResponse(p *finance.OwnerPayout) *PayoutResponse {
	attachments := p.Attachments
	if attachments == nil {
		attachments = []finance.Attachment{}
	}
	return &PayoutResponse{
		ID:             p.ID,
		OfficeID:       p.OfficeID,
		OwnerID:        p.OwnerID,
		UnitID:         p.UnitID,
		Amount:         p.Amount,
		PayoutDate:     p.PayoutDate,
		PeriodStart:    p.PeriodStart,
		PeriodEnd:      p.PeriodEnd,
		Status:         string(p.Status),
		PayoutType:     string(p.PayoutType),
		PaymentMethod:  methodPtr(p.PaymentMethod),
		TransactionRef: p.TransactionRef,
		Notes:          p.Notes,
		Attachments:    attachments,
		Owner:          p.Owner,
		Unit:           p.Unit,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

func toOfficeFinanceResponse(f *finance.OfficeFinance) *OfficeFinanceResponse {
	resp := &OfficeFinanceResponse{
		ID:             f.ID,
		OfficeID:       f.OfficeID,
		Amount:         f.Amount,
		Type:           string(f.Type),
		Category:       string(f.Category),
		CategoryName:   f.Category.DisplayName(),
		Status:         string(f.Status),
		Date:           f.Date,
		IsRecurring:    f.IsRecurring,
		TransactionRef: f.TransactionRef,
		Notes:          f.Notes,
		SourceID:       f.SourceID,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
		Version:        f.Version,
	}
	if f.Recurrence != nil {
		freq := string(f.Recurrence.Frequency)
		day := f.Recurrence.DayOfMonth
		resp.RecurringFrequency = &freq
		resp.RecurringDay = &day
	}
	return resp
}

func toStrings[T ~string](values []string) []T {
	if len(values) == 0 {
		return nil
	}
	out := make([]T, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, T(v))
		}
	}
	return out
}
