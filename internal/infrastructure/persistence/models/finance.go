package models

import (
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableModel is the persistence model for the Payable aggregate root
type PayableModel struct {
	OfficeAggregateModel
	ContractID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Category       finance.PayableCategory `gorm:"type:varchar(30);not null;index"`
	Status         finance.PayableStatus   `gorm:"type:varchar(20);not null;index"`
	Type           finance.PayableType     `gorm:"type:varchar(20);not null"`
	DueDate        time.Time               `gorm:"type:date;not null;index"`
	PaymentDate    *time.Time              `gorm:"type:date"`
	PaymentMethod  *finance.PaymentMethod  `gorm:"type:varchar(20)"`
	TransactionRef string                  `gorm:"type:varchar(100)"`
	Notes          string                  `gorm:"type:text"`
	Attachments    Attachments             `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (PayableModel) TableName() string {
	return "payables"
}

// ToDomain converts the model to a domain Payable
func (m *PayableModel) ToDomain() *finance.Payable {
	attachments := []finance.Attachment(m.Attachments)
	if attachments == nil {
		attachments = []finance.Attachment{}
	}
	return &finance.Payable{
		OfficeAggregateRoot: m.ToDomainOfficeAggregateRoot(),
		ContractID:          m.ContractID,
		Amount:              m.Amount,
		Category:            m.Category,
		Status:              m.Status,
		Type:                m.Type,
		DueDate:             m.DueDate,
		PaymentDate:         m.PaymentDate,
		PaymentMethod:       m.PaymentMethod,
		TransactionRef:      m.TransactionRef,
		Notes:               m.Notes,
		Attachments:         attachments,
	}
}

// PayableModelFromDomain builds the model of a domain Payable
func PayableModelFromDomain(p *finance.Payable) *PayableModel {
	m := &PayableModel{
		ContractID:     p.ContractID,
		Amount:         p.Amount,
		Category:       p.Category,
		Status:         p.Status,
		Type:           p.Type,
		DueDate:        p.DueDate,
		PaymentDate:    p.PaymentDate,
		PaymentMethod:  p.PaymentMethod,
		TransactionRef: p.TransactionRef,
		Notes:          p.Notes,
		Attachments:    Attachments(p.Attachments),
	}
	m.FromDomainOfficeAggregateRoot(p.OfficeAggregateRoot)
	return m
}

// OwnerPayoutModel is the persistence model for the OwnerPayout aggregate root
type OwnerPayoutModel struct {
	OfficeAggregateModel
	OwnerID        uuid.UUID              `gorm:"type:uuid;not null;index"`
	UnitID         *uuid.UUID             `gorm:"type:uuid;index"`
	Amount         decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	PayoutDate     time.Time              `gorm:"type:date;not null;index"`
	PeriodStart    time.Time              `gorm:"type:date;not null"`
	PeriodEnd      time.Time              `gorm:"type:date;not null"`
	Status         finance.PayoutStatus   `gorm:"type:varchar(20);not null;index"`
	PayoutType     finance.PayoutType     `gorm:"type:varchar(20);not null"`
	PaymentMethod  *finance.PaymentMethod `gorm:"type:varchar(20)"`
	TransactionRef string                 `gorm:"type:varchar(100)"`
	Notes          string                 `gorm:"type:text"`
	Attachments    Attachments            `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (OwnerPayoutModel) TableName() string {
	return "owner_payouts"
}

// ToDomain converts the model to a domain OwnerPayout
func (m *OwnerPayoutModel) ToDomain() *finance.OwnerPayout {
	attachments := []finance.Attachment(m.Attachments)
	if attachments == nil {
		attachments = []finance.Attachment{}
	}
	return &finance.OwnerPayout{
		OfficeAggregateRoot: m.ToDomainOfficeAggregateRoot(),
		OwnerID:             m.OwnerID,
		UnitID:              m.UnitID,
		Amount:              m.Amount,
		PayoutDate:          m.PayoutDate,
		PeriodStart:         m.PeriodStart,
		PeriodEnd:           m.PeriodEnd,
		Status:              m.Status,
		PayoutType:          m.PayoutType,
		PaymentMethod:       m.PaymentMethod,
		TransactionRef:      m.TransactionRef,
		Notes:               m.Notes,
		Attachments:         attachments,
	}
}

// OwnerPayoutModelFromDomain builds the model of a domain OwnerPayout
func OwnerPayoutModelFromDomain(p *finance.OwnerPayout) *OwnerPayoutModel {
	m := &OwnerPayoutModel{
		OwnerID:        p.OwnerID,
		UnitID:         p.UnitID,
		Amount:         p.Amount,
		PayoutDate:     p.PayoutDate,
		PeriodStart:    p.PeriodStart,
		PeriodEnd:      p.PeriodEnd,
		Status:         p.Status,
		PayoutType:     p.PayoutType,
		PaymentMethod:  p.PaymentMethod,
		TransactionRef: p.TransactionRef,
		Notes:          p.Notes,
		Attachments:    Attachments(p.Attachments),
	}
	m.FromDomainOfficeAggregateRoot(p.OfficeAggregateRoot)
	return m
}

// OfficeFinanceModel is the persistence model for the OfficeFinance aggregate root
type OfficeFinanceModel struct {
	OfficeAggregateModel
	Amount             decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	Type               finance.FinanceType         `gorm:"type:varchar(20);not null;index"`
	Category           finance.FinanceCategory     `gorm:"type:varchar(30);not null"`
	Status             finance.FinanceStatus       `gorm:"type:varchar(20);not null"`
	Date               time.Time                   `gorm:"type:date;not null;index"`
	IsRecurring        bool                        `gorm:"not null"`
	RecurringFrequency *finance.RecurringFrequency `gorm:"type:varchar(20)"`
	RecurringDay       *int
	TransactionRef     string     `gorm:"type:varchar(100)"`
	Notes              string     `gorm:"type:text"`
	SourceID           *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (OfficeFinanceModel) TableName() string {
	return "office_finances"
}

// ToDomain converts the model to a domain OfficeFinance
func (m *OfficeFinanceModel) ToDomain() *finance.OfficeFinance {
	f := &finance.OfficeFinance{
		OfficeAggregateRoot: m.ToDomainOfficeAggregateRoot(),
		Amount:              m.Amount,
		Type:                m.Type,
		Category:            m.Category,
		Status:              m.Status,
		Date:                m.Date,
		IsRecurring:         m.IsRecurring,
		TransactionRef:      m.TransactionRef,
		Notes:               m.Notes,
		SourceID:            m.SourceID,
	}
	if m.IsRecurring && m.RecurringFrequency != nil && m.RecurringDay != nil {
		f.Recurrence = &finance.Recurrence{Frequency: *m.RecurringFrequency, DayOfMonth: *m.RecurringDay}
	}
	return f
}

// OfficeFinanceModelFromDomain builds the model of a domain OfficeFinance
func OfficeFinanceModelFromDomain(f *finance.OfficeFinance) *OfficeFinanceModel {
	m := &OfficeFinanceModel{
		Amount:         f.Amount,
		Type:           f.Type,
		Category:       f.Category,
		Status:         f.Status,
		Date:           f.Date,
		IsRecurring:    f.IsRecurring,
		TransactionRef: f.TransactionRef,
		Notes:          f.Notes,
		SourceID:       f.SourceID,
	}
	if r := f.Recurrence; r != nil {
		freq, day := r.Frequency, r.DayOfMonth
		m.RecurringFrequency = &freq
		m.RecurringDay = &day
	}
	m.FromDomainOfficeAggregateRoot(f.OfficeAggregateRoot)
	return m
}
