package models

import (
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfficeModel is the persistence model of an office letterhead
type OfficeModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null"`
	LogoURL  string `gorm:"type:varchar(500)"`
	Address  string `gorm:"type:varchar(300)"`
	City     string `gorm:"type:varchar(100)"`
	Phone    string `gorm:"type:varchar(30)"`
	Email    string `gorm:"type:varchar(200)"`
	CRNumber string `gorm:"column:cr_number;type:varchar(50)"`
}

// TableName returns the table name for GORM
func (OfficeModel) TableName() string {
	return "offices"
}

// ToDomain converts the model to a domain Office
func (m *OfficeModel) ToDomain() *property.Office {
	return &property.Office{
		ID:       m.ID,
		Name:     m.Name,
		LogoURL:  m.LogoURL,
		Address:  m.Address,
		City:     m.City,
		Phone:    m.Phone,
		Email:    m.Email,
		CRNumber: m.CRNumber,
	}
}

// OwnerModel is the persistence model of a landlord
type OwnerModel struct {
	BaseModel
	OfficeID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName string    `gorm:"type:varchar(200);not null"`
	Email    string    `gorm:"type:varchar(200)"`
	Phone    string    `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "owners"
}

// ToDomain converts the model to a domain Owner
func (m *OwnerModel) ToDomain() *property.Owner {
	return &property.Owner{ID: m.ID, OfficeID: m.OfficeID, FullName: m.FullName, Email: m.Email, Phone: m.Phone}
}

// TenantModel is the persistence model of a tenant
type TenantModel struct {
	BaseModel
	OfficeID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName string    `gorm:"type:varchar(200);not null"`
	Phone    string    `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// BuildingModel is the persistence model of a building
type BuildingModel struct {
	BaseModel
	OfficeID uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(200);not null"`
	City     string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (BuildingModel) TableName() string {
	return "buildings"
}

// UnitModel is the persistence model of a rentable unit
type UnitModel struct {
	BaseModel
	OfficeID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	BuildingID uuid.UUID           `gorm:"type:uuid;not null;index"`
	UnitNumber string              `gorm:"type:varchar(30);not null"`
	Status     property.UnitStatus `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ContractModel is the persistence model for the Contract aggregate root
type ContractModel struct {
	OfficeAggregateModel
	TenantID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	UnitID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	StartDate  time.Time               `gorm:"type:date;not null"`
	EndDate    time.Time               `gorm:"type:date;not null"`
	RentAmount decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Status     property.ContractStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the model to a domain Contract
func (m *ContractModel) ToDomain() *property.Contract {
	return &property.Contract{
		OfficeAggregateRoot: m.ToDomainOfficeAggregateRoot(),
		TenantID:            m.TenantID,
		UnitID:              m.UnitID,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		RentAmount:          m.RentAmount,
		Status:              m.Status,
	}
}

// ContractModelFromDomain builds the model of a domain Contract
func ContractModelFromDomain(c *property.Contract) *ContractModel {
	m := &ContractModel{
		TenantID:   c.TenantID,
		UnitID:     c.UnitID,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		RentAmount: c.RentAmount,
		Status:     c.Status,
	}
	m.FromDomainOfficeAggregateRoot(c.OfficeAggregateRoot)
	return m
}

// All lists every model, in dependency order, for AutoMigrate on sqlite
func All() []any {
	return []any{
		&OfficeModel{},
		&OwnerModel{},
		&TenantModel{},
		&BuildingModel{},
		&UnitModel{},
		&ContractModel{},
		&PayableModel{},
		&OwnerPayoutModel{},
		&OfficeFinanceModel{},
		&NotificationModel{},
	}
}
