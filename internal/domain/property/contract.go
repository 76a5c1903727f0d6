package property

import (
	"fmt"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractStatus is the lifecycle state of a rental contract
type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusTerminated ContractStatus = "terminated"
)

// IsValid checks if the status is known
func (s ContractStatus) IsValid() bool {
	return s == ContractStatusActive || s == ContractStatusTerminated
}

// UnitStatus tells whether a unit is let
type UnitStatus string

const (
	UnitStatusVacant   UnitStatus = "vacant"
	UnitStatusOccupied UnitStatus = "occupied"
)

// Contract is a lease of one unit to one tenant
type Contract struct {
	shared.OfficeAggregateRoot
	TenantID   uuid.UUID
	UnitID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	RentAmount decimal.Decimal
	Status     ContractStatus

	// Filled by read queries.
	TenantName   string
	UnitNumber   string
	BuildingName string
}

// NewContractInput carries the fields of a new contract
type NewContractInput struct {
	TenantID   uuid.UUID
	UnitID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	RentAmount decimal.Decimal
}

// NewContract creates an active contract
func NewContract(officeID uuid.UUID, in NewContractInput) (*Contract, error) {
	if officeID == uuid.Nil {
		return nil, shared.ErrSessionRequired
	}
	if in.TenantID == uuid.Nil || in.UnitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "A contract needs a tenant and a unit")
	}
	if in.RentAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Rent must be greater than zero")
	}
	if in.StartDate.IsZero() || in.EndDate.Before(in.StartDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "The contract must end after it starts")
	}

	c := &Contract{
		OfficeAggregateRoot: shared.NewOfficeAggregateRoot(officeID),
		TenantID:            in.TenantID,
		UnitID:              in.UnitID,
		StartDate:           shared.DateOf(in.StartDate),
		EndDate:             shared.DateOf(in.EndDate),
		RentAmount:          in.RentAmount,
		Status:              ContractStatusActive,
	}
	return c, nil
}

// Terminate ends an active contract. The unit it leased becomes vacant.
func (c *Contract) Terminate() error {
	if c.Status != ContractStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot terminate a %s contract", c.Status))
	}
	c.Status = ContractStatusTerminated
	c.Touch()
	c.AddDomainEvent(NewContractTerminatedEvent(c))
	return nil
}

// IsActive reports whether the contract is still running
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}
