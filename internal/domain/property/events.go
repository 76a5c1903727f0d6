package property

import (
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
)

const EventTypeContractTerminated = "ContractTerminated"

// ContractTerminatedEvent is raised when a lease is ended early
type ContractTerminatedEvent struct {
	shared.BaseDomainEvent
	ContractID uuid.UUID `json:"contract_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	TenantName string    `json:"tenant_name"`
	UnitNumber string    `json:"unit_number"`
}

// NewContractTerminatedEvent creates a ContractTerminatedEvent
func NewContractTerminatedEvent(c *Contract) *ContractTerminatedEvent {
	return &ContractTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractTerminated, "Contract", c.ID, c.OfficeID),
		ContractID:      c.ID,
		TenantID:        c.TenantID,
		UnitID:          c.UnitID,
		TenantName:      c.TenantName,
		UnitNumber:      c.UnitNumber,
	}
}
