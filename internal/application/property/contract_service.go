package property

import (
	"context"
	"errors"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID           uuid.UUID       `json:"id"`
	OfficeID     uuid.UUID       `json:"office_id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	UnitID       uuid.UUID       `json:"unit_id"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	Status       string          `json:"status"`
	TenantName   string          `json:"tenant_name,omitempty"`
	UnitNumber   string          `json:"unit_number,omitempty"`
	BuildingName string          `json:"building_name,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ContractService handles contract lifecycle operations
type ContractService struct {
	contracts property.ContractRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewContractService creates a new ContractService
func NewContractService(contracts property.ContractRepository, publisher shared.EventPublisher, logger *zap.Logger) *ContractService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContractService{contracts: contracts, publisher: publisher, logger: logger}
}

// Terminate ends a contract and frees its unit
func (s *ContractService) Terminate(ctx context.Context, session shared.Session, id uuid.UUID) (*ContractResponse, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	c, err := s.contracts.FindByIDForOffice(ctx, session.OfficeID, id)
	if err != nil {
		return nil, s.humanize(err, shared.NewFetchError("the contract"))
	}
	if c == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Contract not found")
	}

	if err := c.Terminate(); err != nil {
		return nil, err
	}
	if err := s.contracts.SaveTermination(ctx, c); err != nil {
		return nil, s.humanize(err, shared.NewSaveError("contract"))
	}

	if events := c.GetDomainEvents(); len(events) > 0 && s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish contract events", zap.Error(err))
		}
	}
	c.ClearDomainEvents()

	s.logger.Info("contract terminated",
		zap.String("office_id", session.OfficeID.String()),
		zap.String("contract_id", c.ID.String()),
		zap.String("unit_id", c.UnitID.String()),
	)
	return toContractResponse(c), nil
}

func (s *ContractService) humanize(err error, replacement *shared.DomainError) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	s.logger.Error("contract storage failure", zap.Error(err))
	return replacement
}

func toContractResponse(c *property.Contract) *ContractResponse {
	return &ContractResponse{
		ID:           c.ID,
		OfficeID:     c.OfficeID,
		TenantID:     c.TenantID,
		UnitID:       c.UnitID,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		RentAmount:   c.RentAmount,
		Status:       string(c.Status),
		TenantName:   c.TenantName,
		UnitNumber:   c.UnitNumber,
		BuildingName: c.BuildingName,
		UpdatedAt:    c.UpdatedAt,
	}
}
