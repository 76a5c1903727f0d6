package notification

import (
	"context"
	"fmt"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/notification"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// EventHandler turns finance and contract events into feed entries
type EventHandler struct {
	service *Service
	logger  *zap.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service *Service, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{service: service, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *EventHandler) EventTypes() []string {
	return []string{
		finance.EventTypePayableCreated,
		finance.EventTypeOwnerPayoutCreated,
		finance.EventTypeOfficeFinanceCreated,
		property.EventTypeContractTerminated,
	}
}

// Handle processes a domain event
func (h *EventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *finance.PayableCreatedEvent:
		_, err := h.service.Create(ctx, e.OfficeID(), notification.TypeInvoiceIssued,
			"New Invoice Issued",
			fmt.Sprintf("An invoice of %s is due on %s", valueobject.FormatSAR(e.Amount), shared.FormatDate(e.DueDate)),
			notification.NewPayableMetadata(e.PayableID, e.Amount, e.DueDate),
		)
		return err

	case *finance.OwnerPayoutCreatedEvent:
		_, err := h.service.Create(ctx, e.OfficeID(), notification.TypePayoutCreated,
			"Owner Payout Created",
			fmt.Sprintf("A payout of %s was scheduled for %s", valueobject.FormatSAR(e.Amount), shared.FormatDate(e.PayoutDate)),
			notification.PayoutMetadata{PayoutID: e.PayoutID, OwnerID: e.OwnerID, Amount: e.Amount},
		)
		return err

	case *finance.OfficeFinanceCreatedEvent:
		if e.Type != finance.FinanceTypeExpense {
			return nil
		}
		_, err := h.service.Create(ctx, e.OfficeID(), notification.TypeExpenseAdded,
			"Expense Added",
			fmt.Sprintf("%s expense of %s recorded", e.Category.DisplayName(), valueobject.FormatSAR(e.Amount)),
			notification.ExpenseMetadata{ExpenseID: e.FinanceID, Amount: e.Amount},
		)
		return err

	case *property.ContractTerminatedEvent:
		tenantID, unitID := e.TenantID, e.UnitID
		_, err := h.service.Create(ctx, e.OfficeID(), notification.TypeContractCreated,
			"Contract Terminated",
			terminationMessage(e),
			notification.ContractMetadata{ContractID: e.ContractID, TenantID: &tenantID, UnitID: &unitID},
		)
		return err
	}

	h.logger.Debug("ignoring event", zap.String("event_type", event.EventType()))
	return nil
}

func terminationMessage(e *property.ContractTerminatedEvent) string {
	switch {
	case e.TenantName != "" && e.UnitNumber != "":
		return fmt.Sprintf("Contract for %s in unit %s has been terminated", e.TenantName, e.UnitNumber)
	case e.TenantName != "":
		return fmt.Sprintf("Contract for %s has been terminated", e.TenantName)
	default:
		return "A contract has been terminated"
	}
}
