package notification

import (
	"context"
	"fmt"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/notification"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared/valueobject"
)

// NotifyRentDue raises a rent_due notification unless the payable already has one
func (s *Service) NotifyRentDue(ctx context.Context, p *finance.Payable) error {
	exists, err := s.repo.Exists(ctx, p.OfficeID, notification.TypeRentDue, p.ID)
	if err != nil {
		return s.humanize(err, shared.NewFetchError("notifications"))
	}
	if exists {
		return nil
	}

	message := fmt.Sprintf("Rent of %s is due on %s", valueobject.FormatSAR(p.Amount), shared.FormatDate(p.DueDate))
	if p.Contract != nil && p.Contract.TenantName != "" {
		message = fmt.Sprintf("Rent of %s from %s is due on %s",
			valueobject.FormatSAR(p.Amount), p.Contract.TenantName, shared.FormatDate(p.DueDate))
	}
	_, err = s.Create(ctx, p.OfficeID, notification.TypeRentDue, "Rent Due Soon", message,
		notification.NewPayableMetadata(p.ID, p.Amount, p.DueDate))
	return err
}
