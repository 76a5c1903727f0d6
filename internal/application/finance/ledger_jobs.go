package finance

import (
	"context"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"go.uber.org/zap"
)

// RentDueWindow is how far ahead rent reminders look
const RentDueWindow = 3 * 24 * time.Hour

// RentDueNotifier raises the rent_due notification for a payable. It must be
// idempotent per payable.
type RentDueNotifier interface {
	NotifyRentDue(ctx context.Context, p *finance.Payable) error
}

// LedgerJobs runs the daily maintenance of an office's ledger
type LedgerJobs struct {
	payables *PayableService
	finances *OfficeFinanceService
	notifier RentDueNotifier
	logger   *zap.Logger
}

// NewLedgerJobs creates the ledger maintenance jobs
func NewLedgerJobs(payables *PayableService, finances *OfficeFinanceService, notifier RentDueNotifier, logger *zap.Logger) *LedgerJobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerJobs{payables: payables, finances: finances, notifier: notifier, logger: logger}
}

// MarkOverdue flips every pending payable due before asOf to overdue
func (j *LedgerJobs) MarkOverdue(ctx context.Context, session shared.Session, asOf time.Time) (int, error) {
	today := shared.DateOf(asOf)
	before := today.AddDate(0, 0, -1)
	items, err := j.payables.Fetch(ctx, session, finance.PayableFilter{
		Statuses: []finance.PayableStatus{finance.PayableStatusPending},
		ToDate:   &before,
	})
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range items {
		p := &items[i]
		if !p.MarkOverdue(today) {
			continue
		}
		if _, err := j.payables.save(ctx, p, true); err != nil {
			return changed, err
		}
		changed++
	}
	if changed > 0 {
		j.logger.Info("marked payables overdue",
			zap.String("office_id", session.OfficeID.String()),
			zap.Int("count", changed),
		)
	}
	return changed, nil
}

// RentDueReminders notifies once for each pending rent payable falling due
// between asOf and the end of the reminder window
func (j *LedgerJobs) RentDueReminders(ctx context.Context, session shared.Session, asOf time.Time) (int, error) {
	if j.notifier == nil {
		return 0, nil
	}
	from := shared.DateOf(asOf)
	to := from.Add(RentDueWindow)
	items, err := j.payables.Fetch(ctx, session, finance.PayableFilter{
		Statuses:   []finance.PayableStatus{finance.PayableStatusPending},
		Categories: []finance.PayableCategory{finance.PayableCategoryRent},
		Types:      []finance.PayableType{finance.PayableTypeIncoming},
		FromDate:   &from,
		ToDate:     &to,
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range items {
		if err := j.notifier.NotifyRentDue(ctx, &items[i]); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// GenerateRecurring creates the office finance occurrences that fell due
func (j *LedgerJobs) GenerateRecurring(ctx context.Context, session shared.Session, asOf time.Time) (int, error) {
	return j.finances.GenerateDueOccurrences(ctx, session, asOf)
}
