package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
)

// LedgerRunner is the ledger maintenance the executor drives
type LedgerRunner interface {
	MarkOverdue(ctx context.Context, session shared.Session, asOf time.Time) (int, error)
	RentDueReminders(ctx context.Context, session shared.Session, asOf time.Time) (int, error)
	GenerateRecurring(ctx context.Context, session shared.Session, asOf time.Time) (int, error)
}

// LedgerExecutor runs ledger jobs under a system session for the job's office
type LedgerExecutor struct {
	ledger LedgerRunner
}

// NewLedgerExecutor creates a ledger job executor
func NewLedgerExecutor(ledger LedgerRunner) *LedgerExecutor {
	return &LedgerExecutor{ledger: ledger}
}

// Execute implements JobExecutor
func (e *LedgerExecutor) Execute(ctx context.Context, job *Job) (int, error) {
	session := shared.Session{OfficeID: job.OfficeID, Username: "scheduler"}

	switch job.Type {
	case JobTypeMarkOverdue:
		return e.ledger.MarkOverdue(ctx, session, job.AsOf)
	case JobTypeRentDueReminders:
		return e.ledger.RentDueReminders(ctx, session, job.AsOf)
	case JobTypeRecurringFinances:
		return e.ledger.GenerateRecurring(ctx, session, job.AsOf)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownJobType, job.Type)
	}
}
