package report

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakePayables struct {
	mu      sync.Mutex
	items   []finance.Payable
	err     error
	filters []finance.PayableFilter
	// wait blocks the fetch until ctx is cancelled
	wait bool
}

func (f *fakePayables) Fetch(ctx context.Context, _ shared.Session, filter finance.PayableFilter) ([]finance.Payable, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	if f.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.items, f.err
}

func (f *fakePayables) Load(_ context.Context, _ shared.Session, id uuid.UUID) (*finance.Payable, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Payable not found")
}

type fakePayouts struct {
	mu      sync.Mutex
	items   []finance.OwnerPayout
	err     error
	filters []finance.PayoutFilter
}

func (f *fakePayouts) Fetch(_ context.Context, _ shared.Session, filter finance.PayoutFilter) ([]finance.OwnerPayout, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	return f.items, f.err
}

type fakeFinances struct {
	mu      sync.Mutex
	items   []finance.OfficeFinance
	err     error
	filters []finance.FinanceFilter
}

func (f *fakeFinances) Fetch(_ context.Context, _ shared.Session, filter finance.FinanceFilter) ([]finance.OfficeFinance, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	return f.items, f.err
}

func testSession() shared.Session {
	return shared.Session{OfficeID: uuid.New(), UserID: uuid.New()}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func payable(t *testing.T, officeID uuid.UUID, amount int64, status finance.PayableStatus, due time.Time) finance.Payable {
	t.Helper()
	p, err := finance.NewPayable(officeID, finance.NewPayableInput{
		ContractID: uuid.New(),
		Amount:     decimal.NewFromInt(amount),
		Category:   finance.PayableCategoryRent,
		Type:       finance.PayableTypeIncoming,
		DueDate:    due,
	})
	require.NoError(t, err)
	p.ClearDomainEvents()
	switch status {
	case finance.PayableStatusPaid:
		require.NoError(t, p.MarkAsPaid(due, finance.PaymentMethodCash, ""))
	case finance.PayableStatusOverdue:
		p.Status = finance.PayableStatusOverdue
	case finance.PayableStatusCancelled:
		require.NoError(t, p.Cancel(""))
	}
	p.ClearDomainEvents()
	return *p
}

func officeFinance(t *testing.T, officeID uuid.UUID, typ finance.FinanceType, category finance.FinanceCategory, amount int64, date time.Time) finance.OfficeFinance {
	t.Helper()
	f, err := finance.NewOfficeFinance(officeID, finance.NewOfficeFinanceInput{
		Amount:   decimal.NewFromInt(amount),
		Type:     typ,
		Category: category,
		Status:   finance.FinanceStatusCompleted,
		Date:     date,
	})
	require.NoError(t, err)
	f.ClearDomainEvents()
	return *f
}

func payout(t *testing.T, officeID uuid.UUID, amount int64, date time.Time) finance.OwnerPayout {
	t.Helper()
	p, err := finance.NewOwnerPayout(officeID, finance.NewOwnerPayoutInput{
		OwnerID:     uuid.New(),
		Amount:      decimal.NewFromInt(amount),
		PayoutDate:  date,
		PeriodStart: date.AddDate(0, -1, 0),
		PeriodEnd:   date,
		PayoutType:  finance.PayoutTypeRent,
	})
	require.NoError(t, err)
	p.ClearDomainEvents()
	return *p
}
