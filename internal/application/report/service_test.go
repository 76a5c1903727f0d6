package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Load_FetchesOnlySelectedKinds(t *testing.T) {
	payables, payouts, finances := &fakePayables{}, &fakePayouts{}, &fakeFinances{}
	svc := NewService(payables, payouts, finances, nil)
	start, end := day(2026, 1, 1), day(2026, 3, 31)

	_, err := svc.Load(context.Background(), testSession(), report.Filter{
		Range: report.DateRange{Start: &start, End: &end},
		Kinds: []report.Kind{report.KindPayables, report.KindExpenses},
	})

	require.NoError(t, err)
	require.Len(t, payables.filters, 1)
	assert.Equal(t, &start, payables.filters[0].FromDate)
	assert.Equal(t, &end, payables.filters[0].ToDate)
	assert.Empty(t, payouts.filters)
	require.Len(t, finances.filters, 1)
	assert.Equal(t, []finance.FinanceType{finance.FinanceTypeExpense}, finances.filters[0].Types)
}

func TestService_Load_RequiresSession(t *testing.T) {
	payables := &fakePayables{}
	svc := NewService(payables, &fakePayouts{}, &fakeFinances{}, nil)

	_, err := svc.Load(context.Background(), shared.Session{}, report.Filter{})

	assert.ErrorIs(t, err, shared.ErrSessionRequired)
	assert.Empty(t, payables.filters)
}

func TestService_Load_FirstErrorCancelsSiblings(t *testing.T) {
	fetchErr := shared.NewFetchError("payouts")
	svc := NewService(&fakePayables{wait: true}, &fakePayouts{err: fetchErr}, &fakeFinances{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Load(context.Background(), testSession(), report.Filter{})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, fetchErr)
	case <-time.After(2 * time.Second):
		t.Fatal("load did not return after a fetch failed")
	}
}

func TestService_Summary_Scenario(t *testing.T) {
	session := testSession()
	payables := &fakePayables{items: []finance.Payable{
		payable(t, session.OfficeID, 1000, finance.PayableStatusPending, day(2026, 2, 1)),
		payable(t, session.OfficeID, 500, finance.PayableStatusPaid, day(2026, 2, 5)),
		payable(t, session.OfficeID, 200, finance.PayableStatusOverdue, day(2026, 1, 5)),
	}}
	svc := NewService(payables, &fakePayouts{}, &fakeFinances{}, nil)
	svc.now = func() time.Time { return day(2026, 3, 1) }

	summary, err := svc.Summary(context.Background(), session, report.Filter{})

	require.NoError(t, err)
	assert.True(t, summary.Payables.Total.Equal(decimal.NewFromInt(1700)))
	assert.True(t, summary.PendingPayables.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.Payables.PaidAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.OverduePayables.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 2026, summary.Year)
}

func TestService_Summary_AppliesInMemoryFilters(t *testing.T) {
	session := testSession()
	payables := &fakePayables{items: []finance.Payable{
		payable(t, session.OfficeID, 1000, finance.PayableStatusPending, day(2026, 2, 1)),
		payable(t, session.OfficeID, 500, finance.PayableStatusCancelled, day(2026, 2, 5)),
	}}
	svc := NewService(payables, &fakePayouts{}, &fakeFinances{}, nil)

	stats, err := svc.PayableStats(context.Background(), session, report.Filter{Statuses: []string{"pending"}})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.True(t, stats.Total.Equal(decimal.NewFromInt(1000)))
}

func TestService_Dashboard_ErrorView(t *testing.T) {
	svc := NewService(&fakePayables{err: errors.New("boom")}, &fakePayouts{}, &fakeFinances{}, nil)

	view := svc.Dashboard(context.Background(), testSession(), report.Filter{})

	assert.Equal(t, ViewError, view.Status)
	assert.Equal(t, genericLoadError, view.Error)
}
