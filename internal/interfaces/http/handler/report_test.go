package handler

import (
	"errors"
	"net/http"
	"testing"

	financeapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/finance"
	reportapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type exportCall struct {
	format string
	failed int
	err    error
}

type recordingExportObserver struct {
	calls []exportCall
}

func (r *recordingExportObserver) ObserveExport(format string, failed int, err error) {
	r.calls = append(r.calls, exportCall{format, failed, err})
}

type reportFixture struct {
	session  shared.Session
	payables *MockPayableRepository
	payouts  *MockPayoutRepository
	finances *MockOfficeFinanceRepository
	owners   *MockOwnerRepository
	observer *recordingExportObserver
	router   *gin.Engine
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		session:  newTestSession(),
		payables: new(MockPayableRepository),
		payouts:  new(MockPayoutRepository),
		finances: new(MockOfficeFinanceRepository),
		owners:   new(MockOwnerRepository),
		observer: &recordingExportObserver{},
	}
	payableSvc := financeapp.NewPayableService(f.payables, nil, nopPublisher{}, nil)
	payoutSvc := financeapp.NewPayoutService(f.payouts, nopPublisher{}, nil)
	financeSvc := financeapp.NewOfficeFinanceService(f.finances, nopPublisher{}, nil)
	reports := reportapp.NewService(payableSvc, payoutSvc, financeSvc, nil)
	exports := reportapp.NewExportService(reports, nil, nil)
	docs := reportapp.NewDocumentService(payableSvc, payoutSvc, new(MockOfficeRepository), f.owners, nil, nil)

	h := NewReportHandler(reports, exports, docs, f.observer)
	f.router = newRouter(f.session)
	g := f.router.Group("/reports")
	g.GET("/summary", h.Summary)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/export", h.Export)
	g.GET("/owners/:owner_id/statement", h.OwnerStatement)
	return f
}

func TestReportHandler_Summary(t *testing.T) {
	f := newReportFixture()
	paid := newTestPayable(t, f.session.OfficeID, "1000")
	require.NoError(t, paid.MarkAsPaid(paid.DueDate, finance.PaymentMethodCash, ""))
	f.payables.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.Anything).Return([]finance.Payable{*paid}, nil)
	f.payouts.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.Anything).Return([]finance.OwnerPayout{}, nil)

	rec := serve(f.router, http.MethodGet, "/reports/summary?kinds=payables,payouts&from=2026-01-01&to=2026-12-31", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decode[report.Summary](t, rec).Data
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.TotalIncome))
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.NetCashFlow))
	f.finances.AssertNotCalled(t, "FindAllForOffice", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportHandler_SummaryRejectsUnknownKind(t *testing.T) {
	f := newReportFixture()

	rec := serve(f.router, http.MethodGet, "/reports/summary?kinds=invoices", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_QUERY", decode[any](t, rec).Error.Code)
}

func TestReportHandler_DashboardErrorView(t *testing.T) {
	f := newReportFixture()
	f.payables.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.Anything).Return(nil, errors.New("connection reset"))
	f.payouts.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.Anything).Return([]finance.OwnerPayout{}, nil).Maybe()
	f.finances.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.Anything).Return([]finance.OfficeFinance{}, nil).Maybe()

	rec := serve(f.router, http.MethodGet, "/reports/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[reportapp.DashboardView](t, rec).Data
	assert.Equal(t, reportapp.ViewError, view.Status)
	assert.Equal(t, "We couldn't load payables. Please try again", view.Error)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestReportHandler_DashboardLoadingSkeleton(t *testing.T) {
	f := newReportFixture()

	rec := serve(f.router, http.MethodGet, "/reports/dashboard?state=loading", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[reportapp.DashboardView](t, rec).Data
	assert.Equal(t, reportapp.ViewLoading, view.Status)
	require.Len(t, view.Cards, 4)
	assert.Equal(t, reportapp.CardNetCashFlow, view.Cards[0].Title)
	for _, card := range view.Cards {
		assert.Empty(t, card.Value)
	}
	assert.Empty(t, view.Monthly)
	f.payables.AssertNotCalled(t, "FindAllForOffice", mock.Anything, mock.Anything, mock.Anything)
	f.payouts.AssertNotCalled(t, "FindAllForOffice", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportHandler_ExportPartial(t *testing.T) {
	f := newReportFixture()
	p := newTestPayable(t, f.session.OfficeID, "750")
	broken := newTestPayout(t, f.session.OfficeID, uuid.New())
	broken.Status = "archived"
	f.payables.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.Anything).Return([]finance.Payable{*p}, nil)
	f.payouts.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.Anything).Return([]finance.OwnerPayout{*broken}, nil)
	f.finances.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.Anything).Return([]finance.OfficeFinance{}, nil)

	rec := serve(f.router, http.MethodGet, "/reports/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "financial-report")
	assert.Equal(t, report.SectionPayouts, rec.Header().Get(ExportErrorsHeader))
	assert.Contains(t, rec.Body.String(), "750")

	require.Len(t, f.observer.calls, 1)
	assert.Equal(t, exportCall{format: "csv", failed: 1}, f.observer.calls[0])
}

func TestReportHandler_ExportUnknownFormat(t *testing.T) {
	f := newReportFixture()

	rec := serve(f.router, http.MethodGet, "/reports/export?format=docx", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_FORMAT", decode[any](t, rec).Error.Code)
	require.Len(t, f.observer.calls, 1)
	assert.Error(t, f.observer.calls[0].err)
}

func TestReportHandler_OwnerStatement(t *testing.T) {
	f := newReportFixture()
	ownerID := uuid.New()
	payout := newTestPayout(t, f.session.OfficeID, ownerID)
	f.owners.On("FindByIDForOffice", mock.Anything, f.session.OfficeID, ownerID).
		Return(&property.Owner{ID: ownerID, OfficeID: f.session.OfficeID, FullName: "Khalid Al-Harbi"}, nil)
	f.payouts.On("FindAllForOffice", mock.Anything, f.session.OfficeID, mock.MatchedBy(func(pf finance.PayoutFilter) bool {
		return pf.OwnerID != nil && *pf.OwnerID == ownerID
	})).Return([]finance.OwnerPayout{*payout}, nil)

	rec := serve(f.router, http.MethodGet, "/reports/owners/"+ownerID.String()+"/statement?from=2026-01-01", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "statement-")
	body := rec.Body.String()
	assert.Contains(t, body, "Statement for Khalid Al-Harbi")
	assert.Contains(t, body, "Period: 2026-01-01 - Present")
	assert.Contains(t, body, "Pending Amount: SAR 4,000.00")
}

func TestReportHandler_OwnerStatementUnknownOwner(t *testing.T) {
	f := newReportFixture()
	ownerID := uuid.New()
	f.owners.On("FindByIDForOffice", mock.Anything, f.session.OfficeID, ownerID).Return(nil, nil)

	rec := serve(f.router, http.MethodGet, "/reports/owners/"+ownerID.String()+"/statement", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
