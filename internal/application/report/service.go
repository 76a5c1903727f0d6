package report

import (
	"context"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PayableFetcher loads office payables
type PayableFetcher interface {
	Fetch(ctx context.Context, session shared.Session, filter finance.PayableFilter) ([]finance.Payable, error)
}

// PayoutFetcher loads office payouts
type PayoutFetcher interface {
	Fetch(ctx context.Context, session shared.Session, filter finance.PayoutFilter) ([]finance.OwnerPayout, error)
}

// FinanceFetcher loads office income and expenses
type FinanceFetcher interface {
	Fetch(ctx context.Context, session shared.Session, filter finance.FinanceFilter) ([]finance.OfficeFinance, error)
}

// Service loads ledger records and aggregates them into summaries
type Service struct {
	payables PayableFetcher
	payouts  PayoutFetcher
	finances FinanceFetcher
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new report Service
func NewService(payables PayableFetcher, payouts PayoutFetcher, finances FinanceFetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		payables: payables,
		payouts:  payouts,
		finances: finances,
		logger:   logger,
		now:      time.Now,
	}
}

// Load fetches the kinds selected by filter concurrently. The date range is
// pushed down to the queries; every other constraint is applied in memory.
// The first failing fetch cancels the others.
func (s *Service) Load(ctx context.Context, session shared.Session, filter report.Filter) (report.Records, error) {
	if err := session.Validate(); err != nil {
		return report.Records{}, err
	}

	var records report.Records
	g, gctx := errgroup.WithContext(ctx)
	from, to := filter.Range.Start, filter.Range.End

	if filter.Wants(report.KindPayables) {
		g.Go(func() error {
			items, err := s.payables.Fetch(gctx, session, finance.PayableFilter{FromDate: from, ToDate: to})
			records.Payables = items
			return err
		})
	}
	if filter.Wants(report.KindPayouts) {
		g.Go(func() error {
			items, err := s.payouts.Fetch(gctx, session, finance.PayoutFilter{FromDate: from, ToDate: to})
			records.Payouts = items
			return err
		})
	}
	if types := financeTypes(filter); types != nil {
		g.Go(func() error {
			items, err := s.finances.Fetch(gctx, session, finance.FinanceFilter{Types: types, FromDate: from, ToDate: to})
			records.Finances = items
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return report.Records{}, err
	}
	return filter.Apply(records), nil
}

// financeTypes maps the income/expenses kinds onto finance types, or nil when
// neither is selected
func financeTypes(filter report.Filter) []finance.FinanceType {
	var types []finance.FinanceType
	if filter.Wants(report.KindIncome) {
		types = append(types, finance.FinanceTypeIncome)
	}
	if filter.Wants(report.KindExpenses) {
		types = append(types, finance.FinanceTypeExpense)
	}
	return types
}

// Summary loads and aggregates the office ledger
func (s *Service) Summary(ctx context.Context, session shared.Session, filter report.Filter) (*report.Summary, error) {
	records, err := s.Load(ctx, session, filter)
	if err != nil {
		return nil, err
	}
	summary := report.Aggregate(records, report.Filter{}, s.now())
	return &summary, nil
}

// PayableStats summarizes payables only
func (s *Service) PayableStats(ctx context.Context, session shared.Session, filter report.Filter) (*report.PayablesSummary, error) {
	filter.Kinds = []report.Kind{report.KindPayables}
	summary, err := s.Summary(ctx, session, filter)
	if err != nil {
		return nil, err
	}
	return &summary.Payables, nil
}

// Dashboard builds the dashboard view. Failures become an error view rather
// than an error return, so the page always has something to render.
func (s *Service) Dashboard(ctx context.Context, session shared.Session, filter report.Filter) DashboardView {
	summary, err := s.Summary(ctx, session, filter)
	if err != nil {
		s.logger.Warn("dashboard load failed", zap.Error(err))
		return Present(FetchState{Err: err}, nil)
	}
	return Present(FetchState{}, summary)
}

// DashboardSkeleton is the loading view: card titles only, no data. Clients
// render it while the real dashboard request is in flight.
func (s *Service) DashboardSkeleton() DashboardView {
	return Present(FetchState{Loading: true}, nil)
}
