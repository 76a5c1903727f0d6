package finance

import (
	"context"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayoutService provides owner payout operations and the payouts fetcher
type PayoutService struct {
	repo      finance.OwnerPayoutRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(repo finance.OwnerPayoutRepository, publisher shared.EventPublisher, logger *zap.Logger) *PayoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoutService{repo: repo, publisher: publisher, logger: logger}
}

// Fetch loads the payouts matching filter for the session office
func (s *PayoutService) Fetch(ctx context.Context, session shared.Session, filter finance.PayoutFilter) ([]finance.OwnerPayout, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	items, err := s.repo.FindAllForOffice(ctx, session.OfficeID, filter)
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewFetchError("payouts"))
	}
	return items, nil
}

// List returns a page of payouts
func (s *PayoutService) List(ctx context.Context, session shared.Session, filter PayoutListFilter) ([]PayoutResponse, int64, error) {
	domainFilter := finance.PayoutFilter{
		OwnerID:     filter.OwnerID,
		Statuses:    toStrings[finance.PayoutStatus](filter.Statuses),
		PayoutTypes: toStrings[finance.PayoutType](filter.PayoutTypes),
		FromDate:    filter.FromDate,
		ToDate:      filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	items, err := s.Fetch(ctx, session, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForOffice(ctx, session.OfficeID, domainFilter)
	if err != nil {
		return nil, 0, humanize(ctx, s.logger, err, shared.NewFetchError("payouts"))
	}

	out := make([]PayoutResponse, len(items))
	for i := range items {
		out[i] = *toPayoutResponse(&items[i])
	}
	return out, total, nil
}

// Get returns one payout
func (s *PayoutService) Get(ctx context.Context, session shared.Session, id uuid.UUID) (*PayoutResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	return toPayoutResponse(p), nil
}

func (s *PayoutService) load(ctx context.Context, session shared.Session, id uuid.UUID) (*finance.OwnerPayout, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByIDForOffice(ctx, session.OfficeID, id)
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewFetchError("the payout"))
	}
	if p == nil {
		return nil, notFound("Payout")
	}
	return p, nil
}

// Create records a payout
func (s *PayoutService) Create(ctx context.Context, session shared.Session, req CreatePayoutRequest) (*PayoutResponse, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	p, err := finance.NewOwnerPayout(session.OfficeID, finance.NewOwnerPayoutInput{
		OwnerID:        req.OwnerID,
		UnitID:         req.UnitID,
		Amount:         req.Amount,
		PayoutDate:     req.PayoutDate,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
		Status:         finance.PayoutStatus(req.Status),
		PayoutType:     finance.PayoutType(req.PayoutType),
		PaymentMethod:  parseMethod(req.PaymentMethod),
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}
	p.SetCreatedBy(session.UserID)
	return s.save(ctx, p, false)
}

// Update edits a pending payout
func (s *PayoutService) Update(ctx context.Context, session shared.Session, id uuid.UUID, req UpdatePayoutRequest) (*PayoutResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(finance.OwnerPayoutUpdate{
		UnitID:         req.UnitID,
		Amount:         req.Amount,
		PayoutDate:     req.PayoutDate,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
		PayoutType:     finance.PayoutType(req.PayoutType),
		PaymentMethod:  parseMethod(req.PaymentMethod),
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
	}); err != nil {
		return nil, err
	}
	return s.save(ctx, p, true)
}

// MarkPaid records the transfer to the owner
func (s *PayoutService) MarkPaid(ctx context.Context, session shared.Session, id uuid.UUID, req MarkPaidRequest) (*PayoutResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := p.MarkAsPaid(finance.PaymentMethod(req.PaymentMethod), req.TransactionRef); err != nil {
		return nil, err
	}
	return s.save(ctx, p, true)
}

// Cancel voids a pending payout
func (s *PayoutService) Cancel(ctx context.Context, session shared.Session, id uuid.UUID) (*PayoutResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := p.Cancel(); err != nil {
		return nil, err
	}
	return s.save(ctx, p, true)
}

// Delete removes a payout
func (s *PayoutService) Delete(ctx context.Context, session shared.Session, id uuid.UUID) error {
	if _, err := s.load(ctx, session, id); err != nil {
		return err
	}
	if err := s.repo.DeleteForOffice(ctx, session.OfficeID, id); err != nil {
		return humanize(ctx, s.logger, err, shared.NewSaveError("payout"))
	}
	return nil
}

func (s *PayoutService) save(ctx context.Context, p *finance.OwnerPayout, existing bool) (*PayoutResponse, error) {
	var err error
	if existing {
		err = s.repo.SaveWithLock(ctx, p)
	} else {
		err = s.repo.Save(ctx, p)
	}
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewSaveError("payout"))
	}
	publishEvents(ctx, s.logger, s.publisher, p)
	return toPayoutResponse(p), nil
}
