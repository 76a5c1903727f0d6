package finance

import (
	"context"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OfficeFinanceService provides office income/expense operations and the
// finances fetcher
type OfficeFinanceService struct {
	repo      finance.OfficeFinanceRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOfficeFinanceService creates a new OfficeFinanceService
func NewOfficeFinanceService(repo finance.OfficeFinanceRepository, publisher shared.EventPublisher, logger *zap.Logger) *OfficeFinanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfficeFinanceService{repo: repo, publisher: publisher, logger: logger}
}

// Fetch loads the office finances matching filter for the session office
func (s *OfficeFinanceService) Fetch(ctx context.Context, session shared.Session, filter finance.FinanceFilter) ([]finance.OfficeFinance, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	items, err := s.repo.FindAllForOffice(ctx, session.OfficeID, filter)
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewFetchError("office finances"))
	}
	return items, nil
}

// List returns a page of office finances
func (s *OfficeFinanceService) List(ctx context.Context, session shared.Session, filter OfficeFinanceListFilter) ([]OfficeFinanceResponse, int64, error) {
	domainFilter := finance.FinanceFilter{
		Types:      toStrings[finance.FinanceType](filter.Types),
		Categories: toStrings[finance.FinanceCategory](filter.Categories),
		Statuses:   toStrings[finance.FinanceStatus](filter.Statuses),
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	items, err := s.Fetch(ctx, session, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForOffice(ctx, session.OfficeID, domainFilter)
	if err != nil {
		return nil, 0, humanize(ctx, s.logger, err, shared.NewFetchError("office finances"))
	}

	out := make([]OfficeFinanceResponse, len(items))
	for i := range items {
		out[i] = *toOfficeFinanceResponse(&items[i])
	}
	return out, total, nil
}

// Get returns one entry
func (s *OfficeFinanceService) Get(ctx context.Context, session shared.Session, id uuid.UUID) (*OfficeFinanceResponse, error) {
	f, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	return toOfficeFinanceResponse(f), nil
}

func (s *OfficeFinanceService) load(ctx context.Context, session shared.Session, id uuid.UUID) (*finance.OfficeFinance, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	f, err := s.repo.FindByIDForOffice(ctx, session.OfficeID, id)
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewFetchError("the entry"))
	}
	if f == nil {
		return nil, notFound("Office finance entry")
	}
	return f, nil
}

// Create enters an office income or expense
func (s *OfficeFinanceService) Create(ctx context.Context, session shared.Session, req OfficeFinanceRequest) (*OfficeFinanceResponse, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	f, err := finance.NewOfficeFinance(session.OfficeID, finance.NewOfficeFinanceInput{
		Amount:         req.Amount,
		Type:           finance.FinanceType(req.Type),
		Category:       finance.FinanceCategory(req.Category),
		Status:         finance.FinanceStatus(req.Status),
		Date:           req.Date,
		Recurrence:     req.recurrence(),
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}
	f.SetCreatedBy(session.UserID)
	return s.save(ctx, f, false)
}

// Update edits a pending entry
func (s *OfficeFinanceService) Update(ctx context.Context, session shared.Session, id uuid.UUID, req OfficeFinanceRequest) (*OfficeFinanceResponse, error) {
	f, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := f.Update(finance.OfficeFinanceUpdate{
		Amount:         req.Amount,
		Type:           finance.FinanceType(req.Type),
		Category:       finance.FinanceCategory(req.Category),
		Date:           req.Date,
		Recurrence:     req.recurrence(),
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
	}); err != nil {
		return nil, err
	}
	return s.save(ctx, f, true)
}

// Complete settles an entry
func (s *OfficeFinanceService) Complete(ctx context.Context, session shared.Session, id uuid.UUID, req CompleteRequest) (*OfficeFinanceResponse, error) {
	f, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := f.Complete(req.TransactionRef); err != nil {
		return nil, err
	}
	return s.save(ctx, f, true)
}

// Cancel voids a pending entry
func (s *OfficeFinanceService) Cancel(ctx context.Context, session shared.Session, id uuid.UUID) (*OfficeFinanceResponse, error) {
	f, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := f.Cancel(); err != nil {
		return nil, err
	}
	return s.save(ctx, f, true)
}

// Delete removes an entry
func (s *OfficeFinanceService) Delete(ctx context.Context, session shared.Session, id uuid.UUID) error {
	if _, err := s.load(ctx, session, id); err != nil {
		return err
	}
	if err := s.repo.DeleteForOffice(ctx, session.OfficeID, id); err != nil {
		return humanize(ctx, s.logger, err, shared.NewSaveError("entry"))
	}
	return nil
}

// GenerateDueOccurrences creates every occurrence of the office's recurring
// entries that fell due up to asOf and was not generated yet. It returns the
// number of entries created.
func (s *OfficeFinanceService) GenerateDueOccurrences(ctx context.Context, session shared.Session, asOf time.Time) (int, error) {
	recurring := true
	templates, err := s.Fetch(ctx, session, finance.FinanceFilter{Recurring: &recurring})
	if err != nil {
		return 0, err
	}

	today := shared.DateOf(asOf)
	created := 0
	for i := range templates {
		tpl := &templates[i]
		if tpl.Status == finance.FinanceStatusCancelled || tpl.SourceID != nil {
			continue
		}

		last := tpl.Date
		latest, err := s.repo.LatestOccurrence(ctx, session.OfficeID, tpl.ID)
		if err != nil {
			return created, humanize(ctx, s.logger, err, shared.NewFetchError("office finances"))
		}
		if latest != nil && latest.After(last) {
			last = *latest
		}

		for {
			next, ok := tpl.NextOccurrence(last)
			if !ok || next.After(today) {
				break
			}
			occ, err := tpl.SpawnOccurrence(next)
			if err != nil {
				return created, err
			}
			if _, err := s.save(ctx, occ, false); err != nil {
				return created, err
			}
			created++
			last = next
		}
	}
	return created, nil
}

func (s *OfficeFinanceService) save(ctx context.Context, f *finance.OfficeFinance, existing bool) (*OfficeFinanceResponse, error) {
	var err error
	if existing {
		err = s.repo.SaveWithLock(ctx, f)
	} else {
		err = s.repo.Save(ctx, f)
	}
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewSaveError("entry"))
	}
	publishEvents(ctx, s.logger, s.publisher, f)
	return toOfficeFinanceResponse(f), nil
}
