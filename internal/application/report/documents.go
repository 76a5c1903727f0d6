package report

import (
	"context"
	"errors"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayableLoader loads a single payable
type PayableLoader interface {
	Load(ctx context.Context, session shared.Session, id uuid.UUID) (*finance.Payable, error)
}

// ReceiptRenderer prints a receipt to PDF
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, receipt report.Receipt) ([]byte, error)
}

// ReceiptFile is a rendered receipt
type ReceiptFile struct {
	Filename string
	Data     []byte
}

// DocumentService produces per-record documents: payable receipts and owner
// statements
type DocumentService struct {
	payables PayableLoader
	payouts  PayoutFetcher
	offices  property.OfficeRepository
	owners   property.OwnerRepository
	renderer ReceiptRenderer
	logger   *zap.Logger
}

// NewDocumentService creates a new DocumentService. renderer may be nil when
// PDF printing is disabled.
func NewDocumentService(
	payables PayableLoader,
	payouts PayoutFetcher,
	offices property.OfficeRepository,
	owners property.OwnerRepository,
	renderer ReceiptRenderer,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		payables: payables,
		payouts:  payouts,
		offices:  offices,
		owners:   owners,
		renderer: renderer,
		logger:   logger,
	}
}

// Receipt renders the receipt of a payable
func (s *DocumentService) Receipt(ctx context.Context, session shared.Session, payableID uuid.UUID) (*ReceiptFile, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("PRINTING_UNAVAILABLE", "Receipt printing is not available right now")
	}
	p, err := s.payables.Load(ctx, session, payableID)
	if err != nil {
		return nil, err
	}
	office, err := s.offices.FindByID(ctx, session.OfficeID)
	if err != nil {
		return nil, s.humanize(err, shared.NewFetchError("the office details"))
	}
	if office == nil {
		return nil, shared.ErrSessionRequired
	}

	receipt := report.NewReceipt(*office, *p)
	data, err := s.renderer.RenderReceipt(ctx, receipt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("receipt rendering failed", zap.String("payable_id", p.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("PRINT_FAILED", "We couldn't print the receipt. Please try again")
	}
	return &ReceiptFile{Filename: "receipt-" + receipt.Number + ".pdf", Data: data}, nil
}

// OwnerStatement builds the payout statement of an owner over a range
func (s *DocumentService) OwnerStatement(ctx context.Context, session shared.Session, ownerID uuid.UUID, r report.DateRange) (*report.OwnerStatement, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	owner, err := s.owners.FindByIDForOffice(ctx, session.OfficeID, ownerID)
	if err != nil {
		return nil, s.humanize(err, shared.NewFetchError("the owner"))
	}
	if owner == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Owner not found")
	}

	payouts, err := s.payouts.Fetch(ctx, session, finance.PayoutFilter{OwnerID: &ownerID, FromDate: r.Start, ToDate: r.End})
	if err != nil {
		return nil, err
	}
	st := report.BuildOwnerStatement(owner.FullName, payouts, r)
	return &st, nil
}

func (s *DocumentService) humanize(err error, replacement *shared.DomainError) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	s.logger.Error("document lookup failed", zap.Error(err))
	return replacement
}
