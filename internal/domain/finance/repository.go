package finance

import (
	"context"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableFilter narrows payable queries. Zero values mean "no constraint".
type PayableFilter struct {
	ContractID *uuid.UUID
	Statuses   []PayableStatus
	Categories []PayableCategory
	Types      []PayableType
	FromDate   *time.Time // inclusive, on due_date
	ToDate     *time.Time // inclusive, on due_date
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	shared.Pagination
}

// PayableRepository persists payables
type PayableRepository interface {
	FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*Payable, error)
	// FindAllForOffice returns payables ordered by due_date descending
	FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter PayableFilter) ([]Payable, error)
	CountForOffice(ctx context.Context, officeID uuid.UUID, filter PayableFilter) (int64, error)
	Save(ctx context.Context, payable *Payable) error
	SaveWithLock(ctx context.Context, payable *Payable) error
	DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error
}

// PayoutFilter narrows payout queries
type PayoutFilter struct {
	OwnerID     *uuid.UUID
	Statuses    []PayoutStatus
	PayoutTypes []PayoutType
	FromDate    *time.Time // inclusive, on payout_date
	ToDate      *time.Time // inclusive, on payout_date
	shared.Pagination
}

// OwnerPayoutRepository persists owner payouts
type OwnerPayoutRepository interface {
	FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*OwnerPayout, error)
	// FindAllForOffice returns payouts ordered by payout_date descending
	FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter PayoutFilter) ([]OwnerPayout, error)
	CountForOffice(ctx context.Context, officeID uuid.UUID, filter PayoutFilter) (int64, error)
	Save(ctx context.Context, payout *OwnerPayout) error
	SaveWithLock(ctx context.Context, payout *OwnerPayout) error
	DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error
}

// FinanceFilter narrows office finance queries
type FinanceFilter struct {
	Types      []FinanceType
	Categories []FinanceCategory
	Statuses   []FinanceStatus
	FromDate   *time.Time // inclusive, on date
	ToDate     *time.Time // inclusive, on date
	Recurring  *bool
	SourceID   *uuid.UUID
	shared.Pagination
}

// OfficeFinanceRepository persists office finances
type OfficeFinanceRepository interface {
	FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*OfficeFinance, error)
	// FindAllForOffice returns entries ordered by date descending
	FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter FinanceFilter) ([]OfficeFinance, error)
	CountForOffice(ctx context.Context, officeID uuid.UUID, filter FinanceFilter) (int64, error)
	// LatestOccurrence returns the most recent date generated from a recurring
	// entry, or nil when none was generated yet.
	LatestOccurrence(ctx context.Context, officeID, sourceID uuid.UUID) (*time.Time, error)
	Save(ctx context.Context, finance *OfficeFinance) error
	SaveWithLock(ctx context.Context, finance *OfficeFinance) error
	DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error
}
