package finance

import (
	"context"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPayableRepository is a mock implementation of PayableRepository
type MockPayableRepository struct {
	mock.Mock
}

func (m *MockPayableRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*finance.Payable, error) {
	args := m.Called(ctx, officeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayableFilter) ([]finance.Payable, error) {
	args := m.Called(ctx, officeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Payable), args.Error(1)
}

func (m *MockPayableRepository) CountForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayableFilter) (int64, error) {
	args := m.Called(ctx, officeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayableRepository) Save(ctx context.Context, p *finance.Payable) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPayableRepository) SaveWithLock(ctx context.Context, p *finance.Payable) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPayableRepository) DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error {
	return m.Called(ctx, officeID, id).Error(0)
}

// MockOwnerPayoutRepository is a mock implementation of OwnerPayoutRepository
type MockOwnerPayoutRepository struct {
	mock.Mock
}

func (m *MockOwnerPayoutRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*finance.OwnerPayout, error) {
	args := m.Called(ctx, officeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.OwnerPayout), args.Error(1)
}

func (m *MockOwnerPayoutRepository) FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayoutFilter) ([]finance.OwnerPayout, error) {
	args := m.Called(ctx, officeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.OwnerPayout), args.Error(1)
}

func (m *MockOwnerPayoutRepository) CountForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayoutFilter) (int64, error) {
	args := m.Called(ctx, officeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOwnerPayoutRepository) Save(ctx context.Context, p *finance.OwnerPayout) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockOwnerPayoutRepository) SaveWithLock(ctx context.Context, p *finance.OwnerPayout) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockOwnerPayoutRepository) DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error {
	return m.Called(ctx, officeID, id).Error(0)
}

// MockOfficeFinanceRepository is a mock implementation of OfficeFinanceRepository
type MockOfficeFinanceRepository struct {
	mock.Mock
}

func (m *MockOfficeFinanceRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*finance.OfficeFinance, error) {
	args := m.Called(ctx, officeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.OfficeFinance), args.Error(1)
}

func (m *MockOfficeFinanceRepository) FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter finance.FinanceFilter) ([]finance.OfficeFinance, error) {
	args := m.Called(ctx, officeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.OfficeFinance), args.Error(1)
}

func (m *MockOfficeFinanceRepository) CountForOffice(ctx context.Context, officeID uuid.UUID, filter finance.FinanceFilter) (int64, error) {
	args := m.Called(ctx, officeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOfficeFinanceRepository) LatestOccurrence(ctx context.Context, officeID, sourceID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, officeID, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockOfficeFinanceRepository) Save(ctx context.Context, f *finance.OfficeFinance) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockOfficeFinanceRepository) SaveWithLock(ctx context.Context, f *finance.OfficeFinance) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockOfficeFinanceRepository) DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error {
	return m.Called(ctx, officeID, id).Error(0)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockAttachmentStorage is a mock implementation of AttachmentStorage
type MockAttachmentStorage struct {
	mock.Mock
}

func (m *MockAttachmentStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockAttachmentStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockAttachmentStorage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// MockRentDueNotifier records reminders
type MockRentDueNotifier struct {
	mock.Mock
}

func (m *MockRentDueNotifier) NotifyRentDue(ctx context.Context, p *finance.Payable) error {
	return m.Called(ctx, p).Error(0)
}
