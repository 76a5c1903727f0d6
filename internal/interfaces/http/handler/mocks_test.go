package handler

import (
	"context"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/notification"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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

type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*finance.OwnerPayout, error) {
	args := m.Called(ctx, officeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.OwnerPayout), args.Error(1)
}

func (m *MockPayoutRepository) FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayoutFilter) ([]finance.OwnerPayout, error) {
	args := m.Called(ctx, officeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.OwnerPayout), args.Error(1)
}

func (m *MockPayoutRepository) CountForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayoutFilter) (int64, error) {
	args := m.Called(ctx, officeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayoutRepository) Save(ctx context.Context, p *finance.OwnerPayout) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPayoutRepository) SaveWithLock(ctx context.Context, p *finance.OwnerPayout) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPayoutRepository) DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error {
	return m.Called(ctx, officeID, id).Error(0)
}

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

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) FindLatest(ctx context.Context, officeID uuid.UUID, limit int) ([]notification.Notification, error) {
	args := m.Called(ctx, officeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, officeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, officeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, officeID, id uuid.UUID) error {
	return m.Called(ctx, officeID, id).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, officeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, officeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) SoftDelete(ctx context.Context, officeID, id uuid.UUID) error {
	return m.Called(ctx, officeID, id).Error(0)
}

func (m *MockNotificationRepository) Exists(ctx context.Context, officeID uuid.UUID, t notification.Type, subjectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, officeID, t, subjectID)
	return args.Bool(0), args.Error(1)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*property.Contract, error) {
	args := m.Called(ctx, officeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, c *property.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContractRepository) SaveTermination(ctx context.Context, c *property.Contract) error {
	return m.Called(ctx, c).Error(0)
}

type MockOfficeRepository struct {
	mock.Mock
}

func (m *MockOfficeRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Office, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Office), args.Error(1)
}

func (m *MockOfficeRepository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*property.Owner, error) {
	args := m.Called(ctx, officeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Owner), args.Error(1)
}

// nopPublisher drops events
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...shared.DomainEvent) error { return nil }
