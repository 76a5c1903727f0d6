package finance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testSession() shared.Session {
	return shared.Session{OfficeID: uuid.New(), UserID: uuid.New(), Username: "clerk"}
}

func newTestPayable(t *testing.T, officeID uuid.UUID, due time.Time) *finance.Payable {
	t.Helper()
	p, err := finance.NewPayable(officeID, finance.NewPayableInput{
		ContractID: uuid.New(),
		Amount:     decimal.NewFromInt(1500),
		Category:   finance.PayableCategoryRent,
		Type:       finance.PayableTypeIncoming,
		DueDate:    due,
	})
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func newPayableServiceForTest() (*PayableService, *MockPayableRepository, *MockAttachmentStorage, *MockEventPublisher) {
	repo := new(MockPayableRepository)
	storage := new(MockAttachmentStorage)
	publisher := new(MockEventPublisher)
	return NewPayableService(repo, storage, publisher, nil), repo, storage, publisher
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected a domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestPayableService_Fetch_RequiresSession(t *testing.T) {
	svc, repo, _, _ := newPayableServiceForTest()

	_, err := svc.Fetch(context.Background(), shared.Session{}, finance.PayableFilter{})

	assert.ErrorIs(t, err, shared.ErrSessionRequired)
	repo.AssertNotCalled(t, "FindAllForOffice", mock.Anything, mock.Anything, mock.Anything)
}

func TestPayableService_Fetch_HumanizesQueryFailure(t *testing.T) {
	svc, repo, _, _ := newPayableServiceForTest()
	session := testSession()
	repo.On("FindAllForOffice", mock.Anything, session.OfficeID, mock.Anything).
		Return(nil, errors.New("pq: connection refused"))

	_, err := svc.Fetch(context.Background(), session, finance.PayableFilter{})

	assertDomainCode(t, err, "FETCH_FAILED")
	assert.Equal(t, "We couldn't load payables. Please try again", err.Error())
	assert.NotContains(t, err.Error(), "pq")
}

func TestPayableService_Fetch_PassesContextCancellation(t *testing.T) {
	svc, repo, _, _ := newPayableServiceForTest()
	session := testSession()
	repo.On("FindAllForOffice", mock.Anything, session.OfficeID, mock.Anything).
		Return(nil, context.Canceled)

	_, err := svc.Fetch(context.Background(), session, finance.PayableFilter{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPayableService_List(t *testing.T) {
	svc, repo, _, _ := newPayableServiceForTest()
	session := testSession()
	p := newTestPayable(t, session.OfficeID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	expectedFilter := finance.PayableFilter{
		Statuses:   []finance.PayableStatus{finance.PayableStatusPending},
		Pagination: shared.Pagination{Page: 2, PageSize: 10},
	}
	repo.On("FindAllForOffice", mock.Anything, session.OfficeID, expectedFilter).Return([]finance.Payable{*p}, nil)
	repo.On("CountForOffice", mock.Anything, session.OfficeID, expectedFilter).Return(int64(11), nil)

	items, total, err := svc.List(context.Background(), session, PayableListFilter{
		Statuses: []string{"pending"},
		Page:     2,
		PageSize: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Rent", items[0].CategoryName)
	assert.NotNil(t, items[0].Attachments)
}

func TestPayableService_Get_NotFound(t *testing.T) {
	svc, repo, _, _ := newPayableServiceForTest()
	session := testSession()
	id := uuid.New()
	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, id).Return(nil, nil)

	_, err := svc.Get(context.Background(), session, id)

	assertDomainCode(t, err, "NOT_FOUND")
}

func TestPayableService_Create_SavesAndPublishes(t *testing.T) {
	svc, repo, _, publisher := newPayableServiceForTest()
	session := testSession()
	repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Payable")).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == finance.EventTypePayableCreated
	})).Return(nil)

	resp, err := svc.Create(context.Background(), session, CreatePayableRequest{
		ContractID: uuid.New(),
		Amount:     decimal.NewFromInt(1000),
		Category:   "rent",
		Type:       "incoming",
		DueDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, session.OfficeID, resp.OfficeID)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPayableService_Create_RejectsInvalidInput(t *testing.T) {
	svc, repo, _, _ := newPayableServiceForTest()

	_, err := svc.Create(context.Background(), testSession(), CreatePayableRequest{
		ContractID: uuid.New(),
		Amount:     decimal.Zero,
		Category:   "rent",
		Type:       "incoming",
		DueDate:    time.Now(),
	})

	assertDomainCode(t, err, "INVALID_AMOUNT")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPayableService_Create_HumanizesSaveFailure(t *testing.T) {
	svc, repo, _, publisher := newPayableServiceForTest()
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("duplicate key value"))

	_, err := svc.Create(context.Background(), testSession(), CreatePayableRequest{
		ContractID: uuid.New(),
		Amount:     decimal.NewFromInt(10),
		Category:   "other",
		Type:       "outgoing",
		DueDate:    time.Now(),
	})

	assertDomainCode(t, err, "SAVE_FAILED")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPayableService_MarkPaid(t *testing.T) {
	svc, repo, _, publisher := newPayableServiceForTest()
	session := testSession()
	p := newTestPayable(t, session.OfficeID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	paidOn := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, p.ID).Return(p, nil)
	repo.On("SaveWithLock", mock.Anything, p).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.MarkPaid(context.Background(), session, p.ID, MarkPaidRequest{
		PaymentMethod:  "bank_transfer",
		PaymentDate:    &paidOn,
		TransactionRef: " TX-1 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)
	require.NotNil(t, resp.PaymentDate)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), *resp.PaymentDate)
	assert.Equal(t, "TX-1", resp.TransactionRef)
	assert.Empty(t, p.GetDomainEvents())
}

func TestPayableService_MarkPaid_AlreadyPaid(t *testing.T) {
	svc, repo, _, _ := newPayableServiceForTest()
	session := testSession()
	p := newTestPayable(t, session.OfficeID, time.Now())
	require.NoError(t, p.MarkAsPaid(time.Now(), finance.PaymentMethodCash, ""))
	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, p.ID).Return(p, nil)

	_, err := svc.MarkPaid(context.Background(), session, p.ID, MarkPaidRequest{PaymentMethod: "cash"})

	assertDomainCode(t, err, "INVALID_STATE")
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestPayableService_AddAttachment(t *testing.T) {
	svc, repo, storage, publisher := newPayableServiceForTest()
	session := testSession()
	p := newTestPayable(t, session.OfficeID, time.Now())
	svc.now = func() time.Time { return time.UnixMilli(1767225600000) }

	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, p.ID).Return(p, nil)
	repo.On("SaveWithLock", mock.Anything, p).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	expectedKey := session.OfficeID.String() + "/" + p.ID.String() + "/1767225600000.pdf"
	storage.On("Upload", mock.Anything, expectedKey, []byte("%PDF"), "application/pdf").Return(nil)

	resp, err := svc.AddAttachment(context.Background(), session, p.ID, AttachmentUpload{
		Name:        "lease/scan.pdf",
		ContentType: "application/pdf; charset=binary",
		Data:        []byte("%PDF"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, "scan.pdf", resp.Attachments[0].Name)
	assert.Equal(t, expectedKey, resp.Attachments[0].URL)
	storage.AssertExpectations(t)
}

func TestPayableService_AddAttachment_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		upload AttachmentUpload
	}{
		{"empty file", AttachmentUpload{Name: "a.pdf", ContentType: "application/pdf"}},
		{"too large", AttachmentUpload{Name: "a.pdf", ContentType: "application/pdf", Data: make([]byte, MaxAttachmentSize+1)}},
		{"disallowed type", AttachmentUpload{Name: "a.exe", ContentType: "application/x-msdownload", Data: []byte("MZ")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, storage, _ := newPayableServiceForTest()

			_, err := svc.AddAttachment(context.Background(), testSession(), uuid.New(), tc.upload)

			assertDomainCode(t, err, "INVALID_ATTACHMENT")
			repo.AssertNotCalled(t, "FindByIDForOffice", mock.Anything, mock.Anything, mock.Anything)
			storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPayableService_AddAttachment_RollsBackObjectOnSaveFailure(t *testing.T) {
	svc, repo, storage, _ := newPayableServiceForTest()
	session := testSession()
	p := newTestPayable(t, session.OfficeID, time.Now())

	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, p.ID).Return(p, nil)
	repo.On("SaveWithLock", mock.Anything, p).Return(errors.New("deadlock"))
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/png").Return(nil)
	storage.On("DeleteObject", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, ".png")
	})).Return(nil)

	_, err := svc.AddAttachment(context.Background(), session, p.ID, AttachmentUpload{
		Name: "photo.png", ContentType: "image/png", Data: []byte{0x89},
	})

	assertDomainCode(t, err, "SAVE_FAILED")
	storage.AssertExpectations(t)
}

func TestPayableService_RemoveAttachment(t *testing.T) {
	svc, repo, storage, _ := newPayableServiceForTest()
	session := testSession()
	p := newTestPayable(t, session.OfficeID, time.Now())
	require.NoError(t, p.AddAttachment(finance.Attachment{ID: "att-1", Name: "a.pdf", URL: "k/a.pdf"}))

	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, p.ID).Return(p, nil)
	repo.On("SaveWithLock", mock.Anything, p).Return(nil)
	storage.On("DeleteObject", mock.Anything, "k/a.pdf").Return(nil)

	resp, err := svc.RemoveAttachment(context.Background(), session, p.ID, "att-1")

	require.NoError(t, err)
	assert.Empty(t, resp.Attachments)
	storage.AssertExpectations(t)
}

func TestPayableService_Delete_RemovesStoredFiles(t *testing.T) {
	svc, repo, storage, _ := newPayableServiceForTest()
	session := testSession()
	p := newTestPayable(t, session.OfficeID, time.Now())
	require.NoError(t, p.AddAttachment(finance.Attachment{ID: "a", URL: "k/a"}))
	require.NoError(t, p.AddAttachment(finance.Attachment{ID: "b", URL: "k/b"}))

	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, p.ID).Return(p, nil)
	repo.On("DeleteForOffice", mock.Anything, session.OfficeID, p.ID).Return(nil)
	storage.On("DeleteObject", mock.Anything, "k/a").Return(nil)
	storage.On("DeleteObject", mock.Anything, "k/b").Return(errors.New("gone"))

	err := svc.Delete(context.Background(), session, p.ID)

	require.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestPayableService_AttachmentURL(t *testing.T) {
	svc, repo, storage, _ := newPayableServiceForTest()
	session := testSession()
	p := newTestPayable(t, session.OfficeID, time.Now())
	require.NoError(t, p.AddAttachment(finance.Attachment{ID: "a", URL: "k/a"}))

	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, p.ID).Return(p, nil)
	storage.On("GenerateDownloadURL", mock.Anything, "k/a", 15*time.Minute).
		Return("https://files/k/a?sig", time.Now().Add(15*time.Minute), nil)

	url, err := svc.AttachmentURL(context.Background(), session, p.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, "https://files/k/a?sig", url)

	_, err = svc.AttachmentURL(context.Background(), session, p.ID, "missing")
	assertDomainCode(t, err, "NOT_FOUND")
}
