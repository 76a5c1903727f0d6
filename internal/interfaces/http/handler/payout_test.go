package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	financeapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPayoutRouter(session shared.Session, repo *MockPayoutRepository) *gin.Engine {
	h := NewPayoutHandler(financeapp.NewPayoutService(repo, nopPublisher{}, nil))
	router := newRouter(session)
	g := router.Group("/finance/payouts")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/pay", h.Pay)
	g.POST("/:id/cancel", h.Cancel)
	return router
}

func newTestPayout(t *testing.T, officeID, ownerID uuid.UUID) *finance.OwnerPayout {
	t.Helper()
	p, err := finance.NewOwnerPayout(officeID, finance.NewOwnerPayoutInput{
		OwnerID:     ownerID,
		Amount:      decimal.NewFromInt(4000),
		PayoutDate:  time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		PeriodStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		PayoutType:  finance.PayoutTypeRent,
	})
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestPayoutHandler_ListByOwner(t *testing.T) {
	session := newTestSession()
	repo := new(MockPayoutRepository)
	ownerID := uuid.New()
	p := newTestPayout(t, session.OfficeID, ownerID)

	byOwner := mock.MatchedBy(func(f finance.PayoutFilter) bool {
		return f.OwnerID != nil && *f.OwnerID == ownerID &&
			assert.ObjectsAreEqual([]finance.PayoutType{finance.PayoutTypeRent}, f.PayoutTypes)
	})
	repo.On("FindAllForOffice", mock.Anything, session.OfficeID, byOwner).Return([]finance.OwnerPayout{*p}, nil)
	repo.On("CountForOffice", mock.Anything, session.OfficeID, byOwner).Return(int64(1), nil)

	rec := serve(newPayoutRouter(session, repo), http.MethodGet, "/finance/payouts?owner_id="+ownerID.String()+"&payout_types=rent", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[[]financeapp.PayoutResponse](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, ownerID, resp.Data[0].OwnerID)
	assert.Equal(t, "pending", resp.Data[0].Status)
	repo.AssertExpectations(t)
}

func TestPayoutHandler_CreateAndPay(t *testing.T) {
	session := newTestSession()
	repo := new(MockPayoutRepository)
	router := newPayoutRouter(session, repo)

	var saved *finance.OwnerPayout
	repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.OwnerPayout")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*finance.OwnerPayout) }).
		Return(nil)

	body := `{"owner_id":"` + uuid.NewString() + `","amount":"3200","payout_date":"2026-03-31T00:00:00Z",` +
		`"period_start":"2026-03-01T00:00:00Z","period_end":"2026-03-31T00:00:00Z","payout_type":"rent"}`
	rec := serve(router, http.MethodPost, "/finance/payouts", strings.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, saved)

	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, saved.ID).Return(saved, nil)
	repo.On("SaveWithLock", mock.Anything, saved).Return(nil)

	paid := serve(router, http.MethodPost, "/finance/payouts/"+saved.ID.String()+"/pay", strings.NewReader(`{"payment_method":"cash"}`))
	require.Equal(t, http.StatusOK, paid.Code, paid.Body.String())
	assert.Equal(t, "paid", decode[financeapp.PayoutResponse](t, paid).Data.Status)

	cancel := serve(router, http.MethodPost, "/finance/payouts/"+saved.ID.String()+"/cancel", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, cancel.Code)
}

func TestPayoutHandler_CreateRejectsReversedPeriod(t *testing.T) {
	session := newTestSession()
	repo := new(MockPayoutRepository)

	body := `{"owner_id":"` + uuid.NewString() + `","amount":"3200","payout_date":"2026-03-31T00:00:00Z",` +
		`"period_start":"2026-03-31T00:00:00Z","period_end":"2026-03-01T00:00:00Z","payout_type":"rent"}`
	rec := serve(newPayoutRouter(session, repo), http.MethodPost, "/finance/payouts", strings.NewReader(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PERIOD", decode[any](t, rec).Error.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPayoutHandler_DeleteOtherOffice(t *testing.T) {
	session := newTestSession()
	repo := new(MockPayoutRepository)
	id := uuid.New()
	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, id).Return(nil, nil)

	rec := serve(newPayoutRouter(session, repo), http.MethodDelete, "/finance/payouts/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertNotCalled(t, "DeleteForOffice", mock.Anything, mock.Anything, mock.Anything)
}
