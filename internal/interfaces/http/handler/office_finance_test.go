package handler

import (
	"net/http"
	"strings"
	"testing"

	financeapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOfficeFinanceRouter(session shared.Session, repo *MockOfficeFinanceRepository) *gin.Engine {
	h := NewOfficeFinanceHandler(financeapp.NewOfficeFinanceService(repo, nopPublisher{}, nil))
	router := newRouter(session)
	g := router.Group("/finance/office-finances")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/complete", h.Complete)
	g.POST("/:id/cancel", h.Cancel)
	return router
}

func TestOfficeFinanceHandler_Lifecycle(t *testing.T) {
	session := newTestSession()
	repo := new(MockOfficeFinanceRepository)
	router := newOfficeFinanceRouter(session, repo)

	var saved *finance.OfficeFinance
	repo.On("Save", mock.Anything, mock.AnythingOfType("*finance.OfficeFinance")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*finance.OfficeFinance) }).
		Return(nil)

	body := `{"amount":"8000","type":"expense","category":"salary","date":"2026-05-25T00:00:00Z",` +
		`"is_recurring":true,"recurring_frequency":"monthly","recurring_day":25}`
	rec := serve(router, http.MethodPost, "/finance/office-finances", strings.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[financeapp.OfficeFinanceResponse](t, rec).Data
	assert.Equal(t, "Salary", created.CategoryName)
	assert.True(t, created.IsRecurring)
	require.NotNil(t, created.RecurringDay)
	assert.Equal(t, 25, *created.RecurringDay)

	repo.On("FindByIDForOffice", mock.Anything, session.OfficeID, saved.ID).Return(saved, nil)
	repo.On("SaveWithLock", mock.Anything, saved).Return(nil)

	done := serve(router, http.MethodPost, "/finance/office-finances/"+saved.ID.String()+"/complete", strings.NewReader(`{"transaction_ref":"PAYROLL-05"}`))
	require.Equal(t, http.StatusOK, done.Code, done.Body.String())
	completed := decode[financeapp.OfficeFinanceResponse](t, done).Data
	assert.Equal(t, "completed", completed.Status)
	assert.Equal(t, "PAYROLL-05", completed.TransactionRef)

	again := serve(router, http.MethodPost, "/finance/office-finances/"+saved.ID.String()+"/cancel", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, again.Code)
}

func TestOfficeFinanceHandler_CreateRejectsUnknownCategory(t *testing.T) {
	repo := new(MockOfficeFinanceRepository)
	body := `{"amount":"10","type":"expense","category":"travel","date":"2026-05-25T00:00:00Z"}`

	rec := serve(newOfficeFinanceRouter(newTestSession(), repo), http.MethodPost, "/finance/office-finances", strings.NewReader(body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown finance category")
}

func TestOfficeFinanceHandler_ListByType(t *testing.T) {
	session := newTestSession()
	repo := new(MockOfficeFinanceRepository)
	incomeOnly := mock.MatchedBy(func(f finance.FinanceFilter) bool {
		return assert.ObjectsAreEqual([]finance.FinanceType{finance.FinanceTypeIncome}, f.Types)
	})
	repo.On("FindAllForOffice", mock.Anything, session.OfficeID, incomeOnly).Return([]finance.OfficeFinance{}, nil)
	repo.On("CountForOffice", mock.Anything, session.OfficeID, incomeOnly).Return(int64(0), nil)

	rec := serve(newOfficeFinanceRouter(session, repo), http.MethodGet, "/finance/office-finances?types=income", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[[]financeapp.OfficeFinanceResponse](t, rec)
	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(0), resp.Meta.Total)
	repo.AssertExpectations(t)
}
