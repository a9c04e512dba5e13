package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
	"github.com/dukkan-app/dukkan-api/internal/services"
)

type stubCreditRepo struct {
	repository.CreditRepository
	credit            *models.Credit
	saveRepaymentErr  error
	repaymentsPersist int
}

func (s *stubCreditRepo) FindByID(ctx context.Context, id uint) (*models.Credit, error) {
	if s.credit == nil || s.credit.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.credit, nil
}

func (s *stubCreditRepo) SaveRepayment(ctx context.Context, credit *models.Credit, entry *models.ProfitEntry) error {
	if s.saveRepaymentErr != nil {
		return s.saveRepaymentErr
	}
	s.repaymentsPersist++
	return nil
}

type stubActivityRepo struct {
	repository.ActivityRepository
}

func (s *stubActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	return nil
}

func newRepayTestContext(t *testing.T, creditID string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	jsonBytes, _ := json.Marshal(body)
	c.Request, _ = http.NewRequest("POST", "/credits/"+creditID+"/repayments", bytes.NewBuffer(jsonBytes))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "credit_id", Value: creditID}}
	c.Set("userID", uint(99))

	return c, w
}

func newTestCreditHandler(repo *stubCreditRepo) *CreditHandler {
	activitySvc := services.NewActivityService(&stubActivityRepo{})
	creditSvc := services.NewCreditService(repo, nil, activitySvc)
	return NewCreditHandler(creditSvc, nil)
}

func TestRepayEndpoint_Success(t *testing.T) {
	repo := &stubCreditRepo{
		credit: &models.Credit{
			ID:           1,
			CustomerName: "Ahmed",
			Amount:       1000,
			Status:       models.CreditStatusPending,
		},
	}
	handler := newTestCreditHandler(repo)

	c, w := newRepayTestContext(t, "1", map[string]interface{}{"amount": 400, "notes": "cash"})
	handler.Repay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.repaymentsPersist)

	var resp struct {
		Credit models.CreditResponse `json:"credit"`
		Income models.ProfitEntry    `json:"income"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.CreditStatusPartial, resp.Credit.Status)
	assert.Equal(t, 600.0, resp.Credit.Remaining)
	assert.Equal(t, models.ProfitTypeIncome, resp.Income.Type)
	assert.Equal(t, 400.0, resp.Income.Amount)
}

func TestRepayEndpoint_ExceedsBalance(t *testing.T) {
	repo := &stubCreditRepo{
		credit: &models.Credit{
			ID:           1,
			CustomerName: "Ahmed",
			Amount:       1000,
			AmountPaid:   400,
			Status:       models.CreditStatusPartial,
		},
	}
	handler := newTestCreditHandler(repo)

	c, w := newRepayTestContext(t, "1", map[string]interface{}{"amount": 601})
	handler.Repay(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, repo.repaymentsPersist)
	assert.Contains(t, w.Body.String(), "amount cannot exceed remaining balance")
}

func TestRepayEndpoint_InvalidAmount(t *testing.T) {
	repo := &stubCreditRepo{
		credit: &models.Credit{ID: 1, Amount: 1000, Status: models.CreditStatusPending},
	}
	handler := newTestCreditHandler(repo)

	// amount: 0 fails the required binding
	c, w := newRepayTestContext(t, "1", map[string]interface{}{"amount": 0})
	handler.Repay(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newRepayTestContext(t, "1", map[string]interface{}{"amount": -50})
	handler.Repay(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, repo.repaymentsPersist)
}

func TestRepayEndpoint_NotFound(t *testing.T) {
	handler := newTestCreditHandler(&stubCreditRepo{})

	c, w := newRepayTestContext(t, "42", map[string]interface{}{"amount": 100})
	handler.Repay(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
