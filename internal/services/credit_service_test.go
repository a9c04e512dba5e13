package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
)

// Mock CreditRepository (using embedding to avoid implementing all methods)
type mockCreditRepository struct {
	repository.CreditRepository
	mockFindByID           func(ctx context.Context, id uint) (*models.Credit, error)
	mockCreate             func(ctx context.Context, credit *models.Credit) error
	mockCreateWithCustomer func(ctx context.Context, credit *models.Credit, customer *models.Customer) error
	mockUpdate             func(ctx context.Context, credit *models.Credit) error
	mockSaveRepayment      func(ctx context.Context, credit *models.Credit, entry *models.ProfitEntry) error
}

func (m *mockCreditRepository) FindByID(ctx context.Context, id uint) (*models.Credit, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCreditRepository) Create(ctx context.Context, credit *models.Credit) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, credit)
	}
	return nil
}

func (m *mockCreditRepository) CreateWithCustomer(ctx context.Context, credit *models.Credit, customer *models.Customer) error {
	if m.mockCreateWithCustomer != nil {
		return m.mockCreateWithCustomer(ctx, credit, customer)
	}
	return nil
}

func (m *mockCreditRepository) Update(ctx context.Context, credit *models.Credit) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, credit)
	}
	return nil
}

func (m *mockCreditRepository) SaveRepayment(ctx context.Context, credit *models.Credit, entry *models.ProfitEntry) error {
	if m.mockSaveRepayment != nil {
		return m.mockSaveRepayment(ctx, credit, entry)
	}
	return nil
}

// Mock CustomerRepository
type mockCustomerRepository struct {
	repository.CustomerRepository
	mockFindByID   func(ctx context.Context, id uint) (*models.Customer, error)
	mockFindByName func(ctx context.Context, name string) (*models.Customer, error)
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCustomerRepository) FindByName(ctx context.Context, name string) (*models.Customer, error) {
	if m.mockFindByName != nil {
		return m.mockFindByName(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

// Mock ActivityRepository
type mockActivityRepository struct {
	repository.ActivityRepository
}

func (m *mockActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return nil
}

func newTestCreditService(creditRepo *mockCreditRepository, customerRepo *mockCustomerRepository) *CreditService {
	activitySvc := NewActivityService(&mockActivityRepository{})
	return NewCreditService(creditRepo, customerRepo, activitySvc)
}

func TestRepay_PartialPayment(t *testing.T) {
	credit := &models.Credit{
		ID:           1,
		CustomerID:   10,
		CustomerName: "Ahmed",
		Amount:       1000,
		AmountPaid:   0,
		Status:       models.CreditStatusPending,
	}

	creditRepo := &mockCreditRepository{}
	creditRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Credit, error) {
		return credit, nil
	}

	var savedCredit *models.Credit
	var savedEntry *models.ProfitEntry
	creditRepo.mockSaveRepayment = func(ctx context.Context, c *models.Credit, e *models.ProfitEntry) error {
		savedCredit = c
		savedEntry = e
		return nil
	}

	service := newTestCreditService(creditRepo, &mockCustomerRepository{})

	updated, entry, err := service.Repay(context.Background(), 1, 400, "first installment", 99)
	assert.NoError(t, err)
	assert.Equal(t, 400.0, updated.AmountPaid)
	assert.Equal(t, models.CreditStatusPartial, updated.Status)
	assert.Equal(t, 600.0, updated.Remaining())

	// Credit and income entry go through the same repository call
	assert.Same(t, updated, savedCredit)
	assert.Same(t, entry, savedEntry)

	// Income entry mirrors the payment
	assert.Equal(t, models.ProfitTypeIncome, entry.Type)
	assert.Equal(t, models.ProfitSourceRepayment, entry.Source)
	assert.Equal(t, 400.0, entry.Amount)
	assert.Equal(t, "Repayment from Ahmed", entry.Description)
	assert.Equal(t, credit.ID, *entry.CreditID)
	assert.WithinDuration(t, time.Now(), entry.OccurredAt, time.Second)

	// Note line is appended with date and amount
	assert.NotNil(t, updated.Notes)
	assert.Contains(t, *updated.Notes, "Repayment (")
	assert.Contains(t, *updated.Notes, "400 LE")
	assert.Contains(t, *updated.Notes, "first installment")
}

func TestRepay_ConsecutivePartialPayments(t *testing.T) {
	credit := &models.Credit{
		ID:           1,
		CustomerName: "Ahmed",
		Amount:       1000,
		AmountPaid:   100,
		Status:       models.CreditStatusPartial,
	}

	creditRepo := &mockCreditRepository{}
	creditRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Credit, error) {
		return credit, nil
	}

	service := newTestCreditService(creditRepo, &mockCustomerRepository{})

	// A second installment that still leaves a balance keeps the credit partial
	updated, entry, err := service.Repay(context.Background(), 1, 100, "", 99)
	assert.NoError(t, err)
	assert.Equal(t, 200.0, updated.AmountPaid)
	assert.Equal(t, models.CreditStatusPartial, updated.Status)
	assert.Equal(t, 100.0, entry.Amount)

	// And a third one
	updated, _, err = service.Repay(context.Background(), 1, 300, "", 99)
	assert.NoError(t, err)
	assert.Equal(t, 500.0, updated.AmountPaid)
	assert.Equal(t, models.CreditStatusPartial, updated.Status)
}

func TestRepay_SettlesCredit(t *testing.T) {
	credit := &models.Credit{
		ID:           2,
		CustomerName: "Mona",
		Amount:       1000,
		AmountPaid:   400,
		Status:       models.CreditStatusPartial,
	}

	creditRepo := &mockCreditRepository{}
	creditRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Credit, error) {
		return credit, nil
	}

	service := newTestCreditService(creditRepo, &mockCustomerRepository{})

	updated, entry, err := service.Repay(context.Background(), 2, 600, "", 99)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, updated.AmountPaid)
	assert.Equal(t, models.CreditStatusPaid, updated.Status)
	assert.Equal(t, 0.0, updated.Remaining())
	assert.Equal(t, 600.0, entry.Amount)
}

func TestRepay_ExceedsBalance(t *testing.T) {
	existingNotes := "original note"
	credit := &models.Credit{
		ID:           3,
		CustomerName: "Samir",
		Amount:       1000,
		AmountPaid:   400,
		Status:       models.CreditStatusPartial,
		Notes:        &existingNotes,
	}

	creditRepo := &mockCreditRepository{}
	creditRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Credit, error) {
		return credit, nil
	}

	saveCalled := false
	creditRepo.mockSaveRepayment = func(ctx context.Context, c *models.Credit, e *models.ProfitEntry) error {
		saveCalled = true
		return nil
	}

	service := newTestCreditService(creditRepo, &mockCustomerRepository{})

	_, _, err := service.Repay(context.Background(), 3, 601, "", 99)
	assert.ErrorIs(t, err, ErrExceedsBalance)
	assert.False(t, saveCalled, "an over-payment must not touch the repository")

	// The credit is left exactly as it was
	assert.Equal(t, 400.0, credit.AmountPaid)
	assert.Equal(t, models.CreditStatusPartial, credit.Status)
	assert.Equal(t, "original note", *credit.Notes)
}

func TestRepay_InvalidAmount(t *testing.T) {
	credit := &models.Credit{ID: 4, Amount: 1000, Status: models.CreditStatusPending}

	creditRepo := &mockCreditRepository{}
	creditRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Credit, error) {
		return credit, nil
	}

	service := newTestCreditService(creditRepo, &mockCustomerRepository{})

	for _, amount := range []float64{0, -5} {
		_, _, err := service.Repay(context.Background(), 4, amount, "", 99)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Equal(t, 0.0, credit.AmountPaid)
}

func TestRepay_CreditNotFound(t *testing.T) {
	service := newTestCreditService(&mockCreditRepository{}, &mockCustomerRepository{})

	_, _, err := service.Repay(context.Background(), 999, 100, "", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepay_AppendsToExistingNotes(t *testing.T) {
	existing := "took goods on 2026-01-10"
	credit := &models.Credit{
		ID:           5,
		CustomerName: "Hala",
		Amount:       200,
		Status:       models.CreditStatusPending,
		Notes:        &existing,
	}

	creditRepo := &mockCreditRepository{}
	creditRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Credit, error) {
		return credit, nil
	}

	service := newTestCreditService(creditRepo, &mockCustomerRepository{})

	updated, _, err := service.Repay(context.Background(), 5, 50, "cash", 99)
	assert.NoError(t, err)

	lines := strings.Split(*updated.Notes, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "took goods on 2026-01-10", lines[0])
	assert.Contains(t, lines[1], "50 LE - cash")
}

func TestCreateCredit_StatusFollowsBalance(t *testing.T) {
	customer := &models.Customer{ID: 10, Name: "Ahmed", Status: models.CustomerStatusActive}

	customerRepo := &mockCustomerRepository{}
	customerRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Customer, error) {
		return customer, nil
	}

	service := newTestCreditService(&mockCreditRepository{}, customerRepo)
	customerID := uint(10)

	cases := []struct {
		amountPaid float64
		status     string
	}{
		{0, models.CreditStatusPending},
		{250, models.CreditStatusPartial},
		{500, models.CreditStatusPaid},
	}

	for _, tc := range cases {
		credit, err := service.Create(context.Background(), CreateCreditInput{
			CustomerID: &customerID,
			Amount:     500,
			AmountPaid: tc.amountPaid,
		}, 99)
		assert.NoError(t, err)
		assert.Equal(t, tc.status, credit.Status)
		assert.Equal(t, "Ahmed", credit.CustomerName)
	}
}

func TestCreateCredit_Validation(t *testing.T) {
	service := newTestCreditService(&mockCreditRepository{}, &mockCustomerRepository{})

	_, err := service.Create(context.Background(), CreateCreditInput{Amount: 0, CustomerName: "X"}, 99)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = service.Create(context.Background(), CreateCreditInput{Amount: 100, AmountPaid: 150, CustomerName: "X"}, 99)
	assert.Error(t, err)

	_, err = service.Create(context.Background(), CreateCreditInput{Amount: 100, CustomerName: "   "}, 99)
	assert.Error(t, err)
}

func TestCreateCredit_ProvisionsUnknownCustomer(t *testing.T) {
	creditRepo := &mockCreditRepository{}

	var provisioned *models.Customer
	creditRepo.mockCreateWithCustomer = func(ctx context.Context, credit *models.Credit, customer *models.Customer) error {
		customer.ID = 42
		credit.CustomerID = customer.ID
		credit.CustomerName = customer.Name
		provisioned = customer
		return nil
	}

	service := newTestCreditService(creditRepo, &mockCustomerRepository{})

	credit, err := service.Create(context.Background(), CreateCreditInput{
		CustomerName:  "New Customer",
		CustomerPhone: "0100000000",
		Amount:        300,
	}, 99)
	assert.NoError(t, err)
	assert.NotNil(t, provisioned)
	assert.Equal(t, "New Customer", provisioned.Name)
	assert.Equal(t, models.CustomerStatusActive, provisioned.Status)
	assert.Equal(t, uint(42), credit.CustomerID)
}

func TestCreateCredit_ReusesExistingCustomerByName(t *testing.T) {
	existing := &models.Customer{ID: 7, Name: "Ahmed", Status: models.CustomerStatusActive}

	customerRepo := &mockCustomerRepository{}
	customerRepo.mockFindByName = func(ctx context.Context, name string) (*models.Customer, error) {
		return existing, nil
	}

	creditRepo := &mockCreditRepository{}
	provisionCalled := false
	creditRepo.mockCreateWithCustomer = func(ctx context.Context, credit *models.Credit, customer *models.Customer) error {
		provisionCalled = true
		return nil
	}

	service := newTestCreditService(creditRepo, customerRepo)

	credit, err := service.Create(context.Background(), CreateCreditInput{
		CustomerName: "Ahmed",
		Amount:       150,
	}, 99)
	assert.NoError(t, err)
	assert.False(t, provisionCalled)
	assert.Equal(t, uint(7), credit.CustomerID)
}

func TestUpdateCredit_ReconcilesStatus(t *testing.T) {
	credit := &models.Credit{
		ID:           6,
		CustomerName: "Nour",
		Amount:       1000,
		AmountPaid:   1000,
		Status:       models.CreditStatusPaid,
	}

	creditRepo := &mockCreditRepository{}
	creditRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Credit, error) {
		return credit, nil
	}

	service := newTestCreditService(creditRepo, &mockCustomerRepository{})

	// Raising the amount reopens a settled credit
	newAmount := 1500.0
	updated, err := service.Update(context.Background(), 6, UpdateCreditInput{Amount: &newAmount}, 99)
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPartial, updated.Status)

	// Zeroing the paid balance takes it back to pending
	zero := 0.0
	updated, err = service.Update(context.Background(), 6, UpdateCreditInput{AmountPaid: &zero}, 99)
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPending, updated.Status)
}
