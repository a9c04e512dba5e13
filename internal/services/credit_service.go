package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
	"github.com/dukkan-app/dukkan-api/internal/statemachine"

	"gorm.io/gorm"
)

// CreditService handles the customer debt ledger
type CreditService struct {
	repo         repository.CreditRepository
	customerRepo repository.CustomerRepository
	activitySvc  *ActivityService
}

func NewCreditService(repo repository.CreditRepository, customerRepo repository.CustomerRepository, activitySvc *ActivityService) *CreditService {
	return &CreditService{
		repo:         repo,
		customerRepo: customerRepo,
		activitySvc:  activitySvc,
	}
}

// CreateCreditInput carries the fields accepted when extending credit.
// Either CustomerID or CustomerName must be set; an unknown name
// auto-provisions a customer together with the credit.
type CreateCreditInput struct {
	CustomerID    *uint      `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Amount        float64    `json:"amount"`
	AmountPaid    float64    `json:"amount_paid"`
	Notes         *string    `json:"notes"`
	DueDate       *time.Time `json:"due_date"`
	ImagePath     *string    `json:"image_path"`
}

func (s *CreditService) Create(ctx context.Context, input CreateCreditInput, actorID uint) (*models.Credit, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.AmountPaid < 0 || input.AmountPaid > input.Amount {
		return nil, fmt.Errorf("amount paid must be between 0 and the credit amount")
	}

	credit := &models.Credit{
		Amount:     input.Amount,
		AmountPaid: input.AmountPaid,
		Notes:      input.Notes,
		DueDate:    input.DueDate,
		ImagePath:  input.ImagePath,
	}
	credit.Status = credit.ComputeStatus()

	if input.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *input.CustomerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		credit.CustomerID = customer.ID
		credit.CustomerName = customer.Name
		if err := s.repo.Create(ctx, credit); err != nil {
			return nil, err
		}
	} else {
		name := strings.TrimSpace(input.CustomerName)
		if name == "" {
			return nil, fmt.Errorf("a customer is required")
		}

		existing, err := s.customerRepo.FindByName(ctx, name)
		switch err {
		case nil:
			credit.CustomerID = existing.ID
			credit.CustomerName = existing.Name
			if err := s.repo.Create(ctx, credit); err != nil {
				return nil, err
			}
		case gorm.ErrRecordNotFound:
			customer := &models.Customer{
				Name:   name,
				Phone:  input.CustomerPhone,
				Status: models.CustomerStatusActive,
			}
			if err := s.repo.CreateWithCustomer(ctx, credit, customer); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	s.activitySvc.Log(ctx, actorID, models.ActionCreate, "Credit", credit.ID,
		fmt.Sprintf("Credit of %s LE extended to %s", formatAmount(credit.Amount), credit.CustomerName), "")
	return credit, nil
}

// Repay applies a payment against a credit. The credit update and the
// income ledger entry are persisted in one transaction, so a repayment
// can never land half-applied.
func (s *CreditService) Repay(ctx context.Context, creditID uint, amount float64, notes string, actorID uint) (*models.Credit, *models.ProfitEntry, error) {
	credit, err := s.repo.FindByID(ctx, creditID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	if amount > credit.Remaining() {
		return nil, nil, ErrExceedsBalance
	}

	credit.AmountPaid += amount

	fsm := statemachine.NewCreditFSM(credit)
	if err := fsm.ApplyPayment(ctx); err != nil {
		return nil, nil, ErrInvalidState
	}

	now := time.Now()
	credit.Notes = appendNote(credit.Notes, fmt.Sprintf("Repayment (%s): %s LE - %s",
		now.Format("2006-01-02"), formatAmount(amount), notes))

	entry := &models.ProfitEntry{
		Type:        models.ProfitTypeIncome,
		Source:      models.ProfitSourceRepayment,
		Amount:      amount,
		Description: fmt.Sprintf("Repayment from %s", credit.CustomerName),
		CreditID:    &credit.ID,
		OccurredAt:  now,
	}

	if err := s.repo.SaveRepayment(ctx, credit, entry); err != nil {
		return nil, nil, err
	}

	s.activitySvc.Log(ctx, actorID, models.ActionRepay, "Credit", credit.ID,
		fmt.Sprintf("Repayment of %s LE from %s (%s)", formatAmount(amount), credit.CustomerName, credit.Status), "")
	return credit, entry, nil
}

func (s *CreditService) FindByID(ctx context.Context, id uint) (*models.Credit, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CreditService) List(ctx context.Context, query *repository.ListQuery) ([]models.Credit, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *CreditService) FindByCustomer(ctx context.Context, customerID uint) ([]models.Credit, error) {
	return s.repo.FindByCustomer(ctx, customerID)
}

// UpdateCreditInput carries the editable fields of a credit
type UpdateCreditInput struct {
	Amount     *float64   `json:"amount"`
	AmountPaid *float64   `json:"amount_paid"`
	Notes      *string    `json:"notes"`
	DueDate    *time.Time `json:"due_date"`
	ImagePath  *string    `json:"image_path"`
}

// Update edits a credit's fields. The status always follows the edited
// balance; it cannot be set directly.
func (s *CreditService) Update(ctx context.Context, id uint, input UpdateCreditInput, actorID uint) (*models.Credit, error) {
	credit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		credit.Amount = *input.Amount
	}
	if input.AmountPaid != nil {
		credit.AmountPaid = *input.AmountPaid
	}
	if credit.AmountPaid < 0 || credit.AmountPaid > credit.Amount {
		return nil, fmt.Errorf("amount paid must be between 0 and the credit amount")
	}
	if input.Notes != nil {
		credit.Notes = input.Notes
	}
	if input.DueDate != nil {
		credit.DueDate = input.DueDate
	}
	if input.ImagePath != nil {
		credit.ImagePath = input.ImagePath
	}

	fsm := statemachine.NewCreditFSM(credit)
	if err := fsm.Reconcile(ctx); err != nil {
		return nil, ErrInvalidState
	}

	if err := s.repo.Update(ctx, credit); err != nil {
		return nil, err
	}
	s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "Credit", credit.ID,
		fmt.Sprintf("Credit updated for %s", credit.CustomerName), "")
	return credit, nil
}

// Delete removes a credit. Income entries already derived from its
// repayments are kept; the ledger records money actually received.
func (s *CreditService) Delete(ctx context.Context, id uint, actorID uint) error {
	credit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionDelete, "Credit", id,
		fmt.Sprintf("Credit deleted for %s", credit.CustomerName), "")
}

// FindOverdue returns open credits whose due date has passed
func (s *CreditService) FindOverdue(ctx context.Context) ([]models.Credit, error) {
	return s.repo.FindOverdue(ctx, time.Now())
}

// formatAmount renders an amount without trailing zeros (400, 12.5)
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func appendNote(existing *string, line string) *string {
	if existing == nil || strings.TrimSpace(*existing) == "" {
		return &line
	}
	combined := *existing + "\n" + line
	return &combined
}
