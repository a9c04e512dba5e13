package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"

	"gorm.io/gorm"
)

// CustomerService handles customer business logic
type CustomerService struct {
	repo        repository.CustomerRepository
	activitySvc *ActivityService
}

func NewCustomerService(repo repository.CustomerRepository, activitySvc *ActivityService) *CustomerService {
	return &CustomerService{
		repo:        repo,
		activitySvc: activitySvc,
	}
}

// FindByID returns the customer with its derived debt total
func (s *CustomerService) FindByID(ctx context.Context, id uint) (*models.Customer, float64, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	debt, err := s.repo.OutstandingDebt(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return customer, debt, nil
}

// List returns customers plus a per-customer debt map computed in one
// query, so list responses never carry stale stored totals.
func (s *CustomerService) List(ctx context.Context, query *repository.ListQuery) ([]models.Customer, map[uint]float64, int64, error) {
	customers, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, nil, 0, err
	}
	debts, err := s.repo.OutstandingDebtAll(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	return customers, debts, total, nil
}

func (s *CustomerService) Create(ctx context.Context, customer *models.Customer, actorID uint) error {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return fmt.Errorf("customer name is required")
	}

	if _, err := s.repo.FindByName(ctx, customer.Name); err == nil {
		return ErrDuplicate
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionCreate, "Customer", customer.ID,
		fmt.Sprintf("Customer created: %s", customer.Name), "")
}

func (s *CustomerService) Update(ctx context.Context, customer *models.Customer, actorID uint) error {
	if err := s.repo.Update(ctx, customer); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "Customer", customer.ID,
		fmt.Sprintf("Customer updated: %s", customer.Name), "")
}

// Archive hides the customer from active views. Credits and sales keep
// their references, so history stays intact.
func (s *CustomerService) Archive(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionDelete, "Customer", id, "Customer archived", "")
}

// CheckAvailability reports whether a field value is free to use.
// excludeID skips the record being edited.
func (s *CustomerService) CheckAvailability(ctx context.Context, field, value string, excludeID uint) (bool, error) {
	if field != "name" {
		return false, fmt.Errorf("unsupported field: %s", field)
	}

	existing, err := s.repo.FindByName(ctx, strings.TrimSpace(value))
	if err == gorm.ErrRecordNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID == excludeID, nil
}

// FindDebtors returns active customers with open credits and their debt totals
func (s *CustomerService) FindDebtors(ctx context.Context) ([]models.Customer, map[uint]float64, error) {
	customers, err := s.repo.FindDebtors(ctx)
	if err != nil {
		return nil, nil, err
	}
	debts, err := s.repo.OutstandingDebtAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return customers, debts, nil
}
