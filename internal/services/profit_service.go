package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"

	"gorm.io/gorm"
)

// ProfitService handles the manual income/expense ledger
type ProfitService struct {
	repo        repository.ProfitRepository
	activitySvc *ActivityService
}

func NewProfitService(repo repository.ProfitRepository, activitySvc *ActivityService) *ProfitService {
	return &ProfitService{
		repo:        repo,
		activitySvc: activitySvc,
	}
}

// CreateProfitInput carries the fields for a manual ledger entry
type CreateProfitInput struct {
	Type        string     `json:"type"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

func (s *ProfitService) Create(ctx context.Context, input CreateProfitInput, actorID uint) (*models.ProfitEntry, error) {
	if input.Type != models.ProfitTypeIncome && input.Type != models.ProfitTypeExpense {
		return nil, fmt.Errorf("invalid entry type: %s", input.Type)
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry := &models.ProfitEntry{
		Type:        input.Type,
		Source:      models.ProfitSourceManual,
		Amount:      input.Amount,
		Description: input.Description,
		OccurredAt:  time.Now(),
	}
	if input.OccurredAt != nil {
		entry.OccurredAt = *input.OccurredAt
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.activitySvc.Log(ctx, actorID, models.ActionCreate, "Profit", entry.ID,
		fmt.Sprintf("%s entry of %s LE: %s", entry.Type, formatAmount(entry.Amount), entry.Description), "")
	return entry, nil
}

func (s *ProfitService) FindByID(ctx context.Context, id uint) (*models.ProfitEntry, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProfitService) List(ctx context.Context, query *repository.ListQuery) ([]models.ProfitEntry, int64, error) {
	return s.repo.List(ctx, query)
}

// UpdateProfitInput carries the editable fields of a manual entry
type UpdateProfitInput struct {
	Type        *string    `json:"type"`
	Amount      *float64   `json:"amount"`
	Description *string    `json:"description"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

// Update edits a manual entry. Entries written by the repayment flow
// are read-only; editing them would desync the credit ledger.
func (s *ProfitService) Update(ctx context.Context, id uint, input UpdateProfitInput, actorID uint) (*models.ProfitEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if entry.Source == models.ProfitSourceRepayment {
		return nil, fmt.Errorf("repayment entries cannot be edited")
	}

	if input.Type != nil {
		if *input.Type != models.ProfitTypeIncome && *input.Type != models.ProfitTypeExpense {
			return nil, fmt.Errorf("invalid entry type: %s", *input.Type)
		}
		entry.Type = *input.Type
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		entry.Amount = *input.Amount
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.OccurredAt != nil {
		entry.OccurredAt = *input.OccurredAt
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "Profit", entry.ID,
		fmt.Sprintf("Ledger entry updated: %s", entry.Description), "")
	return entry, nil
}

// Delete removes a manual entry. Repayment-sourced entries stay.
func (s *ProfitService) Delete(ctx context.Context, id uint, actorID uint) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if entry.Source == models.ProfitSourceRepayment {
		return fmt.Errorf("repayment entries cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionDelete, "Profit", id,
		fmt.Sprintf("Ledger entry deleted: %s", entry.Description), "")
}
