package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
)

// CategoryService handles category business logic
type CategoryService struct {
	repo        repository.CategoryRepository
	activitySvc *ActivityService
}

func NewCategoryService(repo repository.CategoryRepository, activitySvc *ActivityService) *CategoryService {
	return &CategoryService{
		repo:        repo,
		activitySvc: activitySvc,
	}
}

func (s *CategoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *CategoryService) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, category *models.Category, actorID uint) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionCreate, "Category", category.ID,
		fmt.Sprintf("Category created: %s", category.Name), "")
}

func (s *CategoryService) Update(ctx context.Context, category *models.Category, actorID uint) error {
	if err := s.repo.Update(ctx, category); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "Category", category.ID,
		fmt.Sprintf("Category updated: %s", category.Name), "")
}

// Delete removes a category. Products referencing it keep a dangling
// category_id of NULL via the FK's ON DELETE SET NULL.
func (s *CategoryService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionDelete, "Category", id, "Category deleted", "")
}
