package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/dukkan-app/dukkan-api/internal/config"
	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
)

// ProductService handles inventory business logic
type ProductService struct {
	repo        repository.ProductRepository
	activitySvc *ActivityService
	imageSvc    *ImageService
	cfg         *config.Config
}

func NewProductService(repo repository.ProductRepository, activitySvc *ActivityService, imageSvc *ImageService, cfg *config.Config) *ProductService {
	return &ProductService{
		repo:        repo,
		activitySvc: activitySvc,
		imageSvc:    imageSvc,
		cfg:         cfg,
	}
}

// LowStockThreshold exposes the configured low-stock boundary for responses
func (s *ProductService) LowStockThreshold() int {
	return s.cfg.LowStockThreshold
}

func (s *ProductService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) FindByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	return s.repo.FindByBarcode(ctx, barcode)
}

func (s *ProductService) List(ctx context.Context, query *repository.ListQuery) ([]models.Product, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ProductService) Create(ctx context.Context, product *models.Product, actorID uint) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if product.SellPrice < 0 || product.CostPrice < 0 {
		return fmt.Errorf("prices cannot be negative")
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionCreate, "Product", product.ID,
		fmt.Sprintf("Product created: %s (stock %d)", product.Name, product.Stock), "")
}

func (s *ProductService) Update(ctx context.Context, product *models.Product, actorID uint) error {
	if product.SellPrice < 0 || product.CostPrice < 0 {
		return fmt.Errorf("prices cannot be negative")
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "Product", product.ID,
		fmt.Sprintf("Product updated: %s", product.Name), "")
}

func (s *ProductService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionDelete, "Product", id, "Product deleted", "")
}

// UpdateImage processes the uploaded image and stores its path on the product
func (s *ProductService) UpdateImage(ctx context.Context, id uint, file multipart.File, header *multipart.FileHeader) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.imageSvc.ProcessAndSave(file, header)
	if err != nil {
		return nil, err
	}

	product.ImagePath = &result.URL
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// FindLowStock returns products at or below the configured threshold
func (s *ProductService) FindLowStock(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindLowStock(ctx, s.cfg.LowStockThreshold)
}
