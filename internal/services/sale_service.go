package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"

	"gorm.io/gorm"
)

// SaleService handles sale recording and inventory movement
type SaleService struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	activitySvc  *ActivityService
}

func NewSaleService(repo repository.SaleRepository, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository, activitySvc *ActivityService) *SaleService {
	return &SaleService{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		activitySvc:  activitySvc,
	}
}

// CreateSaleInput carries the fields accepted when recording a sale
type CreateSaleInput struct {
	ProductID  *uint      `json:"product_id"`
	CustomerID *uint      `json:"customer_id"`
	SellPrice  *float64   `json:"sell_price"`
	Status     string     `json:"status"`
	Notes      *string    `json:"notes"`
	SoldAt     *time.Time `json:"sold_at"`
}

// Create records a sale. When the sale references a product, the
// product's cost is snapshotted onto the sale and one unit leaves stock
// atomically with the insert.
func (s *SaleService) Create(ctx context.Context, input CreateSaleInput, actorID uint) (*models.Sale, error) {
	sale := &models.Sale{
		Status: input.Status,
		Notes:  input.Notes,
		SoldAt: time.Now(),
	}
	if input.SoldAt != nil {
		sale.SoldAt = *input.SoldAt
	}
	if sale.Status == "" {
		sale.Status = models.SaleStatusCompleted
	}
	if sale.Status != models.SaleStatusCompleted && sale.Status != models.SaleStatusCredit {
		return nil, fmt.Errorf("invalid sale status: %s", sale.Status)
	}

	if input.ProductID != nil {
		product, err := s.productRepo.FindByID(ctx, *input.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if product.Stock <= 0 {
			return nil, ErrOutOfStock
		}
		sale.ProductID = &product.ID
		sale.ProductName = product.Name
		cost := product.CostPrice
		sale.CostPriceSnapshot = &cost
		sale.SellPrice = product.SellPrice
	}

	// Explicit price wins over the catalog price
	if input.SellPrice != nil {
		sale.SellPrice = *input.SellPrice
	}
	if sale.SellPrice < 0 {
		return nil, fmt.Errorf("sell price cannot be negative")
	}
	if sale.ProductName == "" {
		return nil, fmt.Errorf("a product is required")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *input.CustomerID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		sale.CustomerID = &customer.ID
		sale.CustomerName = &customer.Name
	}

	if err := s.repo.CreateWithStock(ctx, sale); err != nil {
		return nil, err
	}

	s.activitySvc.Log(ctx, actorID, models.ActionCreate, "Sale", sale.ID,
		fmt.Sprintf("Sale recorded: %s for %.2f LE (%s)", sale.ProductName, sale.SellPrice, sale.Status), "")
	return sale, nil
}

func (s *SaleService) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SaleService) List(ctx context.Context, query *repository.ListQuery) ([]models.Sale, int64, error) {
	return s.repo.List(ctx, query)
}

// UpdateSaleInput carries the editable fields of a sale
type UpdateSaleInput struct {
	SellPrice *float64 `json:"sell_price"`
	Status    *string  `json:"status"`
	Notes     *string  `json:"notes"`
}

func (s *SaleService) Update(ctx context.Context, id uint, input UpdateSaleInput, actorID uint) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.SellPrice != nil {
		if *input.SellPrice < 0 {
			return nil, fmt.Errorf("sell price cannot be negative")
		}
		sale.SellPrice = *input.SellPrice
	}
	if input.Status != nil {
		if *input.Status != models.SaleStatusCompleted && *input.Status != models.SaleStatusCredit {
			return nil, fmt.Errorf("invalid sale status: %s", *input.Status)
		}
		sale.Status = *input.Status
	}
	if input.Notes != nil {
		sale.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "Sale", sale.ID,
		fmt.Sprintf("Sale updated: %s", sale.ProductName), "")
	return sale, nil
}

// Delete removes a sale and restores its unit to stock
func (s *SaleService) Delete(ctx context.Context, id uint, actorID uint) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.DeleteWithStock(ctx, sale); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionDelete, "Sale", id,
		fmt.Sprintf("Sale deleted: %s", sale.ProductName), "")
}
