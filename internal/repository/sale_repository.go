package repository

import (
	"context"
	"time"

	"github.com/dukkan-app/dukkan-api/internal/models"

	"gorm.io/gorm"
)

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Sale, error)
	CreateWithStock(ctx context.Context, sale *models.Sale) error
	Update(ctx context.Context, sale *models.Sale) error
	DeleteWithStock(ctx context.Context, sale *models.Sale) error
	List(ctx context.Context, query *ListQuery) ([]models.Sale, int64, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]models.Sale, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.Sale, error)
	FindAll(ctx context.Context) ([]models.Sale, error)
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Customer").
		First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// CreateWithStock inserts the sale and decrements the product's stock
// in one transaction. One sale record always moves one unit.
func (r *saleRepository) CreateWithStock(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		if sale.ProductID != nil {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", *sale.ProductID).
				Update("stock", gorm.Expr("stock - 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *saleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// DeleteWithStock removes the sale and returns the unit to inventory
func (r *saleRepository) DeleteWithStock(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Sale{}, sale.ID).Error; err != nil {
			return err
		}
		if sale.ProductID != nil {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", *sale.ProductID).
				Update("stock", gorm.Expr("stock + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *saleRepository) List(ctx context.Context, query *ListQuery) ([]models.Sale, int64, error) {
	var sales []models.Sale
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Sale{})

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("product_name ILIKE ? OR customer_name ILIKE ?", search, search)
	}

	// Apply status filter
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	// Apply customer filter
	if query.Filters["customer_id"] != "" {
		db = db.Where("customer_id = ?", query.Filters["customer_id"])
	}

	// Apply date range filters
	if query.Filters["from"] != "" {
		db = db.Where("sold_at >= ?", query.Filters["from"])
	}
	if query.Filters["to"] != "" {
		db = db.Where("sold_at <= ?", query.Filters["to"])
	}

	// Count total
	db.Count(&total)

	// Apply sorting
	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("sold_at DESC")
	}

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&sales).Error
	return sales, total, err
}

// FindBetween returns sales with the product preloaded so cost fallback
// can use the live cost price when no snapshot was recorded.
func (r *saleRepository) FindBetween(ctx context.Context, from, to time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Order("sold_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("sold_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) FindAll(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("sold_at DESC").
		Find(&sales).Error
	return sales, err
}
