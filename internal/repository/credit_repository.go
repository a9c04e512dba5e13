package repository

import (
	"context"
	"time"

	"github.com/dukkan-app/dukkan-api/internal/models"

	"gorm.io/gorm"
)

// CreditRepository defines the interface for credit data access
type CreditRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Credit, error)
	Create(ctx context.Context, credit *models.Credit) error
	CreateWithCustomer(ctx context.Context, credit *models.Credit, customer *models.Customer) error
	Update(ctx context.Context, credit *models.Credit) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Credit, int64, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.Credit, error)
	FindOverdue(ctx context.Context, now time.Time) ([]models.Credit, error)
	FindAll(ctx context.Context) ([]models.Credit, error)
	OutstandingReceivables(ctx context.Context) (float64, error)
	SaveRepayment(ctx context.Context, credit *models.Credit, entry *models.ProfitEntry) error
}

type creditRepository struct {
	db *gorm.DB
}

// NewCreditRepository creates a new credit repository
func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) FindByID(ctx context.Context, id uint) (*models.Credit, error) {
	var credit models.Credit
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&credit, id).Error
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *creditRepository) Create(ctx context.Context, credit *models.Credit) error {
	return r.db.WithContext(ctx).Create(credit).Error
}

// CreateWithCustomer provisions a new customer and its first credit
// in one transaction, so a failed credit insert never leaves a
// half-created customer behind.
func (r *creditRepository) CreateWithCustomer(ctx context.Context, credit *models.Credit, customer *models.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
		credit.CustomerID = customer.ID
		credit.CustomerName = customer.Name
		return tx.Create(credit).Error
	})
}

func (r *creditRepository) Update(ctx context.Context, credit *models.Credit) error {
	return r.db.WithContext(ctx).Save(credit).Error
}

func (r *creditRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Credit{}, id).Error
}

func (r *creditRepository) List(ctx context.Context, query *ListQuery) ([]models.Credit, int64, error) {
	var credits []models.Credit
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Credit{})

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("customer_name ILIKE ? OR notes ILIKE ?", search, search)
	}

	// Apply status filter
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	// Apply customer filter
	if query.Filters["customer_id"] != "" {
		db = db.Where("customer_id = ?", query.Filters["customer_id"])
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
		db = db.Order("created_at DESC")
	}

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&credits).Error
	return credits, total, err
}

func (r *creditRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.Credit, error) {
	var credits []models.Credit
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&credits).Error
	return credits, err
}

func (r *creditRepository) FindOverdue(ctx context.Context, now time.Time) ([]models.Credit, error) {
	var credits []models.Credit
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", now, models.CreditStatusPaid).
		Order("due_date ASC").
		Find(&credits).Error
	return credits, err
}

func (r *creditRepository) FindAll(ctx context.Context) ([]models.Credit, error) {
	var credits []models.Credit
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&credits).Error
	return credits, err
}

// OutstandingReceivables sums the unpaid balance of all open credits
func (r *creditRepository) OutstandingReceivables(ctx context.Context) (float64, error) {
	var result struct {
		Total float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Credit{}).
		Select("COALESCE(SUM(amount - amount_paid), 0) as total").
		Where("status <> ?", models.CreditStatusPaid).
		Scan(&result).Error

	return result.Total, err
}

// SaveRepayment persists the updated credit and its income ledger
// entry atomically. Either both rows land or neither does.
func (r *creditRepository) SaveRepayment(ctx context.Context, credit *models.Credit, entry *models.ProfitEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(credit).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}
