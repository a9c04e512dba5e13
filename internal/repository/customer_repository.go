package repository

import (
	"context"

	"github.com/dukkan-app/dukkan-api/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByName(ctx context.Context, name string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Archive(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Customer, int64, error)
	FindAll(ctx context.Context) ([]models.Customer, error)
	OutstandingDebt(ctx context.Context, customerID uint) (float64, error)
	OutstandingDebtAll(ctx context.Context) (map[uint]float64, error)
	FindDebtors(ctx context.Context) ([]models.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByName(ctx context.Context, name string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND status = ?", name, models.CustomerStatusActive).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Archive(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Update("status", models.CustomerStatusArchived).Error
}

func (r *customerRepository) List(ctx context.Context, query *ListQuery) ([]models.Customer, int64, error) {
	var customers []models.Customer
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Customer{})

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR phone ILIKE ?", search, search)
	}

	// Apply status filter; active only unless asked otherwise
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	} else {
		db = db.Where("status = ?", models.CustomerStatusActive)
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

	err := db.Find(&customers).Error
	return customers, total, err
}

func (r *customerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("status = ?", models.CustomerStatusActive).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

// OutstandingDebt sums the unpaid balance of a customer's open credits
func (r *customerRepository) OutstandingDebt(ctx context.Context, customerID uint) (float64, error) {
	var result struct {
		Debt float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Credit{}).
		Select("COALESCE(SUM(amount - amount_paid), 0) as debt").
		Where("customer_id = ? AND status <> ?", customerID, models.CreditStatusPaid).
		Scan(&result).Error

	return result.Debt, err
}

// OutstandingDebtAll returns the unpaid balance per customer in one query
func (r *customerRepository) OutstandingDebtAll(ctx context.Context) (map[uint]float64, error) {
	var rows []struct {
		CustomerID uint
		Debt       float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Credit{}).
		Select("customer_id, COALESCE(SUM(amount - amount_paid), 0) as debt").
		Where("status <> ?", models.CreditStatusPaid).
		Group("customer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	debts := make(map[uint]float64, len(rows))
	for _, row := range rows {
		debts[row.CustomerID] = row.Debt
	}
	return debts, nil
}

// FindDebtors returns active customers that have at least one open credit
func (r *customerRepository) FindDebtors(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Joins("JOIN credits ON credits.customer_id = customers.id AND credits.status <> ?", models.CreditStatusPaid).
		Where("customers.status = ?", models.CustomerStatusActive).
		Group("customers.id").
		Order("customers.name ASC").
		Find(&customers).Error
	return customers, err
}
