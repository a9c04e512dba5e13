package repository

import (
	"context"
	"time"

	"github.com/dukkan-app/dukkan-api/internal/models"

	"gorm.io/gorm"
)

// ProfitRepository defines the interface for profit ledger data access
type ProfitRepository interface {
	FindByID(ctx context.Context, id uint) (*models.ProfitEntry, error)
	Create(ctx context.Context, entry *models.ProfitEntry) error
	Update(ctx context.Context, entry *models.ProfitEntry) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.ProfitEntry, int64, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]models.ProfitEntry, error)
	FindAll(ctx context.Context) ([]models.ProfitEntry, error)
}

type profitRepository struct {
	db *gorm.DB
}

// NewProfitRepository creates a new profit repository
func NewProfitRepository(db *gorm.DB) ProfitRepository {
	return &profitRepository{db: db}
}

func (r *profitRepository) FindByID(ctx context.Context, id uint) (*models.ProfitEntry, error) {
	var entry models.ProfitEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *profitRepository) Create(ctx context.Context, entry *models.ProfitEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *profitRepository) Update(ctx context.Context, entry *models.ProfitEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *profitRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProfitEntry{}, id).Error
}

func (r *profitRepository) List(ctx context.Context, query *ListQuery) ([]models.ProfitEntry, int64, error) {
	var entries []models.ProfitEntry
	var total int64

	db := r.db.WithContext(ctx).Model(&models.ProfitEntry{})

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("description ILIKE ?", search)
	}

	// Apply type filter
	if query.Filters["type"] != "" {
		db = db.Where("type = ?", query.Filters["type"])
	}

	// Apply source filter
	if query.Filters["source"] != "" {
		db = db.Where("source = ?", query.Filters["source"])
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
		db = db.Order("occurred_at DESC")
	}

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&entries).Error
	return entries, total, err
}

func (r *profitRepository) FindBetween(ctx context.Context, from, to time.Time) ([]models.ProfitEntry, error) {
	var entries []models.ProfitEntry
	err := r.db.WithContext(ctx).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Order("occurred_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *profitRepository) FindAll(ctx context.Context) ([]models.ProfitEntry, error) {
	var entries []models.ProfitEntry
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Find(&entries).Error
	return entries, err
}
