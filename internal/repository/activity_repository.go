package repository

import (
	"context"
	"time"

	"github.com/dukkan-app/dukkan-api/internal/models"

	"gorm.io/gorm"
)

// ActivityRepository defines the interface for activity log data access
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	List(ctx context.Context, query *ListQuery) ([]models.Activity, int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) List(ctx context.Context, query *ListQuery) ([]models.Activity, int64, error) {
	var activities []models.Activity
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Activity{})

	// Apply entity filter
	if query.Filters["entity"] != "" {
		db = db.Where("entity = ?", query.Filters["entity"])
	}

	// Apply action filter
	if query.Filters["action"] != "" {
		db = db.Where("action = ?", query.Filters["action"])
	}

	// Apply user filter
	if query.Filters["user_id"] != "" {
		db = db.Where("user_id = ?", query.Filters["user_id"])
	}

	// Count total
	db.Count(&total)

	db = db.Preload("User").Order("created_at DESC")

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&activities).Error
	return activities, total, err
}

// DeleteOlderThan trims aged activity rows, returning the count removed
func (r *activityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.Activity{})
	return result.RowsAffected, result.Error
}
