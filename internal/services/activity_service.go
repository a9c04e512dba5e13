package services

import (
	"context"
	"time"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
)

// ActivityService records and lists dashboard activity
type ActivityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Log records an activity entry. A zero actorID or entityID is stored
// as NULL, which marks system-generated entries.
func (s *ActivityService) Log(ctx context.Context, actorID uint, action, entity string, entityID uint, details, ip string) error {
	entry := &models.Activity{
		Action:    action,
		Entity:    entity,
		Details:   details,
		IPAddress: ip,
	}
	if actorID != 0 {
		entry.UserID = &actorID
	}
	if entityID != 0 {
		entry.EntityID = &entityID
	}
	return s.activityRepo.Create(ctx, entry)
}

// List retrieves activity entries with filters and pagination
func (s *ActivityService) List(ctx context.Context, query *repository.ListQuery) ([]models.Activity, int64, error) {
	return s.activityRepo.List(ctx, query)
}

// Trim deletes activity entries older than the cutoff and returns the
// number of rows removed.
func (s *ActivityService) Trim(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.activityRepo.DeleteOlderThan(ctx, cutoff)
}
