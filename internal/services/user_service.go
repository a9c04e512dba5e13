package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
)

// UserService handles user-related business logic
type UserService struct {
	repo        repository.UserRepository
	activitySvc *ActivityService
	imageSvc    *ImageService
}

func NewUserService(repo repository.UserRepository, activitySvc *ActivityService, imageSvc *ImageService) *UserService {
	return &UserService{
		repo:        repo,
		activitySvc: activitySvc,
		imageSvc:    imageSvc,
	}
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *UserService) Create(ctx context.Context, user *models.User, password string, actorID uint) error {
	user.Email = strings.ToLower(user.Email)
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	if actorID != 0 {
		user.CreatedBy = &actorID
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionCreate, "User", user.ID,
		fmt.Sprintf("User created: %s (%s) - role %s", user.FullName, user.Email, user.Role), "")
}

func (s *UserService) Update(ctx context.Context, user *models.User, actorID uint) error {
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "User", user.ID,
		fmt.Sprintf("User updated: %s", user.Email), "")
}

func (s *UserService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionDelete, "User", id, "User deactivated", "")
}

func (s *UserService) Restore(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "User", id, "User restored", "")
}

func (s *UserService) ToggleStatus(ctx context.Context, id uint, actorID uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status == models.StatusActive {
		user.Status = models.StatusInactive
	} else {
		user.Status = models.StatusActive
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.activitySvc.Log(ctx, actorID, models.ActionUpdate, "User", id,
		fmt.Sprintf("Status changed to %s", user.Status), "")
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(currentPassword, user.EncryptedPassword) {
		return ErrInvalidPassword
	}
	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	return s.activitySvc.Log(ctx, userID, models.ActionUpdate, "User", userID, "Password changed", "")
}

// UpdateAvatar processes the uploaded image and stores its path on the user
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.imageSvc.ProcessAndSave(file, header)
	if err != nil {
		return nil, err
	}

	user.AvatarPath = &result.URL
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
