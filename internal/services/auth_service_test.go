package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dukkan-app/dukkan-api/internal/config"
	"github.com/dukkan-app/dukkan-api/internal/models"
	"github.com/dukkan-app/dukkan-api/internal/repository"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

type mockRTRepo struct {
	repository.RefreshTokenRepository
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	mockCreate      func(ctx context.Context, rt *models.RefreshToken) error
	mockDelete      func(ctx context.Context, token string) error
}

func (m *mockRTRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRTRepo) Create(ctx context.Context, rt *models.RefreshToken) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, rt)
	}
	return nil
}

func (m *mockRTRepo) Delete(ctx context.Context, token string) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, token)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 24,
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, nil, testConfig())

	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			Email:  email,
			Status: models.StatusInactive,
		}, nil
	}

	result, err := service.Login(context.Background(), "inactive@example.com", "password")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "account is inactive or suspended", err.Error())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	assert.NoError(t, err)

	mockRepo := &mockUserRepo{}
	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			Email:             email,
			Status:            models.StatusActive,
			EncryptedPassword: hash,
		}, nil
	}

	service := NewAuthService(mockRepo, nil, testConfig())

	result, err := service.Login(context.Background(), "user@example.com", "wrong-password")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)

	mockRepo := &mockUserRepo{}
	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			ID:                1,
			Email:             email,
			Role:              models.RoleAdmin,
			Status:            models.StatusActive,
			EncryptedPassword: hash,
		}, nil
	}

	service := NewAuthService(mockRepo, &mockRTRepo{}, testConfig())

	result, err := service.Login(context.Background(), "admin@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin@example.com", result.User.Email)
}

func TestAuthService_RefreshToken_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepo{}
	rtRepo := &mockRTRepo{}
	service := NewAuthService(mockRepo, rtRepo, testConfig())

	rtRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1}, nil
	}
	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{
			ID:     id,
			Status: models.StatusInactive,
		}, nil
	}

	result, err := service.RefreshToken(context.Background(), "token")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "account is inactive or suspended", err.Error())
}

func TestAuthService_RefreshToken_Expired(t *testing.T) {
	rtRepo := &mockRTRepo{}
	service := NewAuthService(nil, rtRepo, testConfig())

	expired := time.Now().Add(-time.Hour)
	rtRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1, ExpiresAt: &expired}, nil
	}

	deleted := false
	rtRepo.mockDelete = func(ctx context.Context, token string) error {
		deleted = true
		return nil
	}

	result, err := service.RefreshToken(context.Background(), "stale")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.True(t, deleted, "expired token should be removed")
}

func TestAuthService_RefreshToken_Rotation(t *testing.T) {
	hashUser := &models.User{ID: 1, Email: "user@example.com", Status: models.StatusActive}

	mockRepo := &mockUserRepo{}
	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return hashUser, nil
	}

	rtRepo := &mockRTRepo{}
	future := time.Now().Add(time.Hour)
	rtRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &future}, nil
	}

	var deletedToken string
	rtRepo.mockDelete = func(ctx context.Context, token string) error {
		deletedToken = token
		return nil
	}

	service := NewAuthService(mockRepo, rtRepo, testConfig())

	result, err := service.RefreshToken(context.Background(), "old-token")
	assert.NoError(t, err)
	assert.Equal(t, "old-token", deletedToken, "old refresh token is single-use")
	assert.NotEqual(t, "old-token", result.RefreshToken)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	assert.True(t, VerifyPassword("s3cret", hash))
	assert.False(t, VerifyPassword("other", hash))
}
