package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"handson/internal/auth"
	"handson/internal/model"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("successful registration hashes the password", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByEmail", mock.Anything, "maya@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 1
		}).Return(nil)

		svc := NewAuthService(mockUserRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		user, err := svc.Register(context.Background(), RegisterInput{
			Name:     "Maya",
			Email:    "maya@example.com",
			Password: "password123",
			Skills:   model.StringList{"first aid"},
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByEmail", mock.Anything, "maya@example.com").Return(&model.User{ID: 1, Email: "maya@example.com"}, nil)

		svc := NewAuthService(mockUserRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		user, err := svc.Register(context.Background(), RegisterInput{Email: "maya@example.com", Password: "x"})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.Nil(t, user)
	})

	t.Run("unique index backstop on concurrent registration", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByEmail", mock.Anything, "maya@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

		svc := NewAuthService(mockUserRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		_, err := svc.Register(context.Background(), RegisterInput{Email: "maya@example.com", Password: "x"})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	storedUser := &model.User{ID: 1, Email: "maya@example.com", PasswordHash: string(hashed)}

	t.Run("successful login issues both tokens", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByEmail", mock.Anything, "maya@example.com").Return(storedUser, nil)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "maya@example.com", auth.RefreshTokenExpiry).Return(nil)

		jwtService := auth.NewJWTService("test-secret")
		svc := NewAuthService(mockUserRepo, jwtService, mockTokenStore)
		accessToken, refreshToken, user, err := svc.Login(context.Background(), "maya@example.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, uint(1), user.ID)

		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByEmail", mock.Anything, "maya@example.com").Return(storedUser, nil)

		svc := NewAuthService(mockUserRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		_, _, _, err := svc.Login(context.Background(), "maya@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(mockUserRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "maya@example.com")
	assert.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "maya@example.com", nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", assert.AnError)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		_, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "maya@example.com")
	assert.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	mockTokenStore.AssertExpectations(t)
}
