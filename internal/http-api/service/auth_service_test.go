package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"animalist/internal/config"
	"animalist/internal/http-api/models"
	"animalist/internal/http-api/service"
	"animalist/internal/middleware/auth"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- MOCK REPOSITORY ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindActiveByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-key-that-is-long-enough!",
		JWTExpiry: time.Hour,
	}
}

// --- TESTS ---

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := service.NewAuthService(repo, testConfig())

		repo.On("FindByEmail", ctx, "new@example.com").Return(nil, errors.New("record not found")).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			u := args.Get(1).(*models.User)
			u.ID = "generated-id"
			// role defaults to user
			assert.Equal(t, int64(models.RoleUserID), int64(u.RoleID))
			assert.True(t, u.Active)
			// never store the plaintext
			assert.NotEqual(t, "secret1", u.Password)
		}).Return(nil).Once()
		repo.On("FindByID", ctx, "generated-id").Return(&models.User{
			ID:     "generated-id",
			Name:   "alice",
			Email:  "new@example.com",
			Active: true,
			Role:   models.Role{Name: "user"},
		}, nil).Once()

		token, user, err := svc.Register(ctx, "alice", "new@example.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "generated-id", user.ID)
		repo.AssertExpectations(t)
	})

	t.Run("EmailInUse", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := service.NewAuthService(repo, testConfig())

		repo.On("FindByEmail", ctx, "taken@example.com").Return(&models.User{ID: "existing"}, nil).Once()

		_, _, err := svc.Register(ctx, "bob", "taken@example.com", "secret1")
		assert.ErrorIs(t, err, service.ErrEmailInUse)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("ConcurrentDuplicate", func(t *testing.T) {
		// the email looked free at pre-check time but the insert hits the
		// unique index anyway
		repo := new(MockUserRepository)
		svc := service.NewAuthService(repo, testConfig())

		repo.On("FindByEmail", ctx, "racy@example.com").Return(nil, errors.New("record not found")).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*models.User")).
			Return(fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"})).Once()

		_, _, err := svc.Register(ctx, "carol", "racy@example.com", "secret1")
		assert.ErrorIs(t, err, service.ErrEmailInUse)
		repo.AssertNotCalled(t, "FindByID")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hashed, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	activeUser := &models.User{
		ID:       "uid-1",
		Email:    "alice@example.com",
		Password: hashed,
		Active:   true,
		Role:     models.Role{Name: "user"},
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := service.NewAuthService(repo, testConfig())
		repo.On("FindByEmail", ctx, "alice@example.com").Return(activeUser, nil).Once()

		token, user, err := svc.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "uid-1", user.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := service.NewAuthService(repo, testConfig())
		repo.On("FindByEmail", ctx, "alice@example.com").Return(activeUser, nil).Once()

		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := service.NewAuthService(repo, testConfig())
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, errors.New("record not found")).Once()

		_, _, err := svc.Login(ctx, "ghost@example.com", "secret1")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := service.NewAuthService(repo, testConfig())
		inactive := &models.User{ID: "uid-2", Email: "gone@example.com", Password: hashed, Active: false}
		repo.On("FindByEmail", ctx, "gone@example.com").Return(inactive, nil).Once()

		_, _, err := svc.Login(ctx, "gone@example.com", "secret1")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := service.NewAuthService(repo, testConfig())

	hashed, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	user := &models.User{ID: "uid-1", Email: "alice@example.com", Password: hashed, Active: true}
	repo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil).Once()

	token, _, err := svc.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("RoundTrip", func(t *testing.T) {
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "uid-1", claims.UserID)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := service.NewAuthService(repo, &config.Config{JWTSecret: "a-completely-different-secret-value", JWTExpiry: time.Hour})
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expiring := service.NewAuthService(repo, &config.Config{JWTSecret: "test-secret-key-that-is-long-enough!", JWTExpiry: -time.Minute})
		repo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		expiredToken, _, err := expiring.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)

		_, err = expiring.ValidateToken(expiredToken)
		assert.ErrorIs(t, err, service.ErrExpiredToken)
	})
}
