package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/models"
	"animalist/internal/http-api/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- MOCK REPOSITORIES ---

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByIDAndUser(ctx context.Context, id int64, userID string) (*models.Review, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsByUserAndTitle(ctx context.Context, userID string, titleID int64) (bool, error) {
	args := m.Called(ctx, userID, titleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetByTitle(ctx context.Context, titleID int64, page, limit int) ([]models.Review, int64, error) {
	args := m.Called(ctx, titleID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) GetByUser(ctx context.Context, userID string, page, limit int) ([]models.Review, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) RecentByTitle(ctx context.Context, titleID int64, limit int) ([]models.Review, error) {
	args := m.Called(ctx, titleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) Aggregate(ctx context.Context, titleID int64) (float64, int64, error) {
	args := m.Called(ctx, titleID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Histogram(ctx context.Context, titleID int64) (map[int]int64, error) {
	args := m.Called(ctx, titleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int64), args.Error(1)
}

func (m *MockReviewRepository) Latest(ctx context.Context, limit int) ([]models.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) List(ctx context.Context, f dto.TitleFilters, page, limit int) ([]models.Title, int64, error) {
	args := m.Called(ctx, f, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTitleRepository) Create(ctx context.Context, t *models.Title, genreIDs []int64) error {
	args := m.Called(ctx, t, genreIDs)
	return args.Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, t *models.Title, genreIDs []int64) error {
	args := m.Called(ctx, t, genreIDs)
	return args.Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTitleRepository) UpdateAggregates(ctx context.Context, id int64, average float64, count int64) error {
	args := m.Called(ctx, id, average, count)
	return args.Error(0)
}

func (m *MockTitleRepository) Recent(ctx context.Context, limit int) ([]models.Title, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Title), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- TESTS ---

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	comment := "great pacing"
	input := dto.CreateReviewDTO{TitleID: 7, Rating: 4, Comment: &comment}

	t.Run("RecomputesAggregatesAfterInsert", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		titles.On("Exists", ctx, int64(7)).Return(true, nil).Once()
		reviews.On("ExistsByUserAndTitle", ctx, "uid-1", int64(7)).Return(false, nil).Once()
		reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Run(func(args mock.Arguments) {
			r := args.Get(1).(*models.Review)
			assert.Equal(t, "uid-1", r.UserID)
			assert.Equal(t, int64(7), r.TitleID)
			assert.Equal(t, 4, r.Rating)
		}).Return(nil).Once()
		reviews.On("Aggregate", ctx, int64(7)).Return(4.5, int64(2), nil).Once()
		titles.On("UpdateAggregates", ctx, int64(7), 4.5, int64(2)).Return(nil).Once()

		review, err := svc.Create(ctx, "uid-1", input)
		require.NoError(t, err)
		assert.Equal(t, int64(7), review.TitleID)
		reviews.AssertExpectations(t)
		titles.AssertExpectations(t)
	})

	t.Run("TitleNotFound", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		titles.On("Exists", ctx, int64(7)).Return(false, nil).Once()

		_, err := svc.Create(ctx, "uid-1", input)
		assert.ErrorIs(t, err, service.ErrTitleNotFound)
		reviews.AssertNotCalled(t, "Create")
	})

	t.Run("AlreadyReviewed", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		titles.On("Exists", ctx, int64(7)).Return(true, nil).Once()
		reviews.On("ExistsByUserAndTitle", ctx, "uid-1", int64(7)).Return(true, nil).Once()

		_, err := svc.Create(ctx, "uid-1", input)
		assert.ErrorIs(t, err, service.ErrDuplicateReview)
		reviews.AssertNotCalled(t, "Create")
	})

	t.Run("ConcurrentDuplicate", func(t *testing.T) {
		// the pre-check saw no row but the unique index fires on insert
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		titles.On("Exists", ctx, int64(7)).Return(true, nil).Once()
		reviews.On("ExistsByUserAndTitle", ctx, "uid-1", int64(7)).Return(false, nil).Once()
		reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).
			Return(fmt.Errorf("create review: %w", &pgconn.PgError{Code: "23505"})).Once()

		_, err := svc.Create(ctx, "uid-1", input)
		assert.ErrorIs(t, err, service.ErrDuplicateReview)
		reviews.AssertNotCalled(t, "Aggregate")
	})

	t.Run("RecomputeFailureDoesNotFailCreate", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		titles.On("Exists", ctx, int64(7)).Return(true, nil).Once()
		reviews.On("ExistsByUserAndTitle", ctx, "uid-1", int64(7)).Return(false, nil).Once()
		reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil).Once()
		reviews.On("Aggregate", ctx, int64(7)).Return(0.0, int64(0), fmt.Errorf("connection reset")).Once()

		review, err := svc.Create(ctx, "uid-1", input)
		require.NoError(t, err)
		assert.NotNil(t, review)
		titles.AssertNotCalled(t, "UpdateAggregates")
	})

	t.Run("PersistFailureDoesNotFailCreate", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		titles.On("Exists", ctx, int64(7)).Return(true, nil).Once()
		reviews.On("ExistsByUserAndTitle", ctx, "uid-1", int64(7)).Return(false, nil).Once()
		reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil).Once()
		reviews.On("Aggregate", ctx, int64(7)).Return(4.0, int64(1), nil).Once()
		titles.On("UpdateAggregates", ctx, int64(7), 4.0, int64(1)).Return(fmt.Errorf("connection reset")).Once()

		_, err := svc.Create(ctx, "uid-1", input)
		require.NoError(t, err)
		titles.AssertExpectations(t)
	})
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("RecomputesAggregates", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		existing := &models.Review{ID: 11, UserID: "uid-1", TitleID: 7, Rating: 2}
		reviews.On("GetByIDAndUser", ctx, int64(11), "uid-1").Return(existing, nil).Once()
		reviews.On("Update", ctx, existing).Return(nil).Once()
		reviews.On("Aggregate", ctx, int64(7)).Return(3.5, int64(4), nil).Once()
		titles.On("UpdateAggregates", ctx, int64(7), 3.5, int64(4)).Return(nil).Once()

		err := svc.Update(ctx, 11, "uid-1", dto.UpdateReviewDTO{Rating: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, existing.Rating)
		titles.AssertExpectations(t)
	})

	t.Run("NotOwnReview", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		reviews.On("GetByIDAndUser", ctx, int64(11), "uid-2").Return(nil, gorm.ErrRecordNotFound).Once()

		err := svc.Update(ctx, 11, "uid-2", dto.UpdateReviewDTO{Rating: 5})
		assert.ErrorIs(t, err, service.ErrReviewNotFound)
		reviews.AssertNotCalled(t, "Update")
	})
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("RecomputesAggregates", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		existing := &models.Review{ID: 11, UserID: "uid-1", TitleID: 7, Rating: 2}
		reviews.On("GetByIDAndUser", ctx, int64(11), "uid-1").Return(existing, nil).Once()
		reviews.On("Delete", ctx, int64(11)).Return(nil).Once()
		reviews.On("Aggregate", ctx, int64(7)).Return(0.0, int64(0), nil).Once()
		titles.On("UpdateAggregates", ctx, int64(7), 0.0, int64(0)).Return(nil).Once()

		err := svc.Delete(ctx, 11, "uid-1")
		require.NoError(t, err)
		titles.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		reviews := new(MockReviewRepository)
		titles := new(MockTitleRepository)
		svc := service.NewReviewService(reviews, titles, discardLogger())

		reviews.On("GetByIDAndUser", ctx, int64(99), "uid-1").Return(nil, gorm.ErrRecordNotFound).Once()

		err := svc.Delete(ctx, 99, "uid-1")
		assert.ErrorIs(t, err, service.ErrReviewNotFound)
	})
}
