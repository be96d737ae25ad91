package service_test

import (
	"context"
	"testing"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/models"
	"animalist/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) Upsert(ctx context.Context, entry *models.ListEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockListRepository) Remove(ctx context.Context, userID string, titleID int64) error {
	args := m.Called(ctx, userID, titleID)
	return args.Error(0)
}

func (m *MockListRepository) ListForUser(ctx context.Context, userID, status string, page, limit int) ([]models.ListEntry, int64, error) {
	args := m.Called(ctx, userID, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.ListEntry), args.Get(1).(int64), args.Error(2)
}

func TestListService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		lists := new(MockListRepository)
		titles := new(MockTitleRepository)
		svc := service.NewListService(lists, titles)

		titles.On("Exists", ctx, int64(3)).Return(true, nil).Once()
		lists.On("Upsert", ctx, mock.AnythingOfType("*models.ListEntry")).Run(func(args mock.Arguments) {
			e := args.Get(1).(*models.ListEntry)
			assert.Equal(t, "uid-1", e.UserID)
			assert.Equal(t, int64(3), e.TitleID)
			assert.Equal(t, models.ListStatusWatching, e.Status)
		}).Return(nil).Once()

		err := svc.SetStatus(ctx, "uid-1", dto.SetStatusDTO{TitleID: 3, Status: models.ListStatusWatching})
		require.NoError(t, err)
		lists.AssertExpectations(t)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		lists := new(MockListRepository)
		titles := new(MockTitleRepository)
		svc := service.NewListService(lists, titles)

		err := svc.SetStatus(ctx, "uid-1", dto.SetStatusDTO{TitleID: 3, Status: "binging"})
		assert.ErrorIs(t, err, service.ErrInvalidListStatus)
		titles.AssertNotCalled(t, "Exists")
	})

	t.Run("TitleNotFound", func(t *testing.T) {
		lists := new(MockListRepository)
		titles := new(MockTitleRepository)
		svc := service.NewListService(lists, titles)

		titles.On("Exists", ctx, int64(99)).Return(false, nil).Once()

		err := svc.SetStatus(ctx, "uid-1", dto.SetStatusDTO{TitleID: 99, Status: models.ListStatusWatched})
		assert.ErrorIs(t, err, service.ErrTitleNotFound)
		lists.AssertNotCalled(t, "Upsert")
	})
}

func TestListService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		lists := new(MockListRepository)
		titles := new(MockTitleRepository)
		svc := service.NewListService(lists, titles)

		lists.On("Remove", ctx, "uid-1", int64(3)).Return(nil).Once()

		require.NoError(t, svc.Remove(ctx, "uid-1", 3))
		lists.AssertExpectations(t)
	})

	t.Run("NotOnList", func(t *testing.T) {
		lists := new(MockListRepository)
		titles := new(MockTitleRepository)
		svc := service.NewListService(lists, titles)

		lists.On("Remove", ctx, "uid-1", int64(3)).Return(gorm.ErrRecordNotFound).Once()

		err := svc.Remove(ctx, "uid-1", 3)
		assert.ErrorIs(t, err, service.ErrListEntryNotFound)
	})
}

func TestListService_ListForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidStatusFilter", func(t *testing.T) {
		lists := new(MockListRepository)
		titles := new(MockTitleRepository)
		svc := service.NewListService(lists, titles)

		_, err := svc.ListForUser(ctx, "uid-1", "binging", 1, 20)
		assert.ErrorIs(t, err, service.ErrInvalidListStatus)
		lists.AssertNotCalled(t, "ListForUser")
	})

	t.Run("Paginates", func(t *testing.T) {
		lists := new(MockListRepository)
		titles := new(MockTitleRepository)
		svc := service.NewListService(lists, titles)

		entries := []models.ListEntry{
			{UserID: "uid-1", TitleID: 3, Status: models.ListStatusWatched, Title: &models.Title{ID: 3, Title: "Stellar Drift"}},
		}
		lists.On("ListForUser", ctx, "uid-1", "", 2, 10).Return(entries, int64(11), nil).Once()

		resp, err := svc.ListForUser(ctx, "uid-1", "", 2, 10)
		require.NoError(t, err)
		assert.Len(t, resp.List, 1)
		assert.Equal(t, int64(11), resp.Pagination.Total)
		assert.Equal(t, 2, resp.Pagination.Pages)
	})
}
