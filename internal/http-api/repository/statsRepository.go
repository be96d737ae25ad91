package repository

import (
	"context"
	"fmt"
	"time"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/models"

	"gorm.io/gorm"
)

type StatsRepository interface {
	CountTitles(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
	CountReviews(ctx context.Context) (int64, error)
	CountRecentComments(ctx context.Context) (int64, error)
	Growth(ctx context.Context) (dto.DashboardGrowth, error)
	TopTitles(ctx context.Context, limit int) ([]dto.TopTitle, error)
	TopReviewers(ctx context.Context, limit int) ([]dto.TopReviewer, error)
	GenreDistribution(ctx context.Context, limit int) ([]dto.GenreCount, error)
	RecentUsers(ctx context.Context, limit int) ([]dto.RecentUserResponse, error)
}

// statsRepository runs the fixed battery of dashboard aggregates. Each query
// is independent; the snapshot has no transactional guarantee across them.
type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountTitles(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Title{}).Count(&n).Error
	return n, err
}

func (r *statsRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("active = ?", true).Count(&n).Error
	return n, err
}

func (r *statsRepository) CountReviews(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Count(&n).Error
	return n, err
}

// CountRecentComments counts commented reviews created in the trailing week.
func (r *statsRepository) CountRecentComments(ctx context.Context) (int64, error) {
	var n int64
	since := time.Now().AddDate(0, 0, -7)
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("comment IS NOT NULL AND comment <> '' AND created_at >= ?", since).
		Count(&n).Error
	return n, err
}

// Growth returns rows created in the trailing 30 days for each entity.
func (r *statsRepository) Growth(ctx context.Context) (dto.DashboardGrowth, error) {
	var g dto.DashboardGrowth
	since := time.Now().AddDate(0, -1, 0)

	if err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Where("created_at >= ?", since).
		Count(&g.TitlesMonth).Error; err != nil {
		return g, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("created_at >= ? AND active = ?", since, true).
		Count(&g.UsersMonth).Error; err != nil {
		return g, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("created_at >= ?", since).
		Count(&g.ReviewsMonth).Error; err != nil {
		return g, err
	}
	return g, nil
}

// TopTitles returns the best rated titles among those with at least one
// review, tie-broken by review count.
func (r *statsRepository) TopTitles(ctx context.Context, limit int) ([]dto.TopTitle, error) {
	var rows []dto.TopTitle
	if err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Select("id, title, poster_url, average_rating, review_count").
		Where("review_count > 0").
		Order("average_rating DESC, review_count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("top titles: %w", err)
	}
	return rows, nil
}

// TopReviewers returns the most active users by review count.
func (r *statsRepository) TopReviewers(ctx context.Context, limit int) ([]dto.TopReviewer, error) {
	var rows []dto.TopReviewer
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(`users.name, users.email, users.created_at,
			(SELECT COUNT(*) FROM reviews r WHERE r.user_id = users.id) as review_count`).
		Where("users.active = ?", true).
		Order("review_count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("top reviewers: %w", err)
	}
	return rows, nil
}

// GenreDistribution counts linked titles per genre, busiest first.
func (r *statsRepository) GenreDistribution(ctx context.Context, limit int) ([]dto.GenreCount, error) {
	var rows []dto.GenreCount
	if err := r.db.WithContext(ctx).
		Model(&models.Genre{}).
		Select("genres.name, genres.color, COUNT(tg.title_id) as total").
		Joins("LEFT JOIN title_genres tg ON tg.genre_id = genres.id").
		Group("genres.id, genres.name, genres.color").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("genre distribution: %w", err)
	}
	return rows, nil
}

// RecentUsers returns the newest active users with their role name and
// per-user review/list counts joined in.
func (r *statsRepository) RecentUsers(ctx context.Context, limit int) ([]dto.RecentUserResponse, error) {
	var rows []dto.RecentUserResponse
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(`users.id, users.name, users.email, users.avatar_url, users.created_at,
			roles.name as role,
			(SELECT COUNT(*) FROM reviews r WHERE r.user_id = users.id) as review_count,
			(SELECT COUNT(*) FROM list_entries l WHERE l.user_id = users.id) as list_count`).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.active = ?", true).
		Order("users.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	return rows, nil
}
