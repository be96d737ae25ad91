package repository

import (
	"context"
	"fmt"

	"animalist/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	GetByIDAndUser(ctx context.Context, id int64, userID string) (*models.Review, error)
	ExistsByUserAndTitle(ctx context.Context, userID string, titleID int64) (bool, error)
	GetByTitle(ctx context.Context, titleID int64, page, limit int) ([]models.Review, int64, error)
	GetByUser(ctx context.Context, userID string, page, limit int) ([]models.Review, int64, error)
	RecentByTitle(ctx context.Context, titleID int64, limit int) ([]models.Review, error)
	Aggregate(ctx context.Context, titleID int64) (float64, int64, error)
	Histogram(ctx context.Context, titleID int64) (map[int]int64, error)
	Latest(ctx context.Context, limit int) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByIDAndUser is the ownership check: a single SELECT keyed on both the
// review id and the acting user, so cross-user edits never match.
func (r *reviewRepository) GetByIDAndUser(ctx context.Context, id int64, userID string) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ExistsByUserAndTitle(ctx context.Context, userID string, titleID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND title_id = ?", userID, titleID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByTitle retrieves reviews for a title, newest first, reviewer preloaded.
func (r *reviewRepository) GetByTitle(ctx context.Context, titleID int64, page, limit int) ([]models.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("title_id = ?", titleID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// GetByUser retrieves a user's reviews, newest first, with the title summary
// and its genre list preloaded.
func (r *reviewRepository) GetByUser(ctx context.Context, userID string, page, limit int) ([]models.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Title").
		Preload("Title.Genres").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) RecentByTitle(ctx context.Context, titleID int64, limit int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Aggregate computes the fresh average and count over all reviews for the
// title. Zero average when no reviews remain.
func (r *reviewRepository) Aggregate(ctx context.Context, titleID int64) (float64, int64, error) {
	var agg struct {
		Average float64
		Total   int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as total").
		Where("title_id = ?", titleID).
		Scan(&agg).Error; err != nil {
		return 0, 0, err
	}

	return agg.Average, agg.Total, nil
}

// Histogram returns the review count at each rating value 1..5. Missing
// buckets are filled with zero.
func (r *reviewRepository) Histogram(ctx context.Context, titleID int64) (map[int]int64, error) {
	var buckets []struct {
		Rating int
		Count  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("rating, COUNT(*) as count").
		Where("title_id = ?", titleID).
		Group("rating").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}

	dist := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, b := range buckets {
		dist[b.Rating] = b.Count
	}
	return dist, nil
}

// Latest returns the newest reviews system-wide with reviewer and title joined.
func (r *reviewRepository) Latest(ctx context.Context, limit int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Title").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("latest reviews: %w", err)
	}
	return reviews, nil
}
