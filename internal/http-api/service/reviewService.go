package service

import (
	"context"
	"errors"
	"log/slog"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/models"
	"animalist/internal/http-api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, userID string, d dto.CreateReviewDTO) (*models.Review, error)
	Update(ctx context.Context, reviewID int64, userID string, d dto.UpdateReviewDTO) error
	Delete(ctx context.Context, reviewID int64, userID string) error
	ListByTitle(ctx context.Context, titleID int64, page, limit int) (*dto.PaginatedReviewResponse, error)
	ListByUser(ctx context.Context, userID string, page, limit int) (*dto.PaginatedUserReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	logger     *slog.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, logger *slog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		logger:     logger,
	}
}

// Create inserts a review and synchronously refreshes the title's aggregate
// fields before returning. One review per (user, title): an existence check
// up front, with the unique constraint catching concurrent duplicates.
func (s *reviewService) Create(ctx context.Context, userID string, d dto.CreateReviewDTO) (*models.Review, error) {
	exists, err := s.titleRepo.Exists(ctx, d.TitleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTitleNotFound
	}

	already, err := s.reviewRepo.ExistsByUserAndTitle(ctx, userID, d.TitleID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrDuplicateReview
	}

	review := &models.Review{
		UserID:  userID,
		TitleID: d.TitleID,
		Rating:  d.Rating,
		Comment: d.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	s.refreshAggregates(ctx, d.TitleID)
	return review, nil
}

// Update modifies the caller's own review and refreshes the title aggregate.
func (s *reviewService) Update(ctx context.Context, reviewID int64, userID string, d dto.UpdateReviewDTO) error {
	review, err := s.reviewRepo.GetByIDAndUser(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	review.Rating = d.Rating
	review.Comment = d.Comment

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return err
	}

	s.refreshAggregates(ctx, review.TitleID)
	return nil
}

// Delete removes the caller's own review and refreshes the title aggregate.
func (s *reviewService) Delete(ctx context.Context, reviewID int64, userID string) error {
	review, err := s.reviewRepo.GetByIDAndUser(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	s.refreshAggregates(ctx, review.TitleID)
	return nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, limit int) (*dto.PaginatedReviewResponse, error) {
	exists, err := s.titleRepo.Exists(ctx, titleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTitleNotFound
	}

	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.FromModelToReviewResponse(&reviews[i]))
	}

	return &dto.PaginatedReviewResponse{
		Reviews:    items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID string, page, limit int) (*dto.PaginatedUserReviewResponse, error) {
	reviews, total, err := s.reviewRepo.GetByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.FromModelToUserReviewResponse(&reviews[i]))
	}

	return &dto.PaginatedUserReviewResponse{
		Reviews:    items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// refreshAggregates recomputes AVG/COUNT over the title's reviews and writes
// them back. Runs synchronously inside the mutating request. A failure here
// is logged but does not fail the review write that already committed; the
// next mutation recomputes from scratch anyway.
func (s *reviewService) refreshAggregates(ctx context.Context, titleID int64) {
	average, count, err := s.reviewRepo.Aggregate(ctx, titleID)
	if err != nil {
		s.logger.Error("recompute title rating failed", "title_id", titleID, "error", err)
		return
	}

	if err := s.titleRepo.UpdateAggregates(ctx, titleID, average, count); err != nil {
		s.logger.Error("persist title rating failed", "title_id", titleID, "error", err)
	}
}
