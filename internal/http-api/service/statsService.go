package service

import (
	"context"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/repository"
)

const (
	topTitleLimit     = 5
	topReviewerLimit  = 5
	genreStatLimit    = 8
	latestReviewLimit = 10
)

type StatsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	RecentTitles(ctx context.Context, limit int) ([]dto.TitleResponse, error)
	RecentUsers(ctx context.Context, limit int) ([]dto.RecentUserResponse, error)
}

type statsService struct {
	statsRepo  repository.StatsRepository
	titleRepo  repository.TitleRepository
	reviewRepo repository.ReviewRepository
}

func NewStatsService(statsRepo repository.StatsRepository, titleRepo repository.TitleRepository, reviewRepo repository.ReviewRepository) StatsService {
	return &statsService{
		statsRepo:  statsRepo,
		titleRepo:  titleRepo,
		reviewRepo: reviewRepo,
	}
}

// Dashboard assembles the admin snapshot from independently executed
// aggregate queries. Point-in-time best effort: slight skew between counts
// taken at slightly different instants is acceptable.
func (s *statsService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var resp dto.DashboardResponse
	var err error

	if resp.Totals.Titles, err = s.statsRepo.CountTitles(ctx); err != nil {
		return nil, err
	}
	if resp.Totals.ActiveUsers, err = s.statsRepo.CountActiveUsers(ctx); err != nil {
		return nil, err
	}
	if resp.Totals.Reviews, err = s.statsRepo.CountReviews(ctx); err != nil {
		return nil, err
	}
	if resp.Totals.RecentComments, err = s.statsRepo.CountRecentComments(ctx); err != nil {
		return nil, err
	}

	if resp.Growth, err = s.statsRepo.Growth(ctx); err != nil {
		return nil, err
	}

	if resp.TopTitles, err = s.statsRepo.TopTitles(ctx, topTitleLimit); err != nil {
		return nil, err
	}
	if resp.TopUsers, err = s.statsRepo.TopReviewers(ctx, topReviewerLimit); err != nil {
		return nil, err
	}
	if resp.GenreStats, err = s.statsRepo.GenreDistribution(ctx, genreStatLimit); err != nil {
		return nil, err
	}

	latest, err := s.reviewRepo.Latest(ctx, latestReviewLimit)
	if err != nil {
		return nil, err
	}
	resp.LatestReviews = make([]dto.ActivityReview, 0, len(latest))
	for _, r := range latest {
		resp.LatestReviews = append(resp.LatestReviews, dto.ActivityReview{
			ID:        r.ID,
			UserName:  r.User.Name,
			TitleName: r.Title.Title,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}

	return &resp, nil
}

func (s *statsService) RecentTitles(ctx context.Context, limit int) ([]dto.TitleResponse, error) {
	titles, err := s.titleRepo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TitleResponse, 0, len(titles))
	for _, t := range titles {
		items = append(items, dto.FromModelToTitleResponse(t))
	}
	return items, nil
}

func (s *statsService) RecentUsers(ctx context.Context, limit int) ([]dto.RecentUserResponse, error) {
	return s.statsRepo.RecentUsers(ctx, limit)
}
