package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/models"
	"animalist/internal/http-api/repository"

	"gorm.io/gorm"
)

const recentReviewLimit = 5

type TitleService interface {
	List(ctx context.Context, filters dto.TitleFilters, page, limit int) (*dto.PaginatedTitleResponse, error)
	GetDetail(ctx context.Context, id int64) (*dto.TitleDetailResponse, error)
	Create(ctx context.Context, d dto.CreateTitleDTO) (*models.Title, error)
	Update(ctx context.Context, id int64, d dto.CreateTitleDTO) error
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	repo       repository.TitleRepository
	genreRepo  repository.GenreRepository
	reviewRepo repository.ReviewRepository
}

func NewTitleService(repo repository.TitleRepository, genreRepo repository.GenreRepository, reviewRepo repository.ReviewRepository) TitleService {
	return &titleService{
		repo:       repo,
		genreRepo:  genreRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *titleService) List(ctx context.Context, filters dto.TitleFilters, page, limit int) (*dto.PaginatedTitleResponse, error) {
	titles, total, err := s.repo.List(ctx, filters, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TitleResponse, 0, len(titles))
	for _, t := range titles {
		items = append(items, dto.FromModelToTitleResponse(t))
	}

	return &dto.PaginatedTitleResponse{
		Titles:     items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// GetDetail assembles the title, its genres, the five most recent reviews
// and the rating histogram into one response.
func (s *titleService) GetDetail(ctx context.Context, id int64) (*dto.TitleDetailResponse, error) {
	title, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	recent, err := s.reviewRepo.RecentByTitle(ctx, id, recentReviewLimit)
	if err != nil {
		return nil, err
	}

	dist, err := s.reviewRepo.Histogram(ctx, id)
	if err != nil {
		return nil, err
	}

	average, total, err := s.reviewRepo.Aggregate(ctx, id)
	if err != nil {
		return nil, err
	}

	genres := make([]dto.GenreInfo, 0, len(title.Genres))
	for _, g := range title.Genres {
		genres = append(genres, dto.FromModelToGenreInfo(g))
	}

	reviews := make([]dto.ReviewResponse, 0, len(recent))
	for i := range recent {
		reviews = append(reviews, dto.FromModelToReviewResponse(&recent[i]))
	}

	return &dto.TitleDetailResponse{
		TitleResponse: dto.FromModelToTitleResponse(*title),
		Genres:        genres,
		RecentReviews: reviews,
		TotalReviews:  total,
		RatingAverage: fmt.Sprintf("%.1f", average),
		Stats:         dto.RatingHistogram{Distribution: dist},
	}, nil
}

func (s *titleService) Create(ctx context.Context, d dto.CreateTitleDTO) (*models.Title, error) {
	genreIDs := uniqueGenreIDs(d.Genres)
	if err := s.checkGenres(ctx, genreIDs); err != nil {
		return nil, err
	}

	title := d.ToModel()
	title.Title = strings.TrimSpace(title.Title)

	if err := s.repo.Create(ctx, &title, genreIDs); err != nil {
		return nil, err
	}
	return &title, nil
}

// Update overwrites the title fields and replaces its genre links.
func (s *titleService) Update(ctx context.Context, id int64, d dto.CreateTitleDTO) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}

	genreIDs := uniqueGenreIDs(d.Genres)
	if err := s.checkGenres(ctx, genreIDs); err != nil {
		return err
	}

	updated := d.ToModel()
	updated.ID = existing.ID
	updated.Title = strings.TrimSpace(updated.Title)
	updated.AverageRating = existing.AverageRating
	updated.ReviewCount = existing.ReviewCount
	updated.CreatedAt = existing.CreatedAt

	return s.repo.Update(ctx, &updated, genreIDs)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

// uniqueGenreIDs drops repeated ids while keeping first-seen order, so a
// payload like [1,1] counts as one genre and links once.
func uniqueGenreIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// checkGenres rejects payloads referencing genre ids that do not exist. The
// at-least-one-genre rule itself lives in the binding layer; ids must already
// be de-duplicated for the count comparison to hold.
func (s *titleService) checkGenres(ctx context.Context, genreIDs []int64) error {
	count, err := s.genreRepo.CountExisting(ctx, genreIDs)
	if err != nil {
		return err
	}
	if count != int64(len(genreIDs)) {
		return ErrGenreNotFound
	}
	return nil
}
