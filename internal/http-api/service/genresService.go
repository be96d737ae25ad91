package service

import (
	"context"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/models"
	"animalist/internal/http-api/repository"
)

type GenreService interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	Create(ctx context.Context, d dto.CreateGenreDTO) (*models.Genre, error)
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) GetAll(ctx context.Context) ([]models.Genre, error) {
	return s.repo.GetAll(ctx)
}

func (s *genreService) Create(ctx context.Context, d dto.CreateGenreDTO) (*models.Genre, error) {
	genre := d.ToModel()
	if err := s.repo.Create(ctx, &genre); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateGenre
		}
		return nil, err
	}
	return &genre, nil
}
