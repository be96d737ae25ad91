package service

import (
	"context"
	"errors"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/models"
	"animalist/internal/http-api/repository"

	"gorm.io/gorm"
)

type ListService interface {
	SetStatus(ctx context.Context, userID string, d dto.SetStatusDTO) error
	Remove(ctx context.Context, userID string, titleID int64) error
	ListForUser(ctx context.Context, userID, statusFilter string, page, limit int) (*dto.PaginatedListResponse, error)
}

type listService struct {
	repo      repository.ListRepository
	titleRepo repository.TitleRepository
}

func NewListService(repo repository.ListRepository, titleRepo repository.TitleRepository) ListService {
	return &listService{
		repo:      repo,
		titleRepo: titleRepo,
	}
}

// SetStatus upserts the (user, title) row: re-adding an existing pair
// overwrites the status instead of erroring.
func (s *listService) SetStatus(ctx context.Context, userID string, d dto.SetStatusDTO) error {
	// binding already constrains this, but the service is callable directly
	if !models.ValidListStatus(d.Status) {
		return ErrInvalidListStatus
	}

	exists, err := s.titleRepo.Exists(ctx, d.TitleID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTitleNotFound
	}

	entry := &models.ListEntry{
		UserID:  userID,
		TitleID: d.TitleID,
		Status:  d.Status,
	}
	return s.repo.Upsert(ctx, entry)
}

func (s *listService) Remove(ctx context.Context, userID string, titleID int64) error {
	if err := s.repo.Remove(ctx, userID, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListEntryNotFound
		}
		return err
	}
	return nil
}

func (s *listService) ListForUser(ctx context.Context, userID, statusFilter string, page, limit int) (*dto.PaginatedListResponse, error) {
	if statusFilter != "" && !models.ValidListStatus(statusFilter) {
		return nil, ErrInvalidListStatus
	}

	entries, total, err := s.repo.ListForUser(ctx, userID, statusFilter, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ListEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.FromModelToListEntryResponse(&entries[i]))
	}

	return &dto.PaginatedListResponse{
		List:       items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}
