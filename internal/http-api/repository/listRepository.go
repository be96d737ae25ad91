package repository

import (
	"context"
	"fmt"

	"animalist/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListRepository interface {
	Upsert(ctx context.Context, entry *models.ListEntry) error
	Remove(ctx context.Context, userID string, titleID int64) error
	ListForUser(ctx context.Context, userID, status string, page, limit int) ([]models.ListEntry, int64, error)
}

type listRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

// Upsert sets the status for (user, title) atomically: a single
// INSERT ... ON CONFLICT DO UPDATE keyed on the unique pair, never a
// read-then-write. Two concurrent calls leave exactly one row behind.
func (r *listRepository) Upsert(ctx context.Context, entry *models.ListEntry) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "title_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(entry).Error; err != nil {
		return fmt.Errorf("upsert list entry: %w", err)
	}
	return nil
}

func (r *listRepository) Remove(ctx context.Context, userID string, titleID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND title_id = ?", userID, titleID).
		Delete(&models.ListEntry{})

	if result.Error != nil {
		return fmt.Errorf("remove list entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForUser returns the user's entries with the title summary preloaded,
// optionally filtered by list status, ordered by entry update time.
func (r *listRepository) ListForUser(ctx context.Context, userID, status string, page, limit int) ([]models.ListEntry, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.ListEntry{}).Where("user_id = ?", userID)
	if status != "" {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count list entries: %w", err)
	}

	var entries []models.ListEntry
	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.
		Preload("Title").
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}

	return entries, total, nil
}
