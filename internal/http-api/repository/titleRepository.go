package repository

import (
	"context"
	"fmt"
	"strings"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/models"

	"gorm.io/gorm"
)

// orderColumns is the allow-list for caller-controlled sorting. Anything not
// in here falls back to creation time; the column name is never interpolated
// from raw client input.
var orderColumns = map[string]string{
	"title":          "titles.title",
	"release_year":   "titles.release_year",
	"average_rating": "titles.average_rating",
	"review_count":   "titles.review_count",
	"created_at":     "titles.created_at",
}

type TitleRepository interface {
	List(ctx context.Context, f dto.TitleFilters, page, limit int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, t *models.Title, genreIDs []int64) error
	Update(ctx context.Context, t *models.Title, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
	UpdateAggregates(ctx context.Context, id int64, average float64, count int64) error
	Recent(ctx context.Context, limit int) ([]models.Title, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// applyFilters adds the optional predicates shared by the list and count
// queries. All values are bound parameters.
func (r *titleRepository) applyFilters(tx *gorm.DB, f dto.TitleFilters) *gorm.DB {
	if f.Search != "" {
		p := "%" + f.Search + "%"
		tx = tx.Where("(titles.title ILIKE ? OR COALESCE(titles.original_title,'') ILIKE ?)", p, p)
	}
	if f.GenreID > 0 {
		tx = tx.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Where("tg.genre_id = ?", f.GenreID)
	}
	if f.Status != "" {
		if strings.Contains(f.Status, ",") {
			statuses := strings.Split(f.Status, ",")
			for i := range statuses {
				statuses[i] = strings.TrimSpace(statuses[i])
			}
			tx = tx.Where("titles.status IN ?", statuses)
		} else {
			tx = tx.Where("titles.status = ?", f.Status)
		}
	}
	if f.MinYear > 0 {
		tx = tx.Where("titles.release_year >= ?", f.MinYear)
	}
	return tx
}

// orderClause resolves the caller-requested ordering against the allow-list.
func orderClause(f dto.TitleFilters) string {
	col, ok := orderColumns[f.OrderBy]
	if !ok {
		return "titles.created_at DESC"
	}
	dir := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// List returns one page of filtered titles plus the total count matched by
// the same predicate (the count ignores LIMIT/OFFSET by construction).
func (r *titleRepository) List(ctx context.Context, f dto.TitleFilters, page, limit int) ([]models.Title, int64, error) {
	var total int64
	countQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.Title{}), f)
	if err := countQuery.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	offset := (page - 1) * limit

	var list []models.Title
	listQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.Title{}), f)
	if err := listQuery.
		Preload("Genres").
		Order(orderClause(f)).
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}

	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).Preload("Genres").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Exists is the cheap existence probe used before review/list writes.
func (r *titleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the title and its genre links in one transaction.
func (r *titleRepository) Create(ctx context.Context, t *models.Title, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("create title: %w", err)
		}
		return linkGenres(tx, t.ID, genreIDs)
	})
}

// Update saves the title fields and replaces its genre links.
func (r *titleRepository) Update(ctx context.Context, t *models.Title, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres").Save(t).Error; err != nil {
			return fmt.Errorf("update title: %w", err)
		}
		if err := tx.Where("title_id = ?", t.ID).Delete(&models.TitleGenre{}).Error; err != nil {
			return fmt.Errorf("clear genre links: %w", err)
		}
		return linkGenres(tx, t.ID, genreIDs)
	})
}

func linkGenres(tx *gorm.DB, titleID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}
	links := make([]models.TitleGenre, 0, len(genreIDs))
	for _, id := range genreIDs {
		links = append(links, models.TitleGenre{TitleID: titleID, GenreID: id})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("link genres: %w", err)
	}
	return nil
}

// Delete removes the title; reviews, list entries and genre links cascade at
// the database level. Reports gorm.ErrRecordNotFound on zero affected rows.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateAggregates overwrites the denormalized rating fields. Unconditional
// overwrite: the caller always recomputes from the reviews table first.
func (r *titleRepository) UpdateAggregates(ctx context.Context, id int64, average float64, count int64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Title{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": average,
			"review_count":   count,
		}).Error; err != nil {
		return fmt.Errorf("update title aggregates: %w", err)
	}
	return nil
}

// Recent returns the newest titles with genres preloaded, for the admin view.
func (r *titleRepository) Recent(ctx context.Context, limit int) ([]models.Title, error) {
	var list []models.Title
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Order("created_at desc").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("recent titles: %w", err)
	}
	return list, nil
}
