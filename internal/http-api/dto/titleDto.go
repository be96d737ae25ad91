package dto

import (
	"time"

	"animalist/internal/http-api/models"
)

// CreateTitleDTO used for POST /titles. At least one genre id is required;
// the link table itself does not enforce this, only the input boundary does.
type CreateTitleDTO struct {
	Title         string  `json:"title" binding:"required,min=1,max=255"`
	OriginalTitle *string `json:"original_title,omitempty" binding:"omitempty,max=255"`
	Synopsis      *string `json:"synopsis,omitempty"`
	PosterURL     *string `json:"poster_url,omitempty" binding:"omitempty,url"`
	BannerURL     *string `json:"banner_url,omitempty" binding:"omitempty,url"`
	ReleaseYear   *int    `json:"release_year,omitempty" binding:"omitempty,gte=1900,lte=2100"`
	Episodes      *int    `json:"episodes,omitempty" binding:"omitempty,gte=1"`
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=airing finished cancelled announced"`
	Studio        *string `json:"studio,omitempty" binding:"omitempty,max=100"`
	Director      *string `json:"director,omitempty" binding:"omitempty,max=100"`
	Genres        []int64 `json:"genres" binding:"required,min=1,dive,gt=0"`
}

// ToModel applies the defaults the API contract documents: one episode and
// "finished" status when the client omits them.
func (d CreateTitleDTO) ToModel() models.Title {
	t := models.Title{
		Title:         d.Title,
		OriginalTitle: d.OriginalTitle,
		Synopsis:      d.Synopsis,
		PosterURL:     d.PosterURL,
		BannerURL:     d.BannerURL,
		ReleaseYear:   d.ReleaseYear,
		Episodes:      1,
		Status:        models.StatusFinished,
		Studio:        d.Studio,
		Director:      d.Director,
	}
	if d.Episodes != nil {
		t.Episodes = *d.Episodes
	}
	if d.Status != nil && *d.Status != "" {
		t.Status = *d.Status
	}
	return t
}

// TitleFilters carries the optional, AND-combined catalog filters.
type TitleFilters struct {
	Search  string // substring on title OR original_title, case-insensitive
	GenreID int64  // 0 means no genre filter
	Status  string // single value or comma-separated list
	MinYear int    // 0 means no minimum
	OrderBy string // must pass the column allow-list
	Order   string // asc or desc
}

// TitleResponse DTO for catalog list rows
type TitleResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	OriginalTitle *string   `json:"original_title,omitempty"`
	Synopsis      *string   `json:"synopsis,omitempty"`
	PosterURL     *string   `json:"poster_url,omitempty"`
	BannerURL     *string   `json:"banner_url,omitempty"`
	ReleaseYear   *int      `json:"release_year,omitempty"`
	Episodes      int       `json:"episodes"`
	Status        string    `json:"status"`
	Studio        *string   `json:"studio,omitempty"`
	Director      *string   `json:"director,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	GenreIDs      []int64   `json:"genre_ids"`
	GenreNames    []string  `json:"genres"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromModelToTitleResponse(t models.Title) TitleResponse {
	genreIDs := make([]int64, 0, len(t.Genres))
	genreNames := make([]string, 0, len(t.Genres))
	for _, g := range t.Genres {
		genreIDs = append(genreIDs, g.ID)
		genreNames = append(genreNames, g.Name)
	}

	return TitleResponse{
		ID:            t.ID,
		Title:         t.Title,
		OriginalTitle: t.OriginalTitle,
		Synopsis:      t.Synopsis,
		PosterURL:     t.PosterURL,
		BannerURL:     t.BannerURL,
		ReleaseYear:   t.ReleaseYear,
		Episodes:      t.Episodes,
		Status:        t.Status,
		Studio:        t.Studio,
		Director:      t.Director,
		AverageRating: t.AverageRating,
		ReviewCount:   t.ReviewCount,
		GenreIDs:      genreIDs,
		GenreNames:    genreNames,
		CreatedAt:     t.CreatedAt,
	}
}

// PaginatedTitleResponse for GET /titles
type PaginatedTitleResponse struct {
	Titles     []TitleResponse `json:"titles"`
	Pagination Pagination      `json:"pagination"`
}

// RatingHistogram holds per-rating review counts for a title.
type RatingHistogram struct {
	Distribution map[int]int64 `json:"distribution"`
}

// TitleDetailResponse for GET /titles/:id
type TitleDetailResponse struct {
	TitleResponse
	Genres        []GenreInfo      `json:"genre_details"`
	RecentReviews []ReviewResponse `json:"recent_reviews"`
	TotalReviews  int64            `json:"total_reviews"`
	RatingAverage string           `json:"rating_average"` // one decimal place
	Stats         RatingHistogram  `json:"stats"`
}
