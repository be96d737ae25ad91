package dto

import (
	"time"

	"animalist/internal/http-api/models"
)

// SetStatusDTO for POST /list (upsert semantics)
type SetStatusDTO struct {
	TitleID int64  `json:"title_id" binding:"required,gt=0"`
	Status  string `json:"status" binding:"required,oneof=watched want_to_watch watching paused dropped"`
}

// ListEntryResponse joins the title summary onto the list row. The title's
// own lifecycle status is aliased apart from the list status.
type ListEntryResponse struct {
	TitleID       int64     `json:"title_id"`
	TitleName     string    `json:"title"`
	PosterURL     *string   `json:"poster_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	ReleaseYear   *int      `json:"release_year,omitempty"`
	Episodes      int       `json:"episodes"`
	TitleStatus   string    `json:"title_status"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromModelToListEntryResponse converts a ListEntry with Title preloaded
func FromModelToListEntryResponse(e *models.ListEntry) ListEntryResponse {
	resp := ListEntryResponse{
		TitleID:   e.TitleID,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Title != nil {
		resp.TitleName = e.Title.Title
		resp.PosterURL = e.Title.PosterURL
		resp.AverageRating = e.Title.AverageRating
		resp.ReviewCount = e.Title.ReviewCount
		resp.ReleaseYear = e.Title.ReleaseYear
		resp.Episodes = e.Title.Episodes
		resp.TitleStatus = e.Title.Status
	}
	return resp
}

// PaginatedListResponse for GET /list/mine
type PaginatedListResponse struct {
	List       []ListEntryResponse `json:"list"`
	Pagination Pagination          `json:"pagination"`
}
