package dto

import (
	"time"

	"animalist/internal/http-api/models"
)

// CreateReviewDTO for POST /reviews
type CreateReviewDTO struct {
	TitleID int64   `json:"title_id" binding:"required,gt=0"`
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=1000"`
}

// UpdateReviewDTO for PUT /reviews/:id
type UpdateReviewDTO struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=1000"`
}

// ReviewResponse for reviews listed under a title (reviewer joined in)
type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"user_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model with a preloaded User
func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserName:  r.User.Name,
		AvatarURL: r.User.AvatarURL,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// UserReviewResponse for GET /reviews/mine (title summary joined in)
type UserReviewResponse struct {
	ID            int64     `json:"id"`
	TitleID       int64     `json:"title_id"`
	TitleName     string    `json:"title"`
	PosterURL     *string   `json:"poster_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	Genres        []string  `json:"genres"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromModelToUserReviewResponse converts a Review with Title and its Genres preloaded
func FromModelToUserReviewResponse(r *models.Review) UserReviewResponse {
	genres := make([]string, 0, len(r.Title.Genres))
	for _, g := range r.Title.Genres {
		genres = append(genres, g.Name)
	}

	return UserReviewResponse{
		ID:            r.ID,
		TitleID:       r.TitleID,
		TitleName:     r.Title.Title,
		PosterURL:     r.Title.PosterURL,
		AverageRating: r.Title.AverageRating,
		ReviewCount:   r.Title.ReviewCount,
		Genres:        genres,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// PaginatedReviewResponse for GET /reviews/title/:titleId
type PaginatedReviewResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Pagination Pagination       `json:"pagination"`
}

// PaginatedUserReviewResponse for GET /reviews/mine
type PaginatedUserReviewResponse struct {
	Reviews    []UserReviewResponse `json:"reviews"`
	Pagination Pagination           `json:"pagination"`
}
