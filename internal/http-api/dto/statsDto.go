package dto

import "time"

// Dashboard snapshot shapes. Each block mirrors one aggregate query; the
// snapshot as a whole is best-effort, not transactional.

type DashboardTotals struct {
	Titles         int64 `json:"titles"`
	ActiveUsers    int64 `json:"active_users"`
	Reviews        int64 `json:"reviews"`
	RecentComments int64 `json:"recent_comments"` // commented reviews, trailing 7 days
}

type DashboardGrowth struct {
	TitlesMonth  int64 `json:"titles_month"`
	UsersMonth   int64 `json:"users_month"`
	ReviewsMonth int64 `json:"reviews_month"`
}

type TopTitle struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	PosterURL     *string `json:"poster_url,omitempty"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type TopReviewer struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	ReviewCount int64     `json:"review_count"`
}

type GenreCount struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Total int64  `json:"total"`
}

type ActivityReview struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"user_name"`
	TitleName string    `json:"title"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardResponse struct {
	Totals        DashboardTotals  `json:"totals"`
	Growth        DashboardGrowth  `json:"growth"`
	TopTitles     []TopTitle       `json:"top_titles"`
	TopUsers      []TopReviewer    `json:"top_users"`
	GenreStats    []GenreCount     `json:"genre_stats"`
	LatestReviews []ActivityReview `json:"latest_reviews"`
}

// RecentUserResponse for GET /stats/users/recent
type RecentUserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Role        string    `json:"role"`
	ReviewCount int64     `json:"review_count"`
	ListCount   int64     `json:"list_count"`
	CreatedAt   time.Time `json:"created_at"`
}
