package models

import "time"

// Title lifecycle statuses.
const (
	StatusAiring    = "airing"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
	StatusAnnounced = "announced"
)

type Title struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" gorm:"not null"`
	OriginalTitle *string   `json:"original_title,omitempty"`
	Synopsis      *string   `json:"synopsis,omitempty"`
	PosterURL     *string   `json:"poster_url,omitempty"`
	BannerURL     *string   `json:"banner_url,omitempty"`
	ReleaseYear   *int      `json:"release_year,omitempty"`
	Episodes      int       `json:"episodes" gorm:"not null;default:1"`
	Status        string    `json:"status" gorm:"not null;default:'finished'"`
	Studio        *string   `json:"studio,omitempty"`
	Director      *string   `json:"director,omitempty"`
	AverageRating float64   `json:"average_rating" gorm:"type:decimal(3,1);not null;default:0"`
	ReviewCount   int64     `json:"review_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// association
	Genres []Genre `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
