package dto

import "animalist/internal/http-api/models"

// CreateGenreDTO used for POST /genres
type CreateGenreDTO struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" binding:"omitempty,hexcolor"`
}

func (d CreateGenreDTO) ToModel() models.Genre {
	g := models.Genre{
		Name:        d.Name,
		Description: d.Description,
		Color:       "#6366f1",
	}
	if d.Color != nil && *d.Color != "" {
		g.Color = *d.Color
	}
	return g
}

// GenreInfo is the joined genre view attached to title detail responses.
type GenreInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func FromModelToGenreInfo(g models.Genre) GenreInfo {
	return GenreInfo{ID: g.ID, Name: g.Name, Color: g.Color}
}
