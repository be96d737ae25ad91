package models

type Genre struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"unique;not null"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color" gorm:"not null;default:'#6366f1'"`
}

func (Genre) TableName() string {
	return "genres"
}
