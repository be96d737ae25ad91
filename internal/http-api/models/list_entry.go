package models

import "time"

// Watch-list statuses.
const (
	ListStatusWatched     = "watched"
	ListStatusWantToWatch = "want_to_watch"
	ListStatusWatching    = "watching"
	ListStatusPaused      = "paused"
	ListStatusDropped     = "dropped"
)

// ValidListStatus reports whether s is one of the five recognized statuses.
func ValidListStatus(s string) bool {
	switch s {
	case ListStatusWatched, ListStatusWantToWatch, ListStatusWatching, ListStatusPaused, ListStatusDropped:
		return true
	}
	return false
}

type ListEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_list_user_title"`
	TitleID   int64     `json:"title_id" gorm:"not null;index;uniqueIndex:idx_list_user_title"`
	Status    string    `json:"status" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title *Title `gorm:"foreignKey:TitleID" json:"title,omitempty"`
}

func (ListEntry) TableName() string {
	return "list_entries"
}
