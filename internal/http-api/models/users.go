package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdminID int64 = 1
	RoleUserID  int64 = 2
)

type Role struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"` // "user" or "admin"
}

func (Role) TableName() string {
	return "roles"
}

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"` // never serialized
	RoleID    int64     `gorm:"not null;default:2" json:"-"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Role Role `gorm:"foreignKey:RoleID" json:"-"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user's resolved role is "admin".
func (user *User) IsAdmin() bool {
	return user.Role.Name == "admin"
}

func (User) TableName() string {
	return "users"
}
