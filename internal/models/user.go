// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Username       string            `gorm:"unique;not null" json:"username"`
	Email          string            `gorm:"unique;not null" json:"email"`
	Password       string            `gorm:"column:password_hash;not null" json:"-"`
	AvatarURL      string            `json:"avatar_url"`
	Description    string            `gorm:"type:text" json:"description"`
	Location       string            `json:"location"`
	FavoriteGenres []string          `gorm:"serializer:json" json:"favorite_genres"`
	SocialLinks    map[string]string `gorm:"serializer:json" json:"social_links"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
	Ratings        []Rating          `gorm:"foreignKey:UserID" json:"ratings,omitempty"`
	Lists          []List            `gorm:"foreignKey:UserID" json:"lists,omitempty"`
}

// UserSummary is the author projection attached to cross-user listings.
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// Summary returns the public author projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}
