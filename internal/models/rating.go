package models

import "time"

// Rating scale bounds. Submissions outside this range are rejected.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a user's score for one external album. A user can hold at most one
// rating per album; re-submitting overwrites the existing row (see uniqueIndex).
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_ratings_user_album" json:"userId"`
	AlbumID    string    `gorm:"not null;uniqueIndex:idx_ratings_user_album" json:"albumId"`
	AlbumName  string    `gorm:"not null" json:"albumName"`
	ArtistName string    `gorm:"not null" json:"artistName"`
	AlbumImage string    `json:"albumImage"`
	Rating     int       `gorm:"not null" json:"rating"`
	Review     string    `gorm:"type:text" json:"review"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
