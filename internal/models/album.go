package models

import "time"

// Album caches display metadata for an external catalog entry. The primary key
// is the catalog's opaque ID, not a locally generated one; a row is created the
// first time a list references the album.
type Album struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `json:"name"`
	ArtistName string    `json:"artistName"`
	ImageURL   string    `json:"imageUrl"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
