package models

import "time"

// List name length bounds enforced at the service layer.
const (
	MinListNameLen = 1
	MaxListNameLen = 100
)

// List is a user-curated collection of albums. Private lists are visible only
// to their owner; public lists may be fetched by any authenticated user.
type List struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsPublic    bool      `gorm:"default:false" json:"isPublic"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Albums      []Album   `gorm:"many2many:list_albums" json:"albums,omitempty"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
