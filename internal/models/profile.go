package models

import (
	"time"
)

// Profile holds the public-facing details for a single author.
// At most one profile per author is an application-level assumption;
// the schema does not enforce uniqueness on author_id.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	Facebook  string    `json:"facebook"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
