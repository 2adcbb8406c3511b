// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Author represents a writer in the Inkwell application.
// An author owns zero or more posts and at most one profile.
type Author struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Posts   []Post   `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Profile *Profile `gorm:"foreignKey:AuthorID" json:"profile,omitempty"`
}
