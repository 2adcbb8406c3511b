package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post in the Inkwell application.
// Every post belongs to exactly one author; tags are attached through
// the post_tags join table.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Author    Author         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags      []Tag          `gorm:"many2many:post_tags" json:"tags,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
