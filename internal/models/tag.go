package models

import (
	"time"
)

// Tag is a label that can be attached to any number of posts.
// Names are unique so repeated attachments resolve to the same row.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_tag_name" json:"name"`
	Posts     []Post    `gorm:"many2many:post_tags" json:"posts,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
