package models

import "time"

// PostTag is one row of the join table linking a post to a tag.
// It carries its own surrogate key; (post_id, tag_id) pairs are
// expected to be unique but the schema does not enforce it with a
// composite constraint.
type PostTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	TagID     uint      `gorm:"not null;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for PostTag.
func (PostTag) TableName() string {
	return "post_tags"
}
