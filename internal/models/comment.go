package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxCommentLength is the upper bound on a comment body after trimming.
const MaxCommentLength = 2200

// Comment represents a comment left on a post.
type Comment struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	PostID    string    `gorm:"type:uuid;index;not null" json:"post_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
