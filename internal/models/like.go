package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records that a user liked a post. The (PostID, UserID) pair is unique
// at the storage level; a second like for the same pair fails with a unique
// constraint violation rather than creating a duplicate row.
type Like struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
