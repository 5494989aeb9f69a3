package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a single feed entry: an image plus an optional caption.
//
// Seq is a monotonically increasing tie-breaker used by feed pagination so
// posts created in the same timestamp tick still order deterministically.
// LikeCount, CommentCount and Liked are computed per query via subqueries and
// never written back.
type Post struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex" json:"-"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	ThumbURL  string    `json:"thumb_url,omitempty"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LikeCount    int64 `gorm:"->" json:"like_count"`
	CommentCount int64 `gorm:"->" json:"comment_count"`
	Liked        bool  `gorm:"->" json:"liked"`

	PreviewComments []Comment `gorm:"-" json:"preview_comments,omitempty"`
}

func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FeedPage is one page of the reverse-chronological feed.
type FeedPage struct {
	Posts   []Post `json:"posts"`
	Total   int64  `json:"total"`
	HasMore bool   `json:"has_more"`
}
