package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge: FollowerID follows FollowingID. The edge is
// unique at the storage level, so concurrent duplicate follows collapse into
// a single row plus a constraint violation for the loser.
type Follow struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follower_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following *User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
