// Package models contains the domain entities of the Glimpse application.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account row in Glimpse. The row is keyed by an internal
// UUID; AuthID carries the subject issued by the external identity provider,
// so a user is addressable in either namespace.
type User struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID      string    `gorm:"uniqueIndex;not null" json:"auth_id"`
	DisplayName string    `gorm:"not null" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Posts       []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// BeforeCreate assigns a UUID primary key when one is not set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserStats aggregates the profile counters shown alongside a user.
type UserStats struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
