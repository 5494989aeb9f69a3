package repository

import (
	"context"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadyLiked reports a like that already exists for the (post, user) pair.
var ErrAlreadyLiked = models.NewConflictError("Post already liked")

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// Like records the like. Returns ErrAlreadyLiked when the pair exists.
	Like(ctx context.Context, userID, postID string) error
	// Unlike removes the like if present. Removing a non-existent like is not
	// an error.
	Unlike(ctx context.Context, userID, postID string) error
	IsLiked(ctx context.Context, userID, postID string) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Like(ctx context.Context, userID, postID string) error {
	// ON CONFLICT DO NOTHING keeps concurrent duplicate likes race-free; a
	// zero rows-affected result means the row already existed.
	like := models.Like{PostID: postID, UserID: userID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return ErrAlreadyLiked
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyLiked
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *likeRepository) Unlike(ctx context.Context, userID, postID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidateFeed(ctx)
	}
	return err
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
