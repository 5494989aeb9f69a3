package repository

import (
	"context"
	"errors"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// ErrAlreadyFollowing reports an existing follow edge for the pair.
var ErrAlreadyFollowing = models.NewConflictError("Already following this user")

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	// Create inserts the follow edge. Returns ErrAlreadyFollowing when the
	// edge exists; the unique index makes this race-safe.
	Create(ctx context.Context, follow *models.Follow) error
	// Delete removes the edge if present; removing a missing edge is not an
	// error.
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	ListFollowers(ctx context.Context, userID string, limit, offset int) ([]models.User, error)
	ListFollowing(ctx context.Context, userID string, limit, offset int) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrAlreadyFollowing
		}
		return models.NewInternalError(err)
	}
	r.invalidatePair(ctx, follow.FollowerID, follow.FollowingID)
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidatePair(ctx, followerID, followingID)
	return nil
}

// invalidatePair drops cached stats for both ends of the edge and the feed
// pages, which are scoped to who the viewer follows.
func (r *followRepository) invalidatePair(ctx context.Context, followerID, followingID string) {
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followingID)
	cache.InvalidateFeed(ctx)
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var follow models.Follow
	err := readDB(r.db).WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) ListFollowers(ctx context.Context, userID string, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := readDB(r.db).WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON f.follower_id = users.id").
		Where("f.following_id = ?", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := readDB(r.db).WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON f.following_id = users.id").
		Where("f.follower_id = ?", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
