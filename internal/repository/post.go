// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string, viewerID string) (*models.Post, error)
	// List returns one page of the global feed, newest first, along with the
	// total number of posts.
	List(ctx context.Context, limit, offset int, viewerID string) ([]models.Post, int64, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int, viewerID string) ([]models.Post, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateFeed(ctx)
		cache.InvalidateUser(ctx, post.UserID)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id string, viewerID string) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, viewerID string) ([]models.Post, int64, error) {
	var total int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Order("posts.created_at DESC, posts.seq DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID string, limit, offset int, viewerID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC, posts.seq DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID string) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comment_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as like_count"

	if viewerID != "" {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", viewerID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{}).Error; err != nil {
		return err
	}
	cache.InvalidateFeed(ctx)
	return nil
}
