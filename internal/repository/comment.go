// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"glimpse/internal/cache"
	"glimpse/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]models.Comment, error)
	// PreviewByPostIDs returns the newest perPost comments of each listed
	// post, keyed by post ID. Used to decorate feed pages.
	PreviewByPostIDs(ctx context.Context, postIDs []string, perPost int) (map[string][]models.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	// Cached feed pages embed comment counts and previews.
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) PreviewByPostIDs(ctx context.Context, postIDs []string, perPost int) (map[string][]models.Comment, error) {
	out := make(map[string][]models.Comment, len(postIDs))
	if len(postIDs) == 0 || perPost <= 0 {
		return out, nil
	}

	// A window function keeps this a single query regardless of page size.
	var comments []models.Comment
	err := readDB(r.db).WithContext(ctx).
		Raw(`SELECT id, content, user_id, post_id, created_at, updated_at FROM (
			SELECT comments.*, ROW_NUMBER() OVER (PARTITION BY post_id ORDER BY created_at DESC, id DESC) AS rn
			FROM comments WHERE post_id IN ?
		) ranked WHERE rn <= ?`, postIDs, perPost).
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}

	if len(comments) > 0 {
		userIDs := make([]string, 0, len(comments))
		seen := map[string]struct{}{}
		for _, c := range comments {
			if _, ok := seen[c.UserID]; ok {
				continue
			}
			seen[c.UserID] = struct{}{}
			userIDs = append(userIDs, c.UserID)
		}

		var users []models.User
		if err := readDB(r.db).WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		byID := make(map[string]*models.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
		for i := range comments {
			comments[i].User = byID[comments[i].UserID]
		}
	}

	for _, c := range comments {
		out[c.PostID] = append(out[c.PostID], c)
	}
	return out, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	cache.InvalidateFeed(ctx)
	return nil
}
