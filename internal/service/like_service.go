package service

import (
	"context"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// LikeService manages likes on posts.
type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo}
}

// LikePost records a like from the user on the post. Liking a post twice
// returns a conflict error.
func (s *LikeService) LikePost(ctx context.Context, userID, postID string) error {
	if postID == "" {
		return models.NewValidationError("Post ID is required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return notFoundOr(err, "Post", postID)
	}
	return s.likeRepo.Like(ctx, userID, postID)
}

// UnlikePost removes the user's like from the post. Unliking a post that was
// never liked is a no-op.
func (s *LikeService) UnlikePost(ctx context.Context, userID, postID string) error {
	if postID == "" {
		return models.NewValidationError("Post ID is required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return notFoundOr(err, "Post", postID)
	}
	return s.likeRepo.Unlike(ctx, userID, postID)
}
