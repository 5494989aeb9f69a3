package service

import (
	"context"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// FollowService manages the follow graph between users.
type FollowService struct {
	followRepo repository.FollowRepository
	identity   *IdentityService
}

func NewFollowService(followRepo repository.FollowRepository, identity *IdentityService) *FollowService {
	return &FollowService{followRepo: followRepo, identity: identity}
}

// Follow creates a follow edge from followerID to the target. The target may
// be given by internal ID or external auth ID.
func (s *FollowService) Follow(ctx context.Context, followerID, targetIdentifier string) (*models.Follow, error) {
	target, err := s.identity.Resolve(ctx, targetIdentifier)
	if err != nil {
		return nil, err
	}
	if target.ID == followerID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}

	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: target.ID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

// Unfollow removes the follow edge. Unfollowing a user who was never followed
// returns a NOT_FOUND error.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetIdentifier string) error {
	target, err := s.identity.Resolve(ctx, targetIdentifier)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return models.NewValidationError("Cannot unfollow yourself")
	}

	exists, err := s.followRepo.Exists(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Follow", targetIdentifier)
	}
	return s.followRepo.Delete(ctx, followerID, target.ID)
}

// IsFollowing reports whether viewerID follows the target user ID. It is a
// display hint: an empty or self viewer is false, and lookup failures degrade
// to false rather than failing the caller.
func (s *FollowService) IsFollowing(ctx context.Context, viewerID, followingID string) bool {
	if viewerID == "" || viewerID == followingID {
		return false
	}
	following, err := s.followRepo.Exists(ctx, viewerID, followingID)
	if err != nil {
		return false
	}
	return following
}

// ListFollowers returns users following the target, newest edge first.
func (s *FollowService) ListFollowers(ctx context.Context, targetIdentifier string, limit, offset int) ([]models.User, error) {
	target, err := s.identity.Resolve(ctx, targetIdentifier)
	if err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)
	return s.followRepo.ListFollowers(ctx, target.ID, limit, offset)
}

// ListFollowing returns users the target follows, newest edge first.
func (s *FollowService) ListFollowing(ctx context.Context, targetIdentifier string, limit, offset int) ([]models.User, error) {
	target, err := s.identity.Resolve(ctx, targetIdentifier)
	if err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)
	return s.followRepo.ListFollowing(ctx, target.ID, limit, offset)
}
