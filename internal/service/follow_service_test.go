package service

import (
	"context"
	"testing"

	"glimpse/internal/models"
	"glimpse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityWith(userRepo *userRepoStub) *IdentityService {
	return NewIdentityService(userRepo)
}

func TestFollowService_Follow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates the edge", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.resolveByAnyIDFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: "u-target"}, nil
		}
		var created *models.Follow
		followRepo := noopFollowRepo()
		followRepo.createFn = func(_ context.Context, f *models.Follow) error {
			created = f
			return nil
		}

		svc := NewFollowService(followRepo, identityWith(userRepo))
		follow, err := svc.Follow(ctx, "u-me", "auth0|target")
		require.NoError(t, err)
		assert.Equal(t, "u-me", follow.FollowerID)
		assert.Equal(t, "u-target", follow.FollowingID)
		assert.Same(t, follow, created)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.resolveByAnyIDFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: "u-me"}, nil
		}

		svc := NewFollowService(noopFollowRepo(), identityWith(userRepo))
		_, err := svc.Follow(ctx, "u-me", "u-me")
		assertValidationError(t, err)
	})

	t.Run("unknown target is not found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.resolveByAnyIDFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, nil
		}

		svc := NewFollowService(noopFollowRepo(), identityWith(userRepo))
		_, err := svc.Follow(ctx, "u-me", "nobody")
		assertNotFoundError(t, err)
	})

	t.Run("duplicate edge surfaces conflict", func(t *testing.T) {
		t.Parallel()
		followRepo := noopFollowRepo()
		followRepo.createFn = func(_ context.Context, _ *models.Follow) error {
			return repository.ErrAlreadyFollowing
		}

		svc := NewFollowService(followRepo, identityWith(noopUserRepo()))
		_, err := svc.Follow(ctx, "u-me", "u-target")
		assert.ErrorIs(t, err, repository.ErrAlreadyFollowing)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removes the edge", func(t *testing.T) {
		t.Parallel()
		deleted := false
		followRepo := noopFollowRepo()
		followRepo.deleteFn = func(_ context.Context, followerID, followingID string) error {
			deleted = true
			assert.Equal(t, "u-me", followerID)
			assert.Equal(t, "u-target", followingID)
			return nil
		}

		svc := NewFollowService(followRepo, identityWith(noopUserRepo()))
		require.NoError(t, svc.Unfollow(ctx, "u-me", "u-target"))
		assert.True(t, deleted)
	})

	t.Run("missing edge is not found", func(t *testing.T) {
		t.Parallel()
		followRepo := noopFollowRepo()
		followRepo.existsFn = func(_ context.Context, _, _ string) (bool, error) { return false, nil }

		svc := NewFollowService(followRepo, identityWith(noopUserRepo()))
		err := svc.Unfollow(ctx, "u-me", "u-target")
		assertNotFoundError(t, err)
	})
}

func TestFollowService_IsFollowing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewFollowService(noopFollowRepo(), identityWith(noopUserRepo()))

	assert.False(t, svc.IsFollowing(ctx, "", "u-target"), "anonymous viewer")
	assert.False(t, svc.IsFollowing(ctx, "u-me", "u-me"), "self")
	assert.True(t, svc.IsFollowing(ctx, "u-me", "u-target"))
}
