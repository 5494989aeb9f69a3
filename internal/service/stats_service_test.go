package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetUserStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("all counts", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.countByUserFn = func(_ context.Context, _ string) (int64, error) { return 7, nil }
		followRepo := noopFollowRepo()
		followRepo.countFollowersFn = func(_ context.Context, _ string) (int64, error) { return 3, nil }
		followRepo.countFollowingFn = func(_ context.Context, _ string) (int64, error) { return 11, nil }

		svc := NewStatsService(postRepo, followRepo, nil)
		stats, err := svc.GetUserStats(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, int64(7), stats.Posts)
		assert.Equal(t, int64(3), stats.Followers)
		assert.Equal(t, int64(11), stats.Following)
	})

	t.Run("failing count degrades to zero", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.countByUserFn = func(_ context.Context, _ string) (int64, error) {
			return 0, errors.New("timeout")
		}
		followRepo := noopFollowRepo()
		followRepo.countFollowersFn = func(_ context.Context, _ string) (int64, error) { return 5, nil }

		svc := NewStatsService(postRepo, followRepo, nil)
		stats, err := svc.GetUserStats(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.Posts)
		assert.Equal(t, int64(5), stats.Followers)
	})
}
