package service

import (
	"context"
	"log/slog"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// StatsService aggregates per-user counters for profile views. Each counter
// is fetched independently so a failing count degrades to zero instead of
// failing the whole profile.
type StatsService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	logger     *slog.Logger
}

func NewStatsService(postRepo repository.PostRepository, followRepo repository.FollowRepository, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{postRepo: postRepo, followRepo: followRepo, logger: logger}
}

// GetUserStats returns post/follower/following counts for a user.
func (s *StatsService) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	stats := &models.UserStats{}
	err := cache.Aside(ctx, cache.UserStatsKey(userID), stats, cache.UserStatsTTL, func() error {
		stats.Posts = s.countOrZero(ctx, "posts", userID, s.postRepo.CountByUser)
		stats.Followers = s.countOrZero(ctx, "followers", userID, s.followRepo.CountFollowers)
		stats.Following = s.countOrZero(ctx, "following", userID, s.followRepo.CountFollowing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) countOrZero(ctx context.Context, kind, userID string, count func(context.Context, string) (int64, error)) int64 {
	n, err := count(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count user stat",
			slog.String("stat", kind),
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return 0
	}
	return n
}
