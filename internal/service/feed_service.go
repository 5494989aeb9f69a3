package service

import (
	"context"
	"errors"
	"log/slog"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// feedPreviewComments is how many of a post's oldest comments ride along on
// feed pages.
const feedPreviewComments = 2

// FeedService assembles post pages for the feed and profile views: posts with
// authors, like/comment counts, the viewer's liked flag, and a short comment
// preview per post.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	identity    *IdentityService
	logger      *slog.Logger
}

func NewFeedService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, identity *IdentityService) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		identity:    identity,
		logger:      slog.Default(),
	}
}

// GetFeed returns one page of the global feed, newest first.
func (s *FeedService) GetFeed(ctx context.Context, viewerID string, limit, offset int) (*models.FeedPage, error) {
	limit, offset = clampPage(limit, offset)

	page := &models.FeedPage{}
	err := cache.Aside(ctx, cache.FeedPageKey(viewerID, limit, offset), page, cache.FeedPageTTL, func() error {
		posts, total, err := s.postRepo.List(ctx, limit, offset, viewerID)
		if err != nil {
			return err
		}
		s.attachPreviews(ctx, posts)
		page.Posts = posts
		page.Total = total
		page.HasMore = int64(offset+limit) < total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// GetUserPosts returns one page of the given user's posts. The owner may be
// identified by internal ID or external auth ID; an unknown owner yields an
// empty page rather than an error, so profile views of deleted accounts
// render empty instead of failing.
func (s *FeedService) GetUserPosts(ctx context.Context, ownerIdentifier, viewerID string, limit, offset int) ([]models.Post, error) {
	limit, offset = clampPage(limit, offset)

	owner, err := s.identity.Resolve(ctx, ownerIdentifier)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return []models.Post{}, nil
		}
		return nil, err
	}

	posts, err := s.postRepo.GetByUserID(ctx, owner.ID, limit, offset, viewerID)
	if err != nil {
		return nil, err
	}
	s.attachPreviews(ctx, posts)
	return posts, nil
}

// GetPost returns a single post with counts, liked flag and comment preview.
func (s *FeedService) GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, notFoundOr(err, "Post", postID)
	}
	single := []models.Post{*post}
	s.attachPreviews(ctx, single)
	return &single[0], nil
}

// attachPreviews decorates posts with their newest comments in one query.
// Preview failures degrade to empty previews rather than failing the page.
func (s *FeedService) attachPreviews(ctx context.Context, posts []models.Post) {
	if len(posts) == 0 {
		return
	}
	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	previews, err := s.commentRepo.PreviewByPostIDs(ctx, ids, feedPreviewComments)
	if err != nil {
		s.logger.Error("failed to fetch comment previews", slog.String("error", err.Error()))
		previews = map[string][]models.Comment{}
	}
	for i := range posts {
		if preview, ok := previews[posts[i].ID]; ok {
			posts[i].PreviewComments = preview
		} else {
			posts[i].PreviewComments = []models.Comment{}
		}
	}
}
