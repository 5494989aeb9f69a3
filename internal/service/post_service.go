package service

import (
	"context"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// MaxCaptionLength mirrors the client-side caption cap.
const MaxCaptionLength = 2200

type PostService struct {
	postRepo repository.PostRepository
	media    *MediaService
}

type CreatePostInput struct {
	UserID      string
	Caption     string
	Filename    string
	ContentType string
	Content     []byte
}

func NewPostService(postRepo repository.PostRepository, media *MediaService) *PostService {
	return &PostService{
		postRepo: postRepo,
		media:    media,
	}
}

// CreatePost validates and stores the uploaded image, then inserts the post.
// If the insert fails the stored files are removed best-effort so a rejected
// post leaves no media behind.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	caption := strings.TrimSpace(in.Caption)
	if len(caption) > MaxCaptionLength {
		return nil, models.NewValidationError("Caption too long (max 2200 characters)")
	}

	stored, err := s.media.Store(StoreMediaInput{
		Filename:    in.Filename,
		ContentType: in.ContentType,
		Content:     in.Content,
	})
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   in.UserID,
		Caption:  caption,
		ImageURL: stored.ImageURL,
		ThumbURL: stored.ThumbURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.media.Remove(stored.Paths)
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}
