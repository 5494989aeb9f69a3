package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores media and inserts the post", func(t *testing.T) {
		t.Parallel()
		var inserted *models.Post
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			inserted = p
			p.ID = "p-new"
			return nil
		}
		postRepo.getByIDFn = func(_ context.Context, id, viewerID string) (*models.Post, error) {
			assert.Equal(t, "u-1", viewerID)
			return &models.Post{ID: id, UserID: "u-1"}, nil
		}

		svc := NewPostService(postRepo, testMediaService(t))
		post, err := svc.CreatePost(ctx, CreatePostInput{
			UserID:      "u-1",
			Caption:     "  golden hour  ",
			Filename:    "photo.png",
			ContentType: "image/png",
			Content:     encodeTestPNG(t, 320, 240),
		})
		require.NoError(t, err)
		assert.Equal(t, "p-new", post.ID)
		require.NotNil(t, inserted)
		assert.Equal(t, "golden hour", inserted.Caption)
		assert.Contains(t, inserted.ImageURL, "/media/p/")
		assert.Contains(t, inserted.ThumbURL, "_thumb.jpg")
	})

	t.Run("caption too long", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), testMediaService(t))
		_, err := svc.CreatePost(ctx, CreatePostInput{
			UserID:  "u-1",
			Caption: strings.Repeat("x", MaxCaptionLength+1),
			Content: encodeTestPNG(t, 32, 32),
		})
		assertValidationError(t, err)
	})

	t.Run("invalid upload leaves no row", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, _ *models.Post) error {
			t.Fatal("post should not be inserted for a rejected upload")
			return nil
		}
		svc := NewPostService(postRepo, testMediaService(t))
		_, err := svc.CreatePost(ctx, CreatePostInput{
			UserID:  "u-1",
			Content: []byte("not an image"),
		})
		assertValidationError(t, err)
	})

	t.Run("insert failure removes stored media", func(t *testing.T) {
		t.Parallel()
		media := testMediaService(t)
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, _ *models.Post) error {
			return assert.AnError
		}

		svc := NewPostService(postRepo, media)
		content := encodeTestPNG(t, 64, 64)
		_, err := svc.CreatePost(ctx, CreatePostInput{
			UserID:  "u-1",
			Content: content,
		})
		require.Error(t, err)

		// The files written for this upload must be gone.
		entries, readErr := os.ReadDir(filepath.Join(media.Dir(), "p"))
		if readErr == nil {
			assert.Empty(t, entries)
		}
	})
}
