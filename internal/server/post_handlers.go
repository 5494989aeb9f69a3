package server

import (
	"io"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts?page=&limit=&userId=
// Without userId it serves the global reverse-chronological feed; with it,
// a single user's posts (the user may be addressed by internal or auth ID).
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	pg := parsePagination(c)
	viewerID := s.currentUserID(c)

	if owner := strings.TrimSpace(c.Query("userId")); owner != "" {
		posts, err := s.feed.GetUserPosts(ctx, owner, viewerID, pg.Limit, pg.Offset)
		if err != nil {
			return s.respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"posts":    posts,
			"has_more": len(posts) == pg.Limit,
		})
	}

	page, err := s.feed.GetFeed(ctx, viewerID, pg.Limit, pg.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":    page.Posts,
		"has_more": page.HasMore,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.feed.GetPost(ctx, postID, s.currentUserID(c))
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"post": post})
}

// CreatePost handles POST /api/posts (multipart: image + caption)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(string)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded image"))
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, service.MediaMaxUploadSizeBytes+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded image"))
	}

	post, err := s.posts.CreatePost(ctx, service.CreatePostInput{
		UserID:      userID,
		Caption:     c.FormValue("caption"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	s.publishFeedEvent(EventPostCreated, map[string]interface{}{
		"post_id":   post.ID,
		"author_id": post.UserID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}
