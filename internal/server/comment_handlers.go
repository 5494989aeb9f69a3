package server

import (
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/comments?postId=&page=&limit=
// Comments are returned oldest first so threads read top to bottom.
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()

	postID := strings.TrimSpace(c.Query("postId"))
	if postID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing postId query parameter"))
	}

	pg := parsePagination(c)
	comments, err := s.comments.ListComments(ctx, postID, pg.Limit, pg.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment handles POST /api/comments (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	var req struct {
		PostID  string `json:"post_id"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.comments.CreateComment(ctx, service.CreateCommentInput{
		UserID:  userID,
		PostID:  req.PostID,
		Content: req.Content,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": created,
	})
}

// DeleteComment handles DELETE /api/comments/:id (protected, author only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	commentID, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.comments.DeleteComment(ctx, service.DeleteCommentInput{
		CommentID: commentID,
		UserID:    userID,
	}); err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
