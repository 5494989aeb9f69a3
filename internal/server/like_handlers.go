package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/likes (protected). Liking twice is a 409.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	var req struct {
		PostID string `json:"post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.likes.LikePost(ctx, userID, req.PostID); err != nil {
		return s.respondServiceError(c, err)
	}

	s.publishReactionEvent(c, req.PostID, userID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"like":    fiber.Map{"user_id": userID, "post_id": req.PostID},
	})
}

// UnlikePost handles DELETE /api/likes/:postId (protected). Removing a like
// that does not exist is a no-op so retries stay safe.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	postID, err := requireParam(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.likes.UnlikePost(ctx, userID, postID); err != nil {
		return s.respondServiceError(c, err)
	}

	s.publishReactionEvent(c, postID, userID)

	return c.JSON(fiber.Map{"success": true})
}

// publishReactionEvent emits a post_reaction_updated feed event with the
// current like count. The count lookup is best effort.
func (s *Server) publishReactionEvent(c *fiber.Ctx, postID, userID string) {
	payload := map[string]interface{}{
		"post_id": postID,
	}
	if post, err := s.postRepo.GetByID(c.UserContext(), postID, userID); err == nil {
		payload["like_count"] = post.LikeCount
	}
	s.publishFeedEvent(EventPostReactionUpdated, payload)
}
