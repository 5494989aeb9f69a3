package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Follow handles POST /api/follows (protected). The target may be addressed
// by internal or auth ID. Following yourself is a 400; following twice a 409.
func (s *Server) Follow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	var req struct {
		FollowingID string `json:"following_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	follow, err := s.follows.Follow(ctx, userID, req.FollowingID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"follow":  follow,
	})
}

// Unfollow handles DELETE /api/follows/:followingId (protected). Unfollowing
// someone you don't follow is a 404.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	followingID, err := requireParam(c, "followingId")
	if err != nil {
		return nil
	}

	if err := s.follows.Unfollow(ctx, userID, followingID); err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	ctx := c.Context()
	target, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	pg := parsePagination(c)
	users, err := s.follows.ListFollowers(ctx, target, pg.Limit, pg.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"users": users})
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	ctx := c.Context()
	target, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	pg := parsePagination(c)
	users, err := s.follows.ListFollowing(ctx, target, pg.Limit, pg.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"users": users})
}
