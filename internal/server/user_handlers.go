package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id
// The user may be addressed by internal ID or external auth ID. The response
// bundles the profile, its counters and whether the current viewer follows
// the user (always false for anonymous viewers and self-views).
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	identifier, err := requireParam(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.identity.Resolve(ctx, identifier)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	stats, err := s.stats.GetUserStats(ctx, user.ID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":         user,
		"stats":        stats,
		"is_following": s.follows.IsFollowing(ctx, s.currentUserID(c), user.ID),
	})
}
