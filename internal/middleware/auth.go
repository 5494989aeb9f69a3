// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"strings"

	"glimpse/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthClaims carries the identity attributes extracted from a verified token.
// AuthID is the provider's subject; the profile fields are optional and feed
// display-name selection when a user row is provisioned on first sight.
type AuthClaims struct {
	AuthID            string
	Name              string
	PreferredUsername string
	Email             string
}

func extractAuthClaims(claims jwt.MapClaims) (*AuthClaims, bool) {
	subClaim, ok := claims["sub"]
	if !ok {
		return nil, false
	}
	subStr, ok := subClaim.(string)
	if !ok || subStr == "" {
		return nil, false
	}

	out := &AuthClaims{AuthID: subStr}
	if v, ok := claims["name"].(string); ok {
		out.Name = v
	}
	if v, ok := claims["preferred_username"].(string); ok {
		out.PreferredUsername = v
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	return out, true
}

func validateToken(tokenString string) (*AuthClaims, error) {
	var opts []jwt.ParserOption
	if cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWTIssuer))
	}
	if cfg.JWTAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.JWTAudience))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	auth, ok := extractAuthClaims(claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token structure - missing subject")
	}
	return auth, nil
}

func storeAuthLocals(c *fiber.Ctx, auth *AuthClaims) {
	c.Locals("authID", auth.AuthID)
	c.Locals("authClaims", auth)
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	auth, err := validateToken(parts[1])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	storeAuthLocals(c, auth)
	return c.Next()
}

// OptionalAuth validates a bearer token when one is present but never rejects
// the request. Anonymous viewers pass through with no auth locals set.
func OptionalAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Next()
	}

	if auth, err := validateToken(parts[1]); err == nil {
		storeAuthLocals(c, auth)
	}
	return c.Next()
}

// WebSocketAuthRequired is middleware that validates JWT tokens from query parameters for WebSocket connections.
func WebSocketAuthRequired(c *fiber.Ctx) error {
	// Try to get token from query parameter first (for WebSocket)
	token := c.Query("token")
	if token == "" {
		// Fall back to Authorization header (for regular HTTP)
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token required",
			})
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}
		token = parts[1]
	}

	auth, err := validateToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	storeAuthLocals(c, auth)
	return c.Next()
}
