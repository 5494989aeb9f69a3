package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glimpse/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	// Setup app and config
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{JWTSecret: secret})

	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"authID": c.Locals("authID")})
	})

	generateToken := func(claims jwt.MapClaims, exp time.Duration) string {
		claims["exp"] = time.Now().Add(exp).Unix()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(secret))
		return s
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedAuthID string
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + generateToken(jwt.MapClaims{"sub": "auth0|abc123"}, time.Hour),
			expectedStatus: http.StatusOK,
			expectedAuthID: "auth0|abc123",
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Header",
			authHeader:     "Token abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + generateToken(jwt.MapClaims{"sub": "auth0|abc123"}, -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Subject",
			authHeader:     "Bearer " + generateToken(jwt.MapClaims{}, time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Secret",
			authHeader:     "Bearer " + func() string { s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x", "exp": time.Now().Add(time.Hour).Unix()}).SignedString([]byte("other-secret")); return s }(),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.expectedAuthID, body["authID"])
			}
		})
	}
}

func TestWebSocketAuthRequired_QueryToken(t *testing.T) {
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{JWTSecret: secret})

	app.Get("/ws", WebSocketAuthRequired, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	claims := jwt.MapClaims{
		"sub":  "auth0|ws-user",
		"name": "WS User",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_IssuerAudience(t *testing.T) {
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{
		JWTSecret:   secret,
		JWTIssuer:   "https://auth.example.com/",
		JWTAudience: "glimpse-api",
	})

	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	sign := func(claims jwt.MapClaims) string {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name           string
		claims         jwt.MapClaims
		expectedStatus int
	}{
		{"Matching issuer and audience", jwt.MapClaims{"sub": "u1", "iss": "https://auth.example.com/", "aud": "glimpse-api"}, http.StatusOK},
		{"Wrong issuer", jwt.MapClaims{"sub": "u1", "iss": "https://evil.example.com/", "aud": "glimpse-api"}, http.StatusUnauthorized},
		{"Missing audience", jwt.MapClaims{"sub": "u1", "iss": "https://auth.example.com/"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer "+sign(tt.claims))

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{JWTSecret: secret})

	app.Get("/test", OptionalAuth, func(c *fiber.Ctx) error {
		authID, _ := c.Locals("authID").(string)
		return c.JSON(fiber.Map{"authID": authID})
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "auth0|viewer",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedAuthID string
	}{
		{"With valid token", "Bearer " + token, "auth0|viewer"},
		{"Without token", "", ""},
		{"With garbage token", "Bearer not-a-jwt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedAuthID, body["authID"])
		})
	}
}

func TestExtractAuthClaims(t *testing.T) {
	auth, ok := extractAuthClaims(jwt.MapClaims{
		"sub":                "sub-1",
		"name":               "Jane Doe",
		"preferred_username": "jane",
		"email":              "jane@example.com",
	})
	require.True(t, ok)
	assert.Equal(t, "sub-1", auth.AuthID)
	assert.Equal(t, "Jane Doe", auth.Name)
	assert.Equal(t, "jane", auth.PreferredUsername)
	assert.Equal(t, "jane@example.com", auth.Email)

	_, ok = extractAuthClaims(jwt.MapClaims{"sub": 42})
	assert.False(t, ok)

	_, ok = extractAuthClaims(jwt.MapClaims{})
	assert.False(t, ok)
}
