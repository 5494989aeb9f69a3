package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserProfile(t *testing.T) {
	s := newTestServer(t)
	target := createTestUser(t, s.db, "auth0|target", "Target")
	fan := createTestUser(t, s.db, "auth0|fan", "Fan")

	createTestPost(t, s.db, target.ID, "one", 1)
	createTestPost(t, s.db, target.ID, "two", 2)
	require.NoError(t, s.db.Create(&models.Follow{FollowerID: fan.ID, FollowingID: target.ID}).Error)
	require.NoError(t, s.db.Create(&models.Follow{FollowerID: target.ID, FollowingID: fan.ID}).Error)

	app := newTestApp(s, fan.ID)

	// The profile may be addressed by internal ID or auth ID.
	for _, identifier := range []string{target.ID, target.AuthID} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/"+identifier, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		_ = resp.Body.Close()

		user := body["user"].(map[string]interface{})
		assert.Equal(t, target.ID, user["id"])
		assert.Equal(t, "Target", user["name"])

		stats := body["stats"].(map[string]interface{})
		assert.Equal(t, float64(2), stats["posts"])
		assert.Equal(t, float64(1), stats["followers"])
		assert.Equal(t, float64(1), stats["following"])

		assert.Equal(t, true, body["is_following"])
	}
}

func TestGetUserProfileAnonymousViewer(t *testing.T) {
	s := newTestServer(t)
	target := createTestUser(t, s.db, "auth0|target", "Target")

	app := newTestApp(s, "")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/"+target.ID, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["is_following"])
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["posts"])
}

func TestGetUserProfileSelfViewIsNotFollowing(t *testing.T) {
	s := newTestServer(t)
	user := createTestUser(t, s.db, "auth0|user", "User")

	app := newTestApp(s, user.ID)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/"+user.ID, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["is_following"])
}

func TestGetUserProfileNotFound(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(s, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/nobody", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
