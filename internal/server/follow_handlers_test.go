package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowFlow(t *testing.T) {
	s, db := newTestServer(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Post("/users/:id/follow", s.ToggleFollow)
	app.Get("/users/:id/follow", s.GetFollowStatus)

	target := "/users/2/follow"
	_ = bob

	// First toggle follows.
	resp := performRequest(t, app, "POST", target, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		State   string `json:"state"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "followed", body.State)

	// Status reflects the follow.
	statusResp := performRequest(t, app, "GET", target, "")
	defer func() { _ = statusResp.Body.Close() }()
	var status struct {
		Following bool `json:"following"`
	}
	require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&status))
	assert.True(t, status.Following)

	// Second toggle unfollows.
	resp = performRequest(t, app, "POST", target, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unfollowed", body.State)
}

func TestToggleFollowSelfRejected(t *testing.T) {
	s, db := newTestServer(t)
	alice := seedUser(t, db, "alice")

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Post("/users/:id/follow", s.ToggleFollow)

	resp := performRequest(t, app, "POST", "/users/1/follow", "")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToggleFollowUnknownUser(t *testing.T) {
	s, db := newTestServer(t)
	alice := seedUser(t, db, "alice")

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Post("/users/:id/follow", s.ToggleFollow)

	resp := performRequest(t, app, "POST", "/users/99/follow", "")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollowerListsStayInSync(t *testing.T) {
	s, db := newTestServer(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Post("/users/:id/follow", s.ToggleFollow)
	app.Get("/users/:id/followers", s.GetFollowers)
	app.Get("/users/:id/following", s.GetFollowing)

	resp := performRequest(t, app, "POST", "/users/2/follow", "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	followersResp := performRequest(t, app, "GET", "/users/2/followers", "")
	defer func() { _ = followersResp.Body.Close() }()
	var followers []struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.NewDecoder(followersResp.Body).Decode(&followers))
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].ID)

	followingResp := performRequest(t, app, "GET", "/users/1/following", "")
	defer func() { _ = followingResp.Body.Close() }()
	var following []struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.NewDecoder(followingResp.Body).Decode(&following))
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)
}
