package server

import (
	"snapgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/:id/follow
// @Summary Toggle following a user
// @Description Follows the user if not currently followed, unfollows otherwise
// @Tags follows
// @Produce json
// @Param id path int true "User ID to toggle"
// @Success 200 {object} object{state=string,message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Security BearerAuth
// @Router /users/{id}/follow [post]
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.followService.ToggleFollow(c.Context(), currentUserID(c), followeeID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	message := "User followed"
	if state == models.FollowStateUnfollowed {
		message = "User unfollowed"
	}
	return c.JSON(fiber.Map{
		"state":   state,
		"message": message,
	})
}

// GetFollowStatus handles GET /api/users/:id/follow
// @Summary Check whether the authenticated user follows another user
// @Tags follows
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{following=bool}
// @Security BearerAuth
// @Router /users/{id}/follow [get]
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	followeeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.IsFollowing(c.Context(), currentUserID(c), followeeID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers handles GET /api/users/:id/followers
// @Summary List a user's followers
// @Tags follows
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /users/{id}/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followers, err := s.followService.GetFollowers(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:id/following
// @Summary List the users a user follows
// @Tags follows
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /users/{id}/following [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.GetFollowing(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(following)
}
