package server

import (
	"snapgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{caption=string,image_url=string,rating=int} true "Post fields"
// @Success 201 {object} models.Post
// @Failure 400 {object} object{error=string}
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Caption  string `json:"caption"`
		ImageURL string `json:"image_url"`
		Rating   int    `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), currentUserID(c), req.Caption, req.ImageURL, req.Rating)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListPosts(c.Context(), p.Limit, p.Offset, viewerID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} object{error=string}
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(post)
}

// ToggleLike handles POST /api/posts/:id/like
// @Summary Toggle liking a post
// @Description Likes the post if not currently liked, removes the like otherwise
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{state=string,message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.postService.ToggleLike(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	message := "Post liked"
	if state == models.LikeStateDisliked {
		message = "Post disliked"
	}
	return c.JSON(fiber.Map{
		"state":   state,
		"message": message,
	})
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete own post
// @Description Removes the post along with its comments and likes
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
