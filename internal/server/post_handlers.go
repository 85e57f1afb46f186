package server

import (
	"socialposts/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	msgLiked       = "You've liked it."
	msgLikeRemoved = "You have removed the like."
)

type postTextRequest struct {
	Text string `json:"text"`
}

// bindPostText parses {"text": "..."} and rejects an unreadable body with 400.
func bindPostText(c *fiber.Ctx) (string, error) {
	var req postTextRequest
	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return "", errResponseWritten
	}
	return req.Text, nil
}

// ListPosts handles GET /api/posts
// @Summary List posts
// @Description List every post, newest first, with its like count
// @Tags posts
// @Produce json
// @Success 200 {array} server.postSummaryResponse
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(presentPostSummaries(posts))
}

// GetPost handles GET /api/posts/:id
// @Summary Get post
// @Description Get one post with the likes it has received
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} server.postDetailResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(presentPostDetail(post))
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Description Publish a post as the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body server.postTextRequest true "Post text"
// @Success 201 {object} server.postDetailResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	text, err := bindPostText(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.Create(c.UserContext(), actorFrom(c), text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(presentPostDetail(post))
}

// UpdatePost handles PUT and PATCH /api/posts/:id. Text is the only mutable
// field, so both verbs require it. An absent or unreadable body reaches the
// service as blank text, which keeps 404 and 403 ahead of the 400.
// @Summary Update post
// @Description Replace the text of a post the authenticated user owns
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body server.postTextRequest true "Post text"
// @Success 200 {object} server.postDetailResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
// @Router /posts/{id} [patch]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req postTextRequest
	if err := c.BodyParser(&req); err != nil {
		req.Text = ""
	}

	post, err := s.postService.Update(c.UserContext(), actorFrom(c), id, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(presentPostDetail(post))
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Description Delete a post the authenticated user owns, together with its likes
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles GET /api/posts/:id/like
// @Summary Toggle like
// @Description Like the post, or remove the like if the user already gave one
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{detail=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/like [get]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postService.ToggleLike(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	msg := msgLikeRemoved
	if result.Liked {
		msg = msgLiked
	}
	return c.JSON(fiber.Map{"detail": msg})
}
