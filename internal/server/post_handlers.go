package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. The author comes from the body here;
// POST /api/authors/:id/posts takes it from the path instead.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		AuthorID uint     `json:"author_id"`
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Tags     []string `json:"tags,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	posts, err := s.postRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id. The response embeds the post's author.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(post)
}

// GetPostTags handles GET /api/posts/:id/tags
func (s *Server) GetPostTags(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}

	tags, err := s.postRepo.GetTags(ctx, id)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(tags)
}

// TagPost handles POST /api/posts/:id/tags. Tags are referenced by name and
// created on first use.
func (s *Server) TagPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Tags []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tags, err := s.postService.TagPost(ctx, id, req.Tags)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tags)
}

// UntagPost handles DELETE /api/posts/:id/tags/:tagId
func (s *Server) UntagPost(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	tagID, err := s.parseID(c, "tagId")
	if err != nil {
		return nil
	}

	if err := s.postService.UntagPost(ctx, postID, tagID); err != nil {
		return respondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		PostID:  id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
