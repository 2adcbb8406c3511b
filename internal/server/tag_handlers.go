package server

import (
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateTag handles POST /api/tags. Creating an existing name returns the
// stored tag instead of failing.
func (s *Server) CreateTag(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name := validation.NormalizeTagName(req.Name)
	if err := validation.ValidateTagName(name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	tag, err := s.tagRepo.GetOrCreate(ctx, name)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 50)

	tags, err := s.tagRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(tag)
}

// GetTagPosts handles GET /api/tags/:id/posts, expanding the join table in
// the tag-to-posts direction.
func (s *Server) GetTagPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.tagRepo.GetByID(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}

	page := parsePagination(c, 20)
	posts, err := s.tagRepo.GetPosts(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(posts)
}
