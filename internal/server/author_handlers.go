package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAuthor handles POST /api/authors
func (s *Server) CreateAuthor(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	author := &models.Author{Name: req.Name}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(author)
}

// GetAuthors handles GET /api/authors
func (s *Server) GetAuthors(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	authors, err := s.authorRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(authors)
}

// GetAuthor handles GET /api/authors/:id. The optional profile is included
// when present and stays null otherwise.
func (s *Server) GetAuthor(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	author, err := s.authorRepo.GetByIDWithProfile(ctx, id)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(author)
}

// GetAuthorPosts handles GET /api/authors/:id/posts
func (s *Server) GetAuthorPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// confirm the author exists so a missing parent is a 404, not an empty list
	if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}

	page := parsePagination(c, 20)
	posts, err := s.postRepo.GetByAuthorID(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(posts)
}

// CreateAuthorPost handles POST /api/authors/:id/posts. The author id from
// the path fills the post's foreign key.
func (s *Server) CreateAuthorPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: id,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		return respondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetAuthorProfile handles GET /api/authors/:id/profile
func (s *Server) GetAuthorProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}

	profile, err := s.profileRepo.GetByAuthorID(ctx, id)
	if err != nil {
		return respondWithAppError(c, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Profile for author", id))
	}

	return c.JSON(profile)
}

// UpsertAuthorProfile handles PUT /api/authors/:id/profile. It creates the
// profile on first write and updates it afterwards, keeping the one-to-one
// shape without a database constraint.
func (s *Server) UpsertAuthorProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Bio       string `json:"bio,omitempty"`
		AvatarURL string `json:"avatar_url,omitempty"`
		Facebook  string `json:"facebook,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and email are required"))
	}

	if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}

	existing, err := s.profileRepo.GetByAuthorID(ctx, id)
	if err != nil {
		return respondWithAppError(c, err)
	}

	if existing == nil {
		profile := &models.Profile{
			Username:  req.Username,
			Email:     req.Email,
			Bio:       req.Bio,
			AvatarURL: req.AvatarURL,
			Facebook:  req.Facebook,
		}
		if err := s.profileRepo.CreateForAuthor(ctx, id, profile); err != nil {
			return respondWithAppError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(profile)
	}

	existing.Username = req.Username
	existing.Email = req.Email
	existing.Bio = req.Bio
	existing.AvatarURL = req.AvatarURL
	existing.Facebook = req.Facebook
	if err := s.profileRepo.Update(ctx, existing); err != nil {
		return respondWithAppError(c, err)
	}

	return c.JSON(existing)
}

// DeleteAuthor handles DELETE /api/authors/:id
func (s *Server) DeleteAuthor(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}
	if err := s.authorRepo.Delete(ctx, id); err != nil {
		return respondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
