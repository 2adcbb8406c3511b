package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateAuthor(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockAuthorRepository)
	s := &Server{authorRepo: mockRepo}
	app.Post("/authors", s.CreateAuthor)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"name": "Jane Doe"},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Name",
			body:           map[string]string{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/authors", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetAuthor(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockAuthorRepository)
	s := &Server{authorRepo: mockRepo}
	app.Get("/authors/:id", s.GetAuthor)

	t.Run("Includes Profile When Present", func(t *testing.T) {
		mockRepo.On("GetByIDWithProfile", mock.Anything, uint(1)).
			Return(&models.Author{
				ID:      1,
				Name:    "Jane Doe",
				Profile: &models.Profile{ID: 2, Username: "jdoe", AuthorID: 1},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/authors/1", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Author
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		if assert.NotNil(t, got.Profile) {
			assert.Equal(t, "jdoe", got.Profile.Username)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo.On("GetByIDWithProfile", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("Author", 99)).Once()

		req := httptest.NewRequest(http.MethodGet, "/authors/99", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/authors/abc", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetAuthorPosts(t *testing.T) {
	app := fiber.New()
	mockAuthors := new(MockAuthorRepository)
	mockPosts := new(MockPostRepository)
	s := &Server{authorRepo: mockAuthors, postRepo: mockPosts}
	app.Get("/authors/:id/posts", s.GetAuthorPosts)

	t.Run("Returns Children", func(t *testing.T) {
		mockAuthors.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Author{ID: 1}, nil).Once()
		mockPosts.On("GetByAuthorID", mock.Anything, uint(1), 20, 0).
			Return([]*models.Post{
				{ID: 10, Title: "First", AuthorID: 1},
				{ID: 11, Title: "Second", AuthorID: 1},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/authors/1/posts", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got []models.Post
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Len(t, got, 2)
	})

	t.Run("Missing Parent Is 404", func(t *testing.T) {
		mockAuthors.On("GetByID", mock.Anything, uint(5)).
			Return(nil, models.NewNotFoundError("Author", 5)).Once()

		req := httptest.NewRequest(http.MethodGet, "/authors/5/posts", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateAuthorPost(t *testing.T) {
	app := fiber.New()
	mockPosts := new(MockPostRepository)
	mockTags := new(MockTagRepository)
	s := &Server{
		postRepo:    mockPosts,
		tagRepo:     mockTags,
		postService: service.NewPostService(mockPosts, mockTags),
	}
	app.Post("/authors/:id/posts", s.CreateAuthorPost)

	t.Run("Fills Foreign Key From Path", func(t *testing.T) {
		mockPosts.On("CreateForAuthor", mock.Anything, uint(7), mock.Anything).
			Run(func(args mock.Arguments) {
				post := args.Get(2).(*models.Post)
				post.ID = 1
				post.AuthorID = 7
			}).
			Return(nil).Once()

		body, _ := json.Marshal(map[string]string{
			"title":   "Hello",
			"content": "World",
		})
		req := httptest.NewRequest(http.MethodPost, "/authors/7/posts", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got models.Post
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, uint(7), got.AuthorID)
		mockPosts.AssertExpectations(t)
	})

	t.Run("Missing Author Is 400", func(t *testing.T) {
		mockPosts.On("CreateForAuthor", mock.Anything, uint(999), mock.Anything).
			Return(models.NewValidationError("Referenced Author does not exist")).Once()

		body, _ := json.Marshal(map[string]string{"title": "Orphan"})
		req := httptest.NewRequest(http.MethodPost, "/authors/999/posts", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAuthorProfileHandlers(t *testing.T) {
	app := fiber.New()
	mockAuthors := new(MockAuthorRepository)
	mockProfiles := new(MockProfileRepository)
	s := &Server{authorRepo: mockAuthors, profileRepo: mockProfiles}
	app.Get("/authors/:id/profile", s.GetAuthorProfile)
	app.Put("/authors/:id/profile", s.UpsertAuthorProfile)

	t.Run("Get Missing Profile Is 404", func(t *testing.T) {
		mockAuthors.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Author{ID: 1}, nil).Once()
		mockProfiles.On("GetByAuthorID", mock.Anything, uint(1)).
			Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/authors/1/profile", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Put Creates On First Write", func(t *testing.T) {
		mockAuthors.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Author{ID: 1}, nil).Once()
		mockProfiles.On("GetByAuthorID", mock.Anything, uint(1)).
			Return(nil, nil).Once()
		mockProfiles.On("CreateForAuthor", mock.Anything, uint(1), mock.Anything).
			Return(nil).Once()

		body, _ := json.Marshal(map[string]string{
			"username": "jdoe",
			"email":    "jdoe@example.com",
		})
		req := httptest.NewRequest(http.MethodPut, "/authors/1/profile", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockProfiles.AssertExpectations(t)
	})

	t.Run("Put Updates Existing", func(t *testing.T) {
		mockAuthors.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Author{ID: 1}, nil).Once()
		mockProfiles.On("GetByAuthorID", mock.Anything, uint(1)).
			Return(&models.Profile{ID: 4, Username: "old", AuthorID: 1}, nil).Once()
		mockProfiles.On("Update", mock.Anything, mock.Anything).
			Return(nil).Once()

		body, _ := json.Marshal(map[string]string{
			"username": "newname",
			"email":    "new@example.com",
		})
		req := httptest.NewRequest(http.MethodPut, "/authors/1/profile", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Profile
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "newname", got.Username)
		assert.Equal(t, uint(4), got.ID)
	})
}
