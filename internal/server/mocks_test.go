package server

import (
	"context"

	"inkwell/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockAuthorRepository is a mock of the AuthorRepository interface
type MockAuthorRepository struct {
	mock.Mock
}

func (m *MockAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *MockAuthorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.Author, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) GetByIDWithProfile(ctx context.Context, id uint) (*models.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) List(ctx context.Context, limit, offset int) ([]models.Author, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Author), args.Error(1)
}

func (m *MockAuthorRepository) Update(ctx context.Context, author *models.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *MockAuthorRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) CreateForAuthor(ctx context.Context, authorID uint, post *models.Post) error {
	args := m.Called(ctx, authorID, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, authorID, limit, offset)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetTags(ctx context.Context, postID uint) ([]models.Tag, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockPostRepository) AttachTag(ctx context.Context, postID, tagID uint) error {
	args := m.Called(ctx, postID, tagID)
	return args.Error(0)
}

func (m *MockPostRepository) DetachTag(ctx context.Context, postID, tagID uint) error {
	args := m.Called(ctx, postID, tagID)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProfileRepository is a mock of the ProfileRepository interface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) CreateForAuthor(ctx context.Context, authorID uint, profile *models.Profile) error {
	args := m.Called(ctx, authorID, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByAuthorID(ctx context.Context, authorID uint) (*models.Profile, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTagRepository is a mock of the TagRepository interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetOrCreateBatch(ctx context.Context, names []string) ([]models.Tag, error) {
	args := m.Called(ctx, names)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, limit, offset int) ([]models.Tag, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetPosts(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, tagID, limit, offset)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
