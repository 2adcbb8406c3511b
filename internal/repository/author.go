package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// AuthorRepository defines persistence operations for authors.
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id uint) (*models.Author, error)
	GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.Author, error)
	GetByIDWithProfile(ctx context.Context, id uint) (*models.Author, error)
	List(ctx context.Context, limit, offset int) ([]models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uint) error
}

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository returns a new AuthorRepository implementation.
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	defer observability.TrackQuery("create", "authors")()
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return mapError(err, "Author", 0)
	}
	return nil
}

func (r *authorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	key := cache.AuthorKey(id)

	err := cache.Aside(ctx, key, &author, cache.AuthorTTL, func() error {
		defer observability.TrackQuery("get_by_id", "authors")()
		if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
			return mapError(err, "Author", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetByIDWithPosts loads the author together with their most recent posts.
func (r *authorRepository) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.Author, error) {
	var author models.Author
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	defer observability.TrackQuery("get_by_id_with_posts", "authors")()
	if err := r.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(limit)
		}).
		First(&author, id).Error; err != nil {
		return nil, mapError(err, "Author", id)
	}
	return &author, nil
}

// GetByIDWithProfile loads the author together with their profile, if any.
// The Profile field stays nil when no profile row exists.
func (r *authorRepository) GetByIDWithProfile(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author

	defer observability.TrackQuery("get_by_id_with_profile", "authors")()
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&author, id).Error; err != nil {
		return nil, mapError(err, "Author", id)
	}
	return &author, nil
}

func (r *authorRepository) List(ctx context.Context, limit, offset int) ([]models.Author, error) {
	var authors []models.Author
	defer observability.TrackQuery("list", "authors")()
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error; err != nil {
		return nil, mapError(err, "Author", 0)
	}
	return authors, nil
}

func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	defer observability.TrackQuery("update", "authors")()
	if err := r.db.WithContext(ctx).Save(author).Error; err != nil {
		return mapError(err, "Author", author.ID)
	}
	cache.InvalidateAuthor(ctx, author.ID)
	r.invalidateCachedPosts(ctx, author.ID)
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "authors")()
	if err := r.db.WithContext(ctx).Delete(&models.Author{}, id).Error; err != nil {
		return mapError(err, "Author", id)
	}
	cache.InvalidateAuthor(ctx, id)
	r.invalidateCachedPosts(ctx, id)
	return nil
}

// invalidateCachedPosts drops the author's cached posts. Cached posts embed
// the preloaded author, so an author write would otherwise serve a stale
// name for the rest of the post TTL.
func (r *authorRepository) invalidateCachedPosts(ctx context.Context, authorID uint) {
	if cache.GetClient() == nil {
		return
	}
	var postIDs []uint
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Pluck("id", &postIDs).Error; err != nil {
		return
	}
	for _, postID := range postIDs {
		cache.InvalidatePost(ctx, postID)
	}
}
