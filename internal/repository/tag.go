package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
	GetOrCreateBatch(ctx context.Context, names []string) ([]models.Tag, error)
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context, limit, offset int) ([]models.Tag, error)
	GetPosts(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	defer observability.TrackQuery("create", "tags")()
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return mapError(err, "Tag", 0)
	}
	return nil
}

// GetOrCreate inserts the tag if missing and returns the stored row either way.
// ON CONFLICT DO NOTHING keeps concurrent creators from failing on the
// unique name index; the follow-up read resolves the winning row.
func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	defer observability.TrackQuery("get_or_create", "tags")()

	tag := models.Tag{Name: name}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
		return nil, mapError(err, "Tag", 0)
	}

	var existing models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err != nil {
		return nil, mapError(err, "Tag", name)
	}
	return &existing, nil
}

// GetOrCreateBatch resolves every name to a stored tag, creating the missing ones.
func (r *tagRepository) GetOrCreateBatch(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	defer observability.TrackQuery("get_or_create_batch", "tags")()

	for _, name := range names {
		tag := models.Tag{Name: name}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			return nil, mapError(err, "Tag", 0)
		}
	}

	var tags []models.Tag
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, mapError(err, "Tag", 0)
	}
	return tags, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	key := cache.TagKey(id)

	err := cache.Aside(ctx, key, &tag, cache.TagTTL, func() error {
		defer observability.TrackQuery("get_by_id", "tags")()
		if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
			return mapError(err, "Tag", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByName returns the tag with the given name, or (nil, nil) when absent.
func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	defer observability.TrackQuery("get_by_name", "tags")()
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError(err, "Tag", name)
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context, limit, offset int) ([]models.Tag, error) {
	var tags []models.Tag
	defer observability.TrackQuery("list", "tags")()
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&tags).Error; err != nil {
		return nil, mapError(err, "Tag", 0)
	}
	return tags, nil
}

// GetPosts expands the join table in the other direction: every post with a
// post_tags row pointing at the tag.
func (r *tagRepository) GetPosts(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	defer observability.TrackQuery("get_posts", "tags")()
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, mapError(err, "Tag", tagID)
	}
	return posts, nil
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "tags")()
	if err := r.db.WithContext(ctx).Delete(&models.Tag{}, id).Error; err != nil {
		return mapError(err, "Tag", id)
	}
	cache.InvalidateTag(ctx, id)
	return nil
}
