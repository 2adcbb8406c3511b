package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	CreateForAuthor(ctx context.Context, authorID uint, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	GetTags(ctx context.Context, postID uint) ([]models.Tag, error)
	AttachTag(ctx context.Context, postID, tagID uint) error
	DetachTag(ctx context.Context, postID, tagID uint) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return mapError(err, "Author", post.AuthorID)
	}
	return nil
}

// CreateForAuthor inserts the post under the given author, filling in the
// foreign key. The author must exist.
func (r *postRepository) CreateForAuthor(ctx context.Context, authorID uint, post *models.Post) error {
	post.AuthorID = authorID
	return r.Create(ctx, post)
}

// GetByID loads the post together with its author (parent lookup via the
// post's foreign key).
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		defer observability.TrackQuery("get_by_id", "posts")()
		if err := r.db.WithContext(ctx).
			Preload("Author").
			First(&post, id).Error; err != nil {
			return mapError(err, "Post", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByAuthorID returns the posts whose author_id matches, newest first.
func (r *postRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	defer observability.TrackQuery("get_by_author_id", "posts")()
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, mapError(err, "Post", 0)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	defer observability.TrackQuery("list", "posts")()
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, mapError(err, "Post", 0)
	}
	return posts, nil
}

// GetTags expands the join table: every tag with a post_tags row pointing
// at the post.
func (r *postRepository) GetTags(ctx context.Context, postID uint) ([]models.Tag, error) {
	var tags []models.Tag
	key := cache.PostTagsKey(postID)

	err := cache.Aside(ctx, key, &tags, cache.PostTagsTTL, func() error {
		defer observability.TrackQuery("get_tags", "posts")()
		if err := r.db.WithContext(ctx).
			Model(&models.Tag{}).
			Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
			Where("post_tags.post_id = ?", postID).
			Order("tags.name ASC").
			Find(&tags).Error; err != nil {
			return mapError(err, "Post", postID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// AttachTag records one (post, tag) association. The join table has no
// composite unique constraint, so duplicates are filtered with a lookup
// before the insert.
func (r *postRepository) AttachTag(ctx context.Context, postID, tagID uint) error {
	defer observability.TrackQuery("attach_tag", "post_tags")()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostTag{}).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Count(&count).Error; err != nil {
		return mapError(err, "Post", postID)
	}
	if count > 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&models.PostTag{PostID: postID, TagID: tagID}).Error; err != nil {
		return mapError(err, "Post", postID)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateTag(ctx, tagID)
	return nil
}

func (r *postRepository) DetachTag(ctx context.Context, postID, tagID uint) error {
	defer observability.TrackQuery("detach_tag", "post_tags")()
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Delete(&models.PostTag{}).Error; err != nil {
		return mapError(err, "Post", postID)
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateTag(ctx, tagID)
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return mapError(err, "Post", post.ID)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return mapError(err, "Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
