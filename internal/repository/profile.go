package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for author profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	CreateForAuthor(ctx context.Context, authorID uint, profile *models.Profile) error
	GetByID(ctx context.Context, id uint) (*models.Profile, error)
	GetByAuthorID(ctx context.Context, authorID uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, id uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	defer observability.TrackQuery("create", "profiles")()
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return mapError(err, "Author", profile.AuthorID)
	}
	return nil
}

// CreateForAuthor inserts the profile under the given author, filling in the
// foreign key. One profile per author is assumed, not enforced: callers that
// care should check GetByAuthorID first.
func (r *profileRepository) CreateForAuthor(ctx context.Context, authorID uint, profile *models.Profile) error {
	profile.AuthorID = authorID
	return r.Create(ctx, profile)
}

// GetByID loads the profile together with its author.
func (r *profileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	defer observability.TrackQuery("get_by_id", "profiles")()
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&profile, id).Error; err != nil {
		return nil, mapError(err, "Profile", id)
	}
	return &profile, nil
}

// GetByAuthorID returns the author's profile, or (nil, nil) when the author
// has none.
func (r *profileRepository) GetByAuthorID(ctx context.Context, authorID uint) (*models.Profile, error) {
	var profile models.Profile
	defer observability.TrackQuery("get_by_author_id", "profiles")()
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError(err, "Profile", authorID)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	defer observability.TrackQuery("update", "profiles")()
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return mapError(err, "Profile", profile.ID)
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "profiles")()
	if err := r.db.WithContext(ctx).Delete(&models.Profile{}, id).Error; err != nil {
		return mapError(err, "Profile", id)
	}
	return nil
}
