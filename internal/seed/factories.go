// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateAuthor constructs and persists a sample `models.Author`.
// Optional override functions may modify the generated author before saving.
func (f *Factory) CreateAuthor(overrides ...func(*models.Author)) (*models.Author, error) {
	author := &models.Author{
		Name: gofakeit.Name(),
	}

	for _, override := range overrides {
		override(author)
	}

	if f.opts.DryRun {
		f.nextID++
		author.ID = f.nextID
		log.Printf("[dry-run] CreateAuthor: %+v", author)
		return author, nil
	}

	if err := f.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// CreateProfile constructs and persists a `models.Profile` for the given
// author. Callers are responsible for not creating a second profile for the
// same author.
func (f *Factory) CreateProfile(author *models.Author, overrides ...func(*models.Profile)) (*models.Profile, error) {
	username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(10, 999))
	profile := &models.Profile{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		Facebook:  fmt.Sprintf("https://facebook.com/%s", username),
		AuthorID:  author.ID,
	}

	for _, override := range overrides {
		override(profile)
	}

	if f.opts.DryRun {
		f.nextID++
		profile.ID = f.nextID
		log.Printf("[dry-run] CreateProfile: author=%d username=%q", profile.AuthorID, profile.Username)
		return profile, nil
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// BuildPost constructs a post for the given author without persisting it.
// Useful for batching.
func (f *Factory) BuildPost(author *models.Author, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		AuthorID: author.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample `models.Post` for the given author.
func (f *Factory) CreatePost(author *models.Author, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: author=%d title=%q", post.AuthorID, post.Title)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateTag looks up or creates the named tag. Names collide on purpose
// during seeding so reuse is the common path.
func (f *Factory) CreateTag(name string) (*models.Tag, error) {
	if f.opts.DryRun {
		f.nextID++
		return &models.Tag{ID: f.nextID, Name: name}, nil
	}

	var tag models.Tag
	if err := f.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// AttachTag persists a (post, tag) join row. Duplicate pairs are skipped
// since the join table carries no composite constraint.
func (f *Factory) AttachTag(post *models.Post, tag *models.Tag) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] AttachTag: post=%d tag=%d", post.ID, tag.ID)
		return nil
	}

	var count int64
	if err := f.db.Model(&models.PostTag{}).
		Where("post_id = ? AND tag_id = ?", post.ID, tag.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Create(&models.PostTag{PostID: post.ID, TagID: tag.ID}).Error
}
