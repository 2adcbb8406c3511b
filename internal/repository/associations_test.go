package repository

import (
	"context"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database with the full schema so the
// association paths run against real foreign keys and a real join table.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.RegisterJoinTables(db))
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestAssociations_AuthorPosts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authors := NewAuthorRepository(db)
	posts := NewPostRepository(db)

	author := &models.Author{Name: "Jane Doe"}
	require.NoError(t, authors.Create(ctx, author))
	require.NotZero(t, author.ID)

	first := &models.Post{Title: "First", Content: "one"}
	second := &models.Post{Title: "Second", Content: "two"}
	require.NoError(t, posts.CreateForAuthor(ctx, author.ID, first))
	require.NoError(t, posts.CreateForAuthor(ctx, author.ID, second))

	// child -> parent through the foreign key
	got, err := posts.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, author.ID, got.AuthorID)
	require.Equal(t, "Jane Doe", got.Author.Name)

	// parent -> children
	children, err := posts.GetByAuthorID(ctx, author.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, children, 2)
	for _, p := range children {
		require.Equal(t, author.ID, p.AuthorID)
	}

	// same set via the preloaded parent
	loaded, err := authors.GetByIDWithPosts(ctx, author.ID, 20)
	require.NoError(t, err)
	require.Len(t, loaded.Posts, 2)
}

func TestAssociations_PostTagsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authors := NewAuthorRepository(db)
	posts := NewPostRepository(db)
	tags := NewTagRepository(db)

	author := &models.Author{Name: "Jane Doe"}
	require.NoError(t, authors.Create(ctx, author))

	post := &models.Post{Title: "Tagged"}
	require.NoError(t, posts.CreateForAuthor(ctx, author.ID, post))

	goTag, err := tags.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	gormTag, err := tags.GetOrCreate(ctx, "gorm")
	require.NoError(t, err)

	require.NoError(t, posts.AttachTag(ctx, post.ID, goTag.ID))
	require.NoError(t, posts.AttachTag(ctx, post.ID, gormTag.ID))

	// attaching the same pair again leaves a single join row
	require.NoError(t, posts.AttachTag(ctx, post.ID, goTag.ID))
	var joinRows int64
	require.NoError(t, db.Model(&models.PostTag{}).
		Where("post_id = ? AND tag_id = ?", post.ID, goTag.ID).
		Count(&joinRows).Error)
	require.EqualValues(t, 1, joinRows)

	// post -> tags
	postTags, err := posts.GetTags(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, postTags, 2)
	names := []string{postTags[0].Name, postTags[1].Name}
	require.ElementsMatch(t, []string{"go", "gorm"}, names)

	// tag -> posts
	tagged, err := tags.GetPosts(ctx, goTag.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	require.Equal(t, post.ID, tagged[0].ID)

	// detach removes the pair in both directions
	require.NoError(t, posts.DetachTag(ctx, post.ID, goTag.ID))
	postTags, err = posts.GetTags(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, postTags, 1)
	require.Equal(t, "gorm", postTags[0].Name)
}

func TestAssociations_TagGetOrCreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tags := NewTagRepository(db)

	first, err := tags.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	second, err := tags.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("name = ?", "go").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAssociations_AuthorProfile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authors := NewAuthorRepository(db)
	profiles := NewProfileRepository(db)

	author := &models.Author{Name: "Jane Doe"}
	require.NoError(t, authors.Create(ctx, author))

	// no profile yet
	got, err := profiles.GetByAuthorID(ctx, author.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	loaded, err := authors.GetByIDWithProfile(ctx, author.ID)
	require.NoError(t, err)
	require.Nil(t, loaded.Profile)

	profile := &models.Profile{Username: "jdoe", Email: "jdoe@example.com"}
	require.NoError(t, profiles.CreateForAuthor(ctx, author.ID, profile))
	require.Equal(t, author.ID, profile.AuthorID)

	got, err = profiles.GetByAuthorID(ctx, author.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "jdoe", got.Username)

	loaded, err = authors.GetByIDWithProfile(ctx, author.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Profile)
	require.Equal(t, "jdoe", loaded.Profile.Username)

	// profile -> author through the foreign key
	byID, err := profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", byID.Author.Name)
}

// Cached posts embed the preloaded author, so author writes must drop those
// entries along with the author's own key.
func TestAssociations_AuthorUpdateInvalidatesCachedPosts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	authors := NewAuthorRepository(db)
	posts := NewPostRepository(db)

	author := &models.Author{Name: "Jane Doe"}
	require.NoError(t, authors.Create(ctx, author))
	post := &models.Post{Title: "Caching", Content: "body"}
	require.NoError(t, posts.CreateForAuthor(ctx, author.ID, post))

	// populate the cache with the embedded author
	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", got.Author.Name)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	author.Name = "Jane Smith"
	require.NoError(t, authors.Update(ctx, author))
	require.False(t, mr.Exists(cache.PostKey(post.ID)))

	// the next read picks up the new name
	got, err = posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane Smith", got.Author.Name)
}
