package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAuthors  int
	NumPosts    int
	NumTags     int
	ShouldClean bool
	// MaxDays bounds how far back generated post timestamps spread.
	MaxDays int
	// DryRun logs what would be created without touching the database.
	DryRun bool
}

// tagNames is the curated pool new tags are drawn from. Drawing from a
// fixed pool means posts share tags, which is what makes the join table
// interesting to query.
var tagNames = []string{
	"go", "gorm", "postgres", "sqlite", "databases", "associations",
	"migrations", "testing", "http", "rest", "caching", "redis",
	"observability", "tracing", "performance", "tutorials", "recipes",
	"travel", "music", "books", "photography", "gardening", "fitness",
	"cooking", "history", "science", "art", "philosophy", "finance",
	"startups",
}

// Seed populates the database with demo data: authors with optional
// profiles, posts under those authors, and a shared pool of tags attached
// through the join table.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d authors, %d posts and %d tags...",
		opts.NumAuthors, opts.NumPosts, opts.NumTags)

	if opts.ShouldClean {
		if opts.DryRun {
			log.Println("[dry-run] 🗑️  Would clear existing data")
		} else if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	authors, err := createAuthors(factory, opts.NumAuthors)
	if err != nil {
		return fmt.Errorf("failed to create authors: %w", err)
	}
	log.Printf("✓ %d authors created", len(authors))

	tags, err := createTags(factory, opts.NumTags)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}
	log.Printf("✓ %d tags available", len(tags))

	posts, err := createPosts(factory, authors, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := attachTags(factory, posts, tags); err != nil {
		return fmt.Errorf("failed to attach tags: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	return database.TruncateAllTables(db)
}

// createAuthors builds the requested number of authors. Roughly two out of
// three get a profile, the rest stay bare so the optional side of the
// one-to-one shows up in seeded data.
func createAuthors(factory *Factory, count int) ([]*models.Author, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	authors := make([]*models.Author, 0, count)

	for i := 0; i < count; i++ {
		author, err := factory.CreateAuthor()
		if err != nil {
			log.Printf("Failed to create author: %v", err)
			continue
		}
		authors = append(authors, author)

		if r.Float32() < 0.66 {
			if _, err := factory.CreateProfile(author); err != nil {
				log.Printf("Failed to create profile for author %d: %v", author.ID, err)
			}
		}

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d authors...", i)
		}
	}

	if len(authors) == 0 {
		return nil, fmt.Errorf("no authors could be created")
	}
	return authors, nil
}

func createTags(factory *Factory, count int) ([]*models.Tag, error) {
	if count <= 0 || count > len(tagNames) {
		count = len(tagNames)
	}

	tags := make([]*models.Tag, 0, count)
	for _, name := range tagNames[:count] {
		tag, err := factory.CreateTag(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func createPosts(factory *Factory, authors []*models.Author, count int) ([]*models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		author := authors[r.Intn(len(authors))]
		posts = append(posts, factory.BuildPost(author))
	}

	// chunked batch insert keeps large seeds fast
	const chunk = 200
	for start := 0; start < len(posts); start += chunk {
		end := start + chunk
		if end > len(posts) {
			end = len(posts)
		}
		if err := factory.CreatePostsBatch(posts[start:end]); err != nil {
			return nil, err
		}
		if start > 0 {
			log.Printf("Created %d posts...", start)
		}
	}

	return posts, nil
}

// attachTags gives each post zero to four tags drawn from the shared pool.
func attachTags(factory *Factory, posts []*models.Post, tags []*models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	attached := 0
	for _, post := range posts {
		n := r.Intn(5)
		for j := 0; j < n; j++ {
			tag := tags[r.Intn(len(tags))]
			if err := factory.AttachTag(post, tag); err != nil {
				return err
			}
			attached++
		}
	}
	log.Printf("✓ %d tag attachments created", attached)
	return nil
}
