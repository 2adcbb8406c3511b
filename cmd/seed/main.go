// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numAuthors := flag.Int("authors", 25, "Number of authors to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	numTags := flag.Int("tags", 0, "Number of tags from the pool (0 = all)")
	maxDays := flag.Int("max-days", 90, "Spread post timestamps over this many days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d authors, %d posts, clean=%v\n", *numAuthors, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(db, seed.Options{
		NumAuthors:  *numAuthors,
		NumPosts:    *numPosts,
		NumTags:     *numTags,
		ShouldClean: *shouldClean,
		MaxDays:     *maxDays,
		DryRun:      *dryRun,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
}
