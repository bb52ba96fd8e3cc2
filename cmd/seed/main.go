// Command main runs the database seeder for StrictlyAlbums.
package main

import (
	"flag"
	"log"

	"github.com/cgsanchez223/strictylalbums-be/internal/config"
	"github.com/cgsanchez223/strictylalbums-be/internal/database"
	"github.com/cgsanchez223/strictylalbums-be/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	albumPool := flag.Int("albums", 100, "Size of the shared album pool")
	ratingsPerUser := flag.Int("ratings", 12, "Ratings per user")
	listsPerUser := flag.Int("lists", 2, "Lists per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Build entities without writing to the database")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d albums, %d ratings/user, %d lists/user, clean=%v\n",
		*numUsers, *albumPool, *ratingsPerUser, *listsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{DryRun: *dryRun})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedRatings(users, *albumPool, *ratingsPerUser); err != nil {
		log.Fatalf("Rating seeding failed: %v", err)
	}
	if err := s.SeedLists(users, *listsPerUser); err != nil {
		log.Fatalf("List seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
