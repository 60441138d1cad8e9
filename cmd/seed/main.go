// Command main runs the database seeder for Snapgram.
package main

import (
	"flag"
	"log"

	"snapgram/internal/config"
	"snapgram/internal/database"
	"snapgram/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 0, "Number of users to create (overrides profile)")
	numPosts := flag.Int("posts", 0, "Number of posts to create (overrides profile)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	profilePath := flag.String("profile", "", "Path to a YAML seed profile")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	profile := seed.DefaultProfile()
	if *profilePath != "" {
		var err error
		profile, err = seed.LoadProfile(*profilePath)
		if err != nil {
			log.Fatalf("Failed to load seed profile: %v", err)
		}
		log.Printf("Loaded seed profile: %s", *profilePath)
	}
	if *numUsers > 0 {
		profile.Users = *numUsers
	}
	if *numPosts > 0 {
		profile.Posts = *numPosts
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}
	if err := s.Run(profile); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
