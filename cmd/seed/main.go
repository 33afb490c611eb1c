// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"log"

	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/seed"
)

func main() {
	opts := seed.DefaultOptions
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.Categories, "categories", opts.Categories, "number of categories to create")
	flag.IntVar(&opts.Locations, "locations", opts.Locations, "number of locations to create")
	flag.IntVar(&opts.Posts, "posts", opts.Posts, "number of posts to create")
	flag.IntVar(&opts.Comments, "comments", opts.Comments, "number of comments to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
