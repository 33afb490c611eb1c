package seed

import (
	"fmt"
	"log"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users      int
	Categories int
	Locations  int
	Posts      int
	Comments   int
}

// DefaultOptions is a small but representative demo data set: a few drafts
// and scheduled posts mixed in with published ones.
var DefaultOptions = Options{
	Users:      5,
	Categories: 4,
	Locations:  3,
	Posts:      30,
	Comments:   60,
}

// Run populates the database with demo data.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}

	categories := make([]*models.Category, 0, opts.Categories)
	for i := 0; i < opts.Categories; i++ {
		c, err := f.CreateCategory(func(c *models.Category) {
			// one unpublished category to exercise feed filtering
			if i == opts.Categories-1 {
				c.IsPublished = false
			}
		})
		if err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
		categories = append(categories, c)
	}

	locations := make([]*models.Location, 0, opts.Locations)
	for i := 0; i < opts.Locations; i++ {
		l, err := f.CreateLocation()
		if err != nil {
			return fmt.Errorf("seed location: %w", err)
		}
		locations = append(locations, l)
	}

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		author := users[f.rnd.Intn(len(users))]
		p, err := f.CreatePost(author, func(p *models.Post) {
			if len(categories) > 0 && f.rnd.Intn(10) > 0 {
				p.CategoryID = &categories[f.rnd.Intn(len(categories))].ID
			}
			if len(locations) > 0 && f.rnd.Intn(10) > 2 {
				p.LocationID = &locations[f.rnd.Intn(len(locations))].ID
			}
			switch f.rnd.Intn(10) {
			case 0:
				p.IsPublished = false // draft
			case 1:
				p.PubDate = p.PubDate.AddDate(0, 0, 120) // scheduled
			}
		})
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, p)
	}

	for i := 0; i < opts.Comments; i++ {
		post := posts[f.rnd.Intn(len(posts))]
		author := users[f.rnd.Intn(len(users))]
		if _, err := f.CreateComment(post, author); err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
	}

	log.Printf("Seeded %d users, %d categories, %d locations, %d posts, %d comments",
		len(users), len(categories), len(locations), len(posts), opts.Comments)
	return nil
}
