// Package service implements the application's business rules on top of the
// repository layer: feed visibility, ownership checks, and author stamping.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/repository"

	"gorm.io/gorm"
)

const (
	maxTitleLen = 256
	maxTextLen  = 50000
)

type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

type CreatePostInput struct {
	AuthorID    uint
	Title       string
	Text        string
	PubDate     time.Time
	ImageURL    string
	IsPublished bool
	CategoryID  *uint
	LocationID  *uint
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Text        string
	PubDate     *time.Time
	ImageURL    *string
	IsPublished *bool
	CategoryID  *uint
	LocationID  *uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

// ListFeed returns the public home feed.
func (s *PostService) ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListPublished(ctx, limit, offset)
}

// GetPost fetches a single post applying the detail visibility rule: an
// unpublished post is visible only to its author; for anyone else the result
// is NotFound so existence is not revealed. currentUserID of 0 means
// anonymous.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, err
	}
	if !post.IsPublished && post.AuthorID != currentUserID {
		return nil, models.NewNotFoundError("Post")
	}
	return post, nil
}

// ListCategoryFeed resolves a category by slug and returns its public feed.
// An absent or unpublished category yields NotFound.
func (s *PostService) ListCategoryFeed(ctx context.Context, slug string, limit, offset int) (*models.Category, []*models.Post, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.NewNotFoundError("Category")
		}
		return nil, nil, err
	}
	if !category.IsPublished {
		return nil, nil, models.NewNotFoundError("Category")
	}

	posts, err := s.postRepo.ListPublishedByCategory(ctx, category.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return category, posts, nil
}

// CreatePost validates input and persists a new post with the requester
// stamped as author. The author is never taken from client input.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 256 characters)")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxTextLen {
		return nil, models.NewValidationError("Text too long (max 50000 characters)")
	}

	pubDate := in.PubDate
	if pubDate.IsZero() {
		pubDate = time.Now().UTC()
	}

	if err := s.checkReferences(ctx, in.CategoryID, in.LocationID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       in.Title,
		Text:        in.Text,
		PubDate:     pubDate,
		ImageURL:    in.ImageURL,
		IsPublished: in.IsPublished,
		AuthorID:    in.AuthorID,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost applies the ownership gate before mutating: a non-owner gets an
// ownership error which handlers turn into a redirect, leaving the post
// untouched.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewOwnershipError("You can only edit your own posts")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 256 characters)")
		}
		post.Title = in.Title
	}
	if in.Text != "" {
		if len(in.Text) > maxTextLen {
			return nil, models.NewValidationError("Text too long (max 50000 characters)")
		}
		post.Text = in.Text
	}
	if in.PubDate != nil {
		post.PubDate = *in.PubDate
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}
	if in.CategoryID != nil || in.LocationID != nil {
		if err := s.checkReferences(ctx, in.CategoryID, in.LocationID); err != nil {
			return nil, err
		}
		if in.CategoryID != nil {
			post.CategoryID = in.CategoryID
		}
		if in.LocationID != nil {
			post.LocationID = in.LocationID
		}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost hard-deletes a post after the ownership gate. Comments cascade.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewOwnershipError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return nil, err
	}
	return post, nil
}

// checkReferences verifies that referenced category and location rows exist.
func (s *PostService) checkReferences(ctx context.Context, categoryID, locationID *uint) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewValidationError("Unknown category")
			}
			return err
		}
	}
	if locationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *locationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewValidationError("Unknown location")
			}
			return err
		}
	}
	return nil
}
