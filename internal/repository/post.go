// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListPublishedByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID fetches a single post with its related rows and comment count.
// Visibility is not applied here; the service layer decides who may see
// drafts.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyCommentCount(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Location").
		Preload("Category").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPublished returns the public feed: published posts in published (or no)
// categories whose publication date has passed, newest first.
func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPublished(r.applyCommentCount(r.db.WithContext(ctx))).
		Preload("Author").
		Preload("Location").
		Preload("Category").
		Order("posts.pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedByCategory returns the public feed restricted to one category.
func (r *postRepository) ListPublishedByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPublished(r.applyCommentCount(r.db.WithContext(ctx))).
		Preload("Author").
		Preload("Location").
		Preload("Category").
		Where("posts.category_id = ?", categoryID).
		Order("posts.pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthor returns all of one author's posts, drafts and scheduled posts
// included. Ordering and comment counts match the public feed.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyCommentCount(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Location").
		Preload("Category").
		Where("posts.author_id = ?", authorID).
		Order("posts.pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// applyCommentCount adds a subquery to fetch the comment count in a single query.
func (r *postRepository) applyCommentCount(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).Select(
		"posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count")
}

// applyPublished restricts the query to publicly visible posts: the post is
// published, its category (when set) is published, and pub_date is not in the
// future.
func (r *postRepository) applyPublished(db *gorm.DB) *gorm.DB {
	return db.
		Joins("LEFT JOIN categories ON categories.id = posts.category_id").
		Where("posts.is_published = ?", true).
		Where("posts.category_id IS NULL OR categories.is_published = ?", true).
		Where("posts.pub_date <= ?", time.Now().UTC())
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post permanently. Comments go with it through the
// ON DELETE CASCADE constraint.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
