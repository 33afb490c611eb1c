package server

import (
	"time"

	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts, the public home feed.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, s.config.PageSize)

	posts, err := s.postService.ListFeed(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id. Unpublished posts are only visible to
// their author; everyone else gets 404, and the comments of a visible post
// come back oldest first.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, id, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	comments, err := s.commentService.ListComments(ctx, id, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost handles POST /api/posts. The authenticated requester is always
// the author; any author value in the body is ignored.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string     `json:"title"`
		Text        string     `json:"text"`
		PubDate     *time.Time `json:"pub_date"`
		ImageURL    string     `json:"image_url"`
		IsPublished *bool      `json:"is_published"`
		CategoryID  *uint      `json:"category_id"`
		LocationID  *uint      `json:"location_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreatePostInput{
		AuthorID:    userID,
		Title:       req.Title,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		IsPublished: true,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
	}
	if req.PubDate != nil {
		in.PubDate = *req.PubDate
	}
	if req.IsPublished != nil {
		in.IsPublished = *req.IsPublished
	}

	post, err := s.postService.CreatePost(ctx, in)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. A non-owner is redirected to the
// post's detail route with nothing changed; this mirrors the "nothing to do
// here" treatment of ownership mismatches.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string     `json:"title"`
		Text        string     `json:"text"`
		PubDate     *time.Time `json:"pub_date"`
		ImageURL    *string    `json:"image_url"`
		IsPublished *bool      `json:"is_published"`
		CategoryID  *uint      `json:"category_id"`
		LocationID  *uint      `json:"location_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:      userID,
		PostID:      postID,
		Title:       req.Title,
		Text:        req.Text,
		PubDate:     req.PubDate,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
	})
	if err != nil {
		if models.IsCode(err, models.CodeForbidden) {
			return c.Redirect(postDetailPath(postID), fiber.StatusSeeOther)
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id with the same ownership gate as
// UpdatePost.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		if models.IsCode(err, models.CodeForbidden) {
			return c.Redirect(postDetailPath(postID), fiber.StatusSeeOther)
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
