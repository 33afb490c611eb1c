package server

import (
	"errors"

	"blogicum/internal/models"
	"blogicum/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCategories handles GET /api/categories. Published categories only.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.ListPublished(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(categories)
}

// GetCategoryFeed handles GET /api/categories/:slug. An absent or
// unpublished category yields 404; otherwise its public feed is returned
// alongside the category itself.
func (s *Server) GetCategoryFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, s.config.PageSize)

	category, posts, err := s.postService.ListCategoryFeed(ctx, c.Params("slug"), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"category": category,
		"posts":    posts,
	})
}

// CreateCategory handles POST /api/categories (admin only).
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Slug        string `json:"slug"`
		IsPublished *bool  `json:"is_published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if err := validation.ValidateCategorySlug(req.Slug); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if existing, err := s.categoryRepo.GetBySlug(ctx, req.Slug); err == nil && existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Slug already in use"))
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	category := &models.Category{
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		category.IsPublished = *req.IsPublished
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/categories/:id (admin only).
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Slug        string  `json:"slug"`
		IsPublished *bool   `json:"is_published"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Category"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if req.Title != "" {
		category.Title = req.Title
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Slug != "" && req.Slug != category.Slug {
		if err := validation.ValidateCategorySlug(req.Slug); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		category.Slug = req.Slug
	}
	if req.IsPublished != nil {
		category.IsPublished = *req.IsPublished
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id (admin only). Posts in
// the category stay with their category reference nullified.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Category"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
