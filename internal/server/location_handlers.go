package server

import (
	"errors"

	"blogicum/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetLocations handles GET /api/locations.
func (s *Server) GetLocations(c *fiber.Ctx) error {
	locations, err := s.locationRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(locations)
}

// CreateLocation handles POST /api/locations (admin only).
func (s *Server) CreateLocation(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name        string `json:"name"`
		IsPublished *bool  `json:"is_published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	location := &models.Location{
		Name:        req.Name,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		location.IsPublished = *req.IsPublished
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// UpdateLocation handles PUT /api/locations/:id (admin only).
func (s *Server) UpdateLocation(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		IsPublished *bool  `json:"is_published"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Location"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if req.Name != "" {
		location.Name = req.Name
	}
	if req.IsPublished != nil {
		location.IsPublished = *req.IsPublished
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(location)
}

// DeleteLocation handles DELETE /api/locations/:id (admin only). Posts
// tagged with the location stay with the reference nullified.
func (s *Server) DeleteLocation(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.locationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Location"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
