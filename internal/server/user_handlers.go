package server

import (
	"errors"

	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetProfile handles GET /api/profiles/:username. The profile lists all of
// the user's posts, drafts included; profile pages show owners their own
// unpublished work, and the feed ordering matches the home feed.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, s.config.PageSize)

	user, posts, err := s.userService.GetProfile(ctx, c.Params("username"), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"profile": user,
		"posts":   posts,
	})
}

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me. The edit always targets the
// authenticated requester's own record; no identifier in the request can
// address another account.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Username  string  `json:"username"`
		Email     string  `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:    userID,
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id (admin only). The user's posts
// and comments are removed with them.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(ctx, id); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
