package service

import (
	"context"
	"errors"

	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/validation"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

type UpdateProfileInput struct {
	UserID    uint
	Username  string
	Email     string
	FirstName *string
	LastName  *string
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

// GetProfile resolves a user by username and returns their posts, drafts and
// scheduled posts included. Profile owners moderate themselves; the published
// filter is deliberately absent here.
func (s *UserService) GetProfile(ctx context.Context, username string, limit, offset int) (*models.User, []*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.NewNotFoundError("User")
		}
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return user, posts, nil
}

// UpdateProfile edits the requester's own account record. The target is
// always taken from the authenticated user ID, never from the request.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Posts and comments cascade at the store
// level. Admin-only; handlers enforce that.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User")
		}
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
