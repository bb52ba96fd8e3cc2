package service

import (
	"context"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/repository"
	"github.com/cgsanchez223/strictylalbums-be/internal/validation"
)

// UserService owns profile reads and updates.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// alone; a pointer to an empty string clears the field.
type UpdateProfileInput struct {
	UserID         uint
	Username       *string
	Description    *string
	Location       *string
	AvatarURL      *string
	FavoriteGenres []string
	SocialLinks    map[string]string
}

// GetProfile loads the user with their ratings and newest lists.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithProfile(ctx, userID)
}

// UpdateProfile applies a partial update. A username change is rejected when
// another account already holds the name.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		taken, err := s.userRepo.UsernameTakenByOther(ctx, *in.Username, in.UserID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewValidationError("Username is already taken")
		}
		user.Username = *in.Username
	}
	if in.Description != nil {
		user.Description = *in.Description
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.FavoriteGenres != nil {
		user.FavoriteGenres = in.FavoriteGenres
	}
	if in.SocialLinks != nil {
		user.SocialLinks = in.SocialLinks
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
