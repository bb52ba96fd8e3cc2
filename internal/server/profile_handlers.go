package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/service"
)

// GetProfile handles GET /api/profile, returning the caller's account with
// their ratings and newest lists.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, fiber.StatusOK, user)
}

// UpdateProfile handles PUT /api/profile. Absent fields keep their values;
// sending an explicit empty string clears a field.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Username       *string           `json:"username"`
		Description    *string           `json:"description"`
		Location       *string           `json:"location"`
		AvatarURL      *string           `json:"avatar_url"`
		FavoriteGenres []string          `json:"favorite_genres"`
		SocialLinks    map[string]string `json:"social_links"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         currentUserID(c),
		Username:       req.Username,
		Description:    req.Description,
		Location:       req.Location,
		AvatarURL:      req.AvatarURL,
		FavoriteGenres: req.FavoriteGenres,
		SocialLinks:    req.SocialLinks,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, fiber.StatusOK, "Profile updated successfully", user)
}

// GetProfileRatings handles GET /api/profile/ratings with page/limit
// pagination.
func (s *Server) GetProfileRatings(c *fiber.Ctx) error {
	page, p := parsePageLimit(c)

	ratings, total, err := s.ratingService.ListForUser(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondData(c, fiber.StatusOK, fiber.Map{
		"ratings":    ratings,
		"pagination": models.NewPagination(total, page, p.Limit),
	})
}

// GetProfileLists handles GET /api/profile/lists with page/limit pagination.
func (s *Server) GetProfileLists(c *fiber.Ctx) error {
	page, p := parsePageLimit(c)

	lists, total, err := s.listService.GetUserListsPaginated(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondData(c, fiber.StatusOK, fiber.Map{
		"lists":      lists,
		"pagination": models.NewPagination(total, page, p.Limit),
	})
}
