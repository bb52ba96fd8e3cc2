package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/service"
)

// CreateRating handles POST /api/ratings. Submitting a second rating for the
// same album overwrites the first.
func (s *Server) CreateRating(c *fiber.Ctx) error {
	var req struct {
		AlbumID    string `json:"albumId"`
		AlbumName  string `json:"albumName"`
		ArtistName string `json:"artistName"`
		AlbumImage string `json:"albumImage"`
		Rating     int    `json:"rating"`
		Review     string `json:"review"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	rating, created, err := s.ratingService.Upsert(c.Context(), service.UpsertRatingInput{
		UserID:     currentUserID(c),
		AlbumID:    req.AlbumID,
		AlbumName:  req.AlbumName,
		ArtistName: req.ArtistName,
		AlbumImage: req.AlbumImage,
		Rating:     req.Rating,
		Review:     req.Review,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "Rating updated successfully"
	if created {
		message = "Rating created successfully"
	}
	return models.RespondMessage(c, fiber.StatusCreated, message, rating)
}

// GetAlbumRating handles GET /api/ratings/album/:albumId.
func (s *Server) GetAlbumRating(c *fiber.Ctx) error {
	albumID := c.Params("albumId")
	if albumID == "" {
		return models.RespondWithError(c, models.NewValidationError("Album ID is required"))
	}

	rating, err := s.ratingService.GetForAlbum(c.Context(), currentUserID(c), albumID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, fiber.StatusOK, rating)
}

// GetUserRatings handles GET /api/ratings/user with limit/offset pagination.
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageLimit)

	ratings, total, err := s.ratingService.ListForUser(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondData(c, fiber.StatusOK, fiber.Map{
		"ratings": ratings,
		"total":   total,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// GetRecentRatings handles GET /api/ratings/recent across all users, with
// author info attached to each rating.
func (s *Server) GetRecentRatings(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageLimit)

	ratings, total, err := s.ratingService.ListRecent(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.RespondData(c, fiber.StatusOK, fiber.Map{
		"ratings": ratings,
		"total":   total,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// DeleteRating handles DELETE /api/ratings/:id. Ownership is part of the
// delete predicate; a non-owner sees NotFound.
func (s *Server) DeleteRating(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.ratingService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, fiber.StatusOK, "Rating deleted successfully", nil)
}
