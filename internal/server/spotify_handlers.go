package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
)

// SearchAlbums handles GET /api/spotify/search, proxying album search to the
// external catalog.
func (s *Server) SearchAlbums(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return models.RespondWithError(c, models.NewValidationError("Search query is required"))
	}

	p := parsePagination(c, 20)

	albums, err := s.catalog.SearchAlbums(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, fiber.StatusOK, albums)
}

// GetAlbumDetails handles GET /api/spotify/albums/:id.
func (s *Server) GetAlbumDetails(c *fiber.Ctx) error {
	albumID := c.Params("id")
	if albumID == "" {
		return models.RespondWithError(c, models.NewValidationError("Album ID is required"))
	}

	album, err := s.catalog.GetAlbumDetails(c.Context(), albumID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, fiber.StatusOK, album)
}
