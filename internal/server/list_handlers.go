package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/service"
)

// CreateList handles POST /api/lists.
func (s *Server) CreateList(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPublic    bool   `json:"isPublic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	list, err := s.listService.Create(c.Context(), service.CreateListInput{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, fiber.StatusCreated, "List created successfully", list)
}

// GetUserLists handles GET /api/lists, returning all of the caller's lists
// with their albums.
func (s *Server) GetUserLists(c *fiber.Ctx) error {
	lists, err := s.listService.GetUserLists(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, fiber.StatusOK, fiber.Map{"lists": lists})
}

// GetList handles GET /api/lists/:id. Private lists are visible to their
// owner only.
func (s *Server) GetList(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	list, err := s.listService.Get(c.Context(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondData(c, fiber.StatusOK, list)
}

// UpdateList handles PUT /api/lists/:id. Absent fields keep their values.
func (s *Server) UpdateList(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPublic    *bool   `json:"isPublic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	list, err := s.listService.Update(c.Context(), service.UpdateListInput{
		UserID:      currentUserID(c),
		ListID:      id,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, fiber.StatusOK, "List updated successfully", list)
}

// DeleteList handles DELETE /api/lists/:id.
func (s *Server) DeleteList(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.listService.Delete(c.Context(), id, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, fiber.StatusOK, "List deleted successfully", nil)
}

// AddAlbumToList handles POST /api/lists/:listId/albums. Adding an album that
// is already a member succeeds without duplicating it.
func (s *Server) AddAlbumToList(c *fiber.Ctx) error {
	listID, err := s.parseID(c, "listId")
	if err != nil {
		return nil
	}

	var req struct {
		AlbumID    string `json:"albumId"`
		AlbumName  string `json:"albumName"`
		ArtistName string `json:"artistName"`
		ImageURL   string `json:"imageUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.listService.AddAlbum(c.Context(), service.AddAlbumInput{
		UserID:     currentUserID(c),
		ListID:     listID,
		AlbumID:    req.AlbumID,
		AlbumName:  req.AlbumName,
		ArtistName: req.ArtistName,
		ImageURL:   req.ImageURL,
	}); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, fiber.StatusOK, "Album added to list successfully", nil)
}

// RemoveAlbumFromList handles DELETE /api/lists/:listId/albums/:albumId.
func (s *Server) RemoveAlbumFromList(c *fiber.Ctx) error {
	listID, err := s.parseID(c, "listId")
	if err != nil {
		return nil
	}
	albumID := c.Params("albumId")
	if albumID == "" {
		return models.RespondWithError(c, models.NewValidationError("Album ID is required"))
	}

	if err := s.listService.RemoveAlbum(c.Context(), listID, currentUserID(c), albumID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondMessage(c, fiber.StatusOK, "Album removed from list successfully", nil)
}
