package service

import (
	"context"
	"strings"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/repository"
)

// ListService owns list CRUD and album membership rules.
type ListService struct {
	listRepo repository.ListRepository
}

// NewListService returns a new ListService.
func NewListService(listRepo repository.ListRepository) *ListService {
	return &ListService{listRepo: listRepo}
}

// CreateListInput carries a new list request.
type CreateListInput struct {
	UserID      uint
	Name        string
	Description string
	IsPublic    bool
}

// UpdateListInput carries a partial list update; nil fields are left alone.
type UpdateListInput struct {
	UserID      uint
	ListID      uint
	Name        *string
	Description *string
	IsPublic    *bool
}

// AddAlbumInput carries an album membership request with the display metadata
// cached locally on first reference.
type AddAlbumInput struct {
	UserID     uint
	ListID     uint
	AlbumID    string
	AlbumName  string
	ArtistName string
	ImageURL   string
}

func validateListName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < models.MinListNameLen || len(name) > models.MaxListNameLen {
		return models.NewValidationError("List name must be between 1 and 100 characters")
	}
	return nil
}

// Create makes a new list owned by the user.
func (s *ListService) Create(ctx context.Context, in CreateListInput) (*models.List, error) {
	if err := validateListName(in.Name); err != nil {
		return nil, err
	}

	list := &models.List{
		UserID:      in.UserID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsPublic:    in.IsPublic,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetUserLists returns all of the user's lists with their albums, newest first.
func (s *ListService) GetUserLists(ctx context.Context, userID uint) ([]models.List, error) {
	return s.listRepo.ListByUser(ctx, userID)
}

// GetUserListsPaginated returns a page of the user's lists with a total count.
func (s *ListService) GetUserListsPaginated(ctx context.Context, userID uint, limit, offset int) ([]models.List, int64, error) {
	return s.listRepo.ListByUserPaginated(ctx, userID, limit, offset)
}

// Get returns the list when the requestor owns it or it is public.
func (s *ListService) Get(ctx context.Context, listID, requestorID uint) (*models.List, error) {
	return s.listRepo.GetVisible(ctx, listID, requestorID)
}

// Update applies a partial update to a list the user owns.
func (s *ListService) Update(ctx context.Context, in UpdateListInput) (*models.List, error) {
	list, err := s.listRepo.GetOwned(ctx, in.ListID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validateListName(*in.Name); err != nil {
			return nil, err
		}
		list.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		list.Description = *in.Description
	}
	if in.IsPublic != nil {
		list.IsPublic = *in.IsPublic
	}

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes a list the user owns.
func (s *ListService) Delete(ctx context.Context, listID, userID uint) error {
	return s.listRepo.DeleteOwned(ctx, listID, userID)
}

// AddAlbum attaches an album to the user's list, creating the local album row
// on first reference. Re-adding an existing member is a no-op.
func (s *ListService) AddAlbum(ctx context.Context, in AddAlbumInput) error {
	if in.AlbumID == "" {
		return models.NewValidationError("Album ID is required")
	}

	list, err := s.listRepo.GetOwned(ctx, in.ListID, in.UserID)
	if err != nil {
		return err
	}

	album := &models.Album{
		ID:         in.AlbumID,
		Name:       in.AlbumName,
		ArtistName: in.ArtistName,
		ImageURL:   in.ImageURL,
	}
	if err := s.listRepo.FindOrCreateAlbum(ctx, album); err != nil {
		return err
	}

	return s.listRepo.AddAlbum(ctx, list, album)
}

// RemoveAlbum detaches an album from the user's list; removing a non-member
// succeeds without effect.
func (s *ListService) RemoveAlbum(ctx context.Context, listID, userID uint, albumID string) error {
	list, err := s.listRepo.GetOwned(ctx, listID, userID)
	if err != nil {
		return err
	}
	return s.listRepo.RemoveAlbum(ctx, list, albumID)
}
