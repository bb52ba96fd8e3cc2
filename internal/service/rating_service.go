// Package service implements the business rules on top of the repositories.
package service

import (
	"context"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/repository"
)

// RatingService owns rating validation and the upsert semantics.
type RatingService struct {
	ratingRepo repository.RatingRepository
}

// NewRatingService returns a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo}
}

// UpsertRatingInput carries one rating submission.
type UpsertRatingInput struct {
	UserID     uint
	AlbumID    string
	AlbumName  string
	ArtistName string
	AlbumImage string
	Rating     int
	Review     string
}

// Upsert creates the user's rating for the album or overwrites the existing
// one. The bool result reports whether a new rating was created.
func (s *RatingService) Upsert(ctx context.Context, in UpsertRatingInput) (*models.Rating, bool, error) {
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return nil, false, models.NewValidationError("Rating must be between 1 and 5")
	}
	if in.AlbumID == "" {
		return nil, false, models.NewValidationError("Album ID is required")
	}
	if in.AlbumName == "" || in.ArtistName == "" {
		return nil, false, models.NewValidationError("Album name and artist name are required")
	}

	existing, err := s.ratingRepo.GetByUserAndAlbum(ctx, in.UserID, in.AlbumID)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.Rating = in.Rating
		existing.Review = in.Review
		existing.AlbumName = in.AlbumName
		existing.ArtistName = in.ArtistName
		existing.AlbumImage = in.AlbumImage
		if err := s.ratingRepo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	rating := &models.Rating{
		UserID:     in.UserID,
		AlbumID:    in.AlbumID,
		AlbumName:  in.AlbumName,
		ArtistName: in.ArtistName,
		AlbumImage: in.AlbumImage,
		Rating:     in.Rating,
		Review:     in.Review,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, false, err
	}
	return rating, true, nil
}

// GetForAlbum returns the user's rating for one album.
func (s *RatingService) GetForAlbum(ctx context.Context, userID uint, albumID string) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByUserAndAlbum(ctx, userID, albumID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, models.NewNotFoundError("Rating")
	}
	return rating, nil
}

// ListForUser returns a page of the user's ratings, newest first.
func (s *RatingService) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Rating, int64, error) {
	return s.ratingRepo.ListByUser(ctx, userID, limit, offset)
}

// ListRecent returns a page of ratings across all users with author info.
func (s *RatingService) ListRecent(ctx context.Context, limit, offset int) ([]models.Rating, int64, error) {
	return s.ratingRepo.ListRecent(ctx, limit, offset)
}

// Delete removes the user's own rating; a non-owner gets NotFound.
func (s *RatingService) Delete(ctx context.Context, userID, ratingID uint) error {
	return s.ratingRepo.DeleteOwned(ctx, ratingID, userID)
}
