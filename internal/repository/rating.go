package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
)

// RatingRepository defines persistence operations for album ratings.
type RatingRepository interface {
	GetByUserAndAlbum(ctx context.Context, userID uint, albumID string) (*models.Rating, error)
	Create(ctx context.Context, rating *models.Rating) error
	Update(ctx context.Context, rating *models.Rating) error
	// DeleteOwned removes the rating only when it belongs to userID. Ownership
	// is part of the delete predicate, not a separate existence check.
	DeleteOwned(ctx context.Context, id, userID uint) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Rating, int64, error)
	ListRecent(ctx context.Context, limit, offset int) ([]models.Rating, int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// GetByUserAndAlbum returns (nil, nil) when the user has not rated the album.
func (r *ratingRepository) GetByUserAndAlbum(ctx context.Context, userID uint, albumID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND album_id = ?", userID, albumID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Save(rating).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Rating{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Rating")
	}
	return nil
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Rating, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return ratings, total, nil
}

func (r *ratingRepository) ListRecent(ctx context.Context, limit, offset int) ([]models.Rating, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar_url")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return ratings, total, nil
}
