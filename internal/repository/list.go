package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
)

// ListRepository defines persistence operations for lists and their album
// memberships.
type ListRepository interface {
	Create(ctx context.Context, list *models.List) error
	// GetOwned loads a list only when it belongs to userID.
	GetOwned(ctx context.Context, id, userID uint) (*models.List, error)
	// GetVisible loads a list when requestorID owns it or the list is public.
	GetVisible(ctx context.Context, id, requestorID uint) (*models.List, error)
	Update(ctx context.Context, list *models.List) error
	DeleteOwned(ctx context.Context, id, userID uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.List, error)
	ListByUserPaginated(ctx context.Context, userID uint, limit, offset int) ([]models.List, int64, error)
	FindOrCreateAlbum(ctx context.Context, album *models.Album) error
	AddAlbum(ctx context.Context, list *models.List, album *models.Album) error
	RemoveAlbum(ctx context.Context, list *models.List, albumID string) error
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository returns a new ListRepository implementation.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listRepository) GetOwned(ctx context.Context, id, userID uint) (*models.List, error) {
	var list models.List
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("List")
		}
		return nil, models.NewInternalError(err)
	}
	return &list, nil
}

func (r *listRepository) GetVisible(ctx context.Context, id, requestorID uint) (*models.List, error) {
	var list models.List
	err := r.db.WithContext(ctx).
		Preload("Albums").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar_url")
		}).
		Where("id = ? AND (user_id = ? OR is_public = ?)", id, requestorID, true).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("List")
		}
		return nil, models.NewInternalError(err)
	}
	return &list, nil
}

func (r *listRepository) Update(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Save(list).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	// Clear join rows first so removing the list leaves no orphans.
	list := models.List{ID: id}
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&list)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("List")
		}
		return models.NewInternalError(res.Error)
	}

	if err := r.db.WithContext(ctx).Model(&list).Association("Albums").Clear(); err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&list).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listRepository) ListByUser(ctx context.Context, userID uint) ([]models.List, error) {
	var lists []models.List
	if err := r.db.WithContext(ctx).
		Preload("Albums").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return lists, nil
}

func (r *listRepository) ListByUserPaginated(ctx context.Context, userID uint, limit, offset int) ([]models.List, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.List{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var lists []models.List
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&lists).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return lists, total, nil
}

// FindOrCreateAlbum caches the album's display metadata locally the first time
// any list references it. Existing rows keep their stored metadata.
func (r *listRepository) FindOrCreateAlbum(ctx context.Context, album *models.Album) error {
	if err := r.db.WithContext(ctx).
		Where(models.Album{ID: album.ID}).
		Attrs(models.Album{
			Name:       album.Name,
			ArtistName: album.ArtistName,
			ImageURL:   album.ImageURL,
		}).
		FirstOrCreate(album).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listRepository) AddAlbum(ctx context.Context, list *models.List, album *models.Album) error {
	if err := r.db.WithContext(ctx).Model(list).Association("Albums").Append(album); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveAlbum is a no-op when the association does not exist.
func (r *listRepository) RemoveAlbum(ctx context.Context, list *models.List, albumID string) error {
	if err := r.db.WithContext(ctx).Model(list).Association("Albums").Delete(&models.Album{ID: albumID}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
