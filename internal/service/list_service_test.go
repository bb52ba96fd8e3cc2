package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
)

// stubListRepo implements repository.ListRepository with overridable funcs.
type stubListRepo struct {
	create              func(ctx context.Context, list *models.List) error
	getOwned            func(ctx context.Context, id, userID uint) (*models.List, error)
	getVisible          func(ctx context.Context, id, requestorID uint) (*models.List, error)
	update              func(ctx context.Context, list *models.List) error
	deleteOwned         func(ctx context.Context, id, userID uint) error
	listByUser          func(ctx context.Context, userID uint) ([]models.List, error)
	listByUserPaginated func(ctx context.Context, userID uint, limit, offset int) ([]models.List, int64, error)
	findOrCreateAlbum   func(ctx context.Context, album *models.Album) error
	addAlbum            func(ctx context.Context, list *models.List, album *models.Album) error
	removeAlbum         func(ctx context.Context, list *models.List, albumID string) error
}

func (s *stubListRepo) Create(ctx context.Context, list *models.List) error {
	if s.create != nil {
		return s.create(ctx, list)
	}
	return nil
}

func (s *stubListRepo) GetOwned(ctx context.Context, id, userID uint) (*models.List, error) {
	if s.getOwned != nil {
		return s.getOwned(ctx, id, userID)
	}
	return &models.List{ID: id, UserID: userID}, nil
}

func (s *stubListRepo) GetVisible(ctx context.Context, id, requestorID uint) (*models.List, error) {
	if s.getVisible != nil {
		return s.getVisible(ctx, id, requestorID)
	}
	return &models.List{ID: id}, nil
}

func (s *stubListRepo) Update(ctx context.Context, list *models.List) error {
	if s.update != nil {
		return s.update(ctx, list)
	}
	return nil
}

func (s *stubListRepo) DeleteOwned(ctx context.Context, id, userID uint) error {
	if s.deleteOwned != nil {
		return s.deleteOwned(ctx, id, userID)
	}
	return nil
}

func (s *stubListRepo) ListByUser(ctx context.Context, userID uint) ([]models.List, error) {
	if s.listByUser != nil {
		return s.listByUser(ctx, userID)
	}
	return nil, nil
}

func (s *stubListRepo) ListByUserPaginated(ctx context.Context, userID uint, limit, offset int) ([]models.List, int64, error) {
	if s.listByUserPaginated != nil {
		return s.listByUserPaginated(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

func (s *stubListRepo) FindOrCreateAlbum(ctx context.Context, album *models.Album) error {
	if s.findOrCreateAlbum != nil {
		return s.findOrCreateAlbum(ctx, album)
	}
	return nil
}

func (s *stubListRepo) AddAlbum(ctx context.Context, list *models.List, album *models.Album) error {
	if s.addAlbum != nil {
		return s.addAlbum(ctx, list, album)
	}
	return nil
}

func (s *stubListRepo) RemoveAlbum(ctx context.Context, list *models.List, albumID string) error {
	if s.removeAlbum != nil {
		return s.removeAlbum(ctx, list, albumID)
	}
	return nil
}

func TestCreateList_NameValidation(t *testing.T) {
	svc := NewListService(&stubListRepo{})
	ctx := context.Background()

	tests := []struct {
		name     string
		listName string
		wantErr  bool
	}{
		{"valid", "Desert Island Discs", false},
		{"single character", "A", false},
		{"maximum length", strings.Repeat("a", 100), false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, CreateListInput{UserID: 1, Name: tt.listName})
			if tt.wantErr {
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, models.CodeValidation, appErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateList_TrimsName(t *testing.T) {
	var created *models.List
	repo := &stubListRepo{
		create: func(ctx context.Context, list *models.List) error {
			created = list
			return nil
		},
	}
	svc := NewListService(repo)

	_, err := svc.Create(context.Background(), CreateListInput{UserID: 1, Name: "  My List  "})
	require.NoError(t, err)
	assert.Equal(t, "My List", created.Name)
}

func TestUpdateList_PartialFields(t *testing.T) {
	existing := &models.List{ID: 5, UserID: 1, Name: "Old", Description: "old desc", IsPublic: false}
	var saved *models.List
	repo := &stubListRepo{
		getOwned: func(ctx context.Context, id, userID uint) (*models.List, error) {
			return existing, nil
		},
		update: func(ctx context.Context, list *models.List) error {
			saved = list
			return nil
		},
	}
	svc := NewListService(repo)

	public := true
	list, err := svc.Update(context.Background(), UpdateListInput{
		UserID: 1, ListID: 5,
		IsPublic: &public,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Old", list.Name, "absent name keeps its value")
	assert.Equal(t, "old desc", list.Description)
	assert.True(t, list.IsPublic)
}

func TestUpdateList_InvalidNameRejected(t *testing.T) {
	svc := NewListService(&stubListRepo{})

	empty := ""
	_, err := svc.Update(context.Background(), UpdateListInput{UserID: 1, ListID: 5, Name: &empty})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestUpdateList_NotOwned(t *testing.T) {
	repo := &stubListRepo{
		getOwned: func(ctx context.Context, id, userID uint) (*models.List, error) {
			return nil, models.NewNotFoundError("List")
		},
	}
	svc := NewListService(repo)

	name := "New"
	_, err := svc.Update(context.Background(), UpdateListInput{UserID: 2, ListID: 5, Name: &name})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestAddAlbum_RequiresAlbumID(t *testing.T) {
	svc := NewListService(&stubListRepo{})

	err := svc.AddAlbum(context.Background(), AddAlbumInput{UserID: 1, ListID: 5})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestAddAlbum_CreatesLocalAlbumRow(t *testing.T) {
	var ensured *models.Album
	var appended *models.Album
	repo := &stubListRepo{
		findOrCreateAlbum: func(ctx context.Context, album *models.Album) error {
			ensured = album
			return nil
		},
		addAlbum: func(ctx context.Context, list *models.List, album *models.Album) error {
			appended = album
			return nil
		},
	}
	svc := NewListService(repo)

	err := svc.AddAlbum(context.Background(), AddAlbumInput{
		UserID: 1, ListID: 5,
		AlbumID: "cat-1", AlbumName: "Blue", ArtistName: "Joni Mitchell",
	})
	require.NoError(t, err)
	require.NotNil(t, ensured)
	assert.Equal(t, "cat-1", ensured.ID)
	assert.Equal(t, "Blue", ensured.Name)
	assert.Same(t, ensured, appended)
}

func TestAddAlbum_NotOwnedListFails(t *testing.T) {
	repo := &stubListRepo{
		getOwned: func(ctx context.Context, id, userID uint) (*models.List, error) {
			return nil, models.NewNotFoundError("List")
		},
		findOrCreateAlbum: func(ctx context.Context, album *models.Album) error {
			t.Fatal("album row must not be created for an inaccessible list")
			return nil
		},
	}
	svc := NewListService(repo)

	err := svc.AddAlbum(context.Background(), AddAlbumInput{UserID: 2, ListID: 5, AlbumID: "cat-1"})
	assert.Error(t, err)
}
