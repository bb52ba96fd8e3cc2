// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
)

// Options controls seeder behaviour.
type Options struct {
	// DryRun builds entities and assigns synthetic IDs without writing.
	DryRun bool
	// SkipBcrypt stores a plaintext marker password to speed up large runs.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over the past N days.
	MaxDays int
}

// Seeder populates the database with fake accounts, ratings and lists.
type Seeder struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, opts: opts, nextID: 1000}
}

var genrePool = []string{
	"rock", "indie", "hip-hop", "jazz", "electronic", "folk",
	"metal", "pop", "ambient", "soul", "punk", "classical",
}

var listNameTemplates = []string{
	"Best of %d",
	"%s essentials",
	"Late night %s",
	"Desert island picks",
	"Albums I can't stop playing",
	"%s deep cuts",
}

func (s *Seeder) backdate() time.Time {
	maxDays := s.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := rand.Intn(maxDays)
	hoursBack := rand.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}

// BuildUser constructs a sample user without persisting it. Optional override
// functions may modify the generated user before use.
func (s *Seeder) BuildUser(overrides ...func(*models.User)) *models.User {
	genres := make([]string, 0, 3)
	for _, i := range rand.Perm(len(genrePool))[:3] {
		genres = append(genres, genrePool[i])
	}

	user := &models.User{
		Username:       gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:          gofakeit.Email(),
		Description:    gofakeit.Sentence(10),
		Location:       gofakeit.City(),
		AvatarURL:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		FavoriteGenres: genres,
		SocialLinks: map[string]string{
			"twitter": "https://twitter.com/" + gofakeit.Username(),
		},
	}
	user.CreatedAt = s.backdate()

	if s.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildAlbum constructs a sample catalog album row.
func (s *Seeder) BuildAlbum() *models.Album {
	id := gofakeit.LetterN(22)
	return &models.Album{
		ID:         id,
		Name:       gofakeit.HipsterSentence(3),
		ArtistName: gofakeit.Name(),
		ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/640/640", id),
	}
}

// SeedUsers creates n users.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, s.BuildUser())
	}

	if s.opts.DryRun {
		for _, u := range users {
			s.nextID++
			u.ID = s.nextID
		}
		log.Printf("[dry-run] SeedUsers: %d users (no DB write)", len(users))
		return users, nil
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	return users, nil
}

// SeedRatings gives each user ratings for a shared pool of albums. Each
// user rates any given album at most once.
func (s *Seeder) SeedRatings(users []*models.User, albumPoolSize, perUser int) error {
	albums := make([]*models.Album, 0, albumPoolSize)
	for i := 0; i < albumPoolSize; i++ {
		albums = append(albums, s.BuildAlbum())
	}

	if !s.opts.DryRun {
		if err := s.db.Create(&albums).Error; err != nil {
			return fmt.Errorf("failed to create albums: %w", err)
		}
	}

	if perUser > len(albums) {
		perUser = len(albums)
	}

	var ratings []*models.Rating
	for _, user := range users {
		for _, i := range rand.Perm(len(albums))[:perUser] {
			album := albums[i]
			rating := &models.Rating{
				UserID:     user.ID,
				AlbumID:    album.ID,
				AlbumName:  album.Name,
				ArtistName: album.ArtistName,
				AlbumImage: album.ImageURL,
				Rating:     gofakeit.Number(models.MinRating, models.MaxRating),
				Review:     gofakeit.Paragraph(1, 2, 8, " "),
			}
			rating.CreatedAt = s.backdate()
			ratings = append(ratings, rating)
		}
	}

	if s.opts.DryRun {
		log.Printf("[dry-run] SeedRatings: %d ratings (no DB write)", len(ratings))
		return nil
	}
	if len(ratings) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(&ratings, 200).Error; err != nil {
		return fmt.Errorf("failed to create ratings: %w", err)
	}
	log.Printf("Created %d ratings across %d albums", len(ratings), len(albums))
	return nil
}

// SeedLists gives each user a couple of lists referencing the albums the user
// has rated.
func (s *Seeder) SeedLists(users []*models.User, perUser int) error {
	var created int
	for _, user := range users {
		var rated []models.Rating
		if !s.opts.DryRun {
			if err := s.db.Where("user_id = ?", user.ID).Limit(10).Find(&rated).Error; err != nil {
				return fmt.Errorf("failed to load ratings for user %d: %w", user.ID, err)
			}
		}

		for i := 0; i < perUser; i++ {
			template := listNameTemplates[rand.Intn(len(listNameTemplates))]
			name := template
			switch {
			case strings.Contains(template, "%d"):
				name = fmt.Sprintf(template, gofakeit.Number(1970, 2025))
			case strings.Contains(template, "%s"):
				name = fmt.Sprintf(template, genrePool[rand.Intn(len(genrePool))])
			}

			list := &models.List{
				UserID:      user.ID,
				Name:        name,
				Description: gofakeit.Sentence(8),
				IsPublic:    gofakeit.Bool(),
			}
			list.CreatedAt = s.backdate()

			if s.opts.DryRun {
				s.nextID++
				list.ID = s.nextID
				created++
				continue
			}
			if err := s.db.Create(list).Error; err != nil {
				return fmt.Errorf("failed to create list: %w", err)
			}

			for _, r := range rated {
				if rand.Intn(2) == 0 {
					continue
				}
				album := models.Album{ID: r.AlbumID}
				if err := s.db.Model(list).Association("Albums").Append(&album); err != nil {
					return fmt.Errorf("failed to attach album to list: %w", err)
				}
			}
			created++
		}
	}

	if s.opts.DryRun {
		log.Printf("[dry-run] SeedLists: %d lists (no DB write)", created)
	} else {
		log.Printf("Created %d lists", created)
	}
	return nil
}

// ClearAll removes all seeded rows. Join table first, then the tables it
// references.
func (s *Seeder) ClearAll() error {
	if s.opts.DryRun {
		log.Println("[dry-run] ClearAll: skipped")
		return nil
	}

	statements := []string{
		"DELETE FROM list_albums",
		"DELETE FROM lists",
		"DELETE FROM ratings",
		"DELETE FROM albums",
		"DELETE FROM users",
	}
	for _, stmt := range statements {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("cleanup failed (%s): %w", stmt, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}
