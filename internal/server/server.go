// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cgsanchez223/strictylalbums-be/internal/cache"
	"github.com/cgsanchez223/strictylalbums-be/internal/config"
	"github.com/cgsanchez223/strictylalbums-be/internal/database"
	"github.com/cgsanchez223/strictylalbums-be/internal/middleware"
	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/repository"
	"github.com/cgsanchez223/strictylalbums-be/internal/service"
	"github.com/cgsanchez223/strictylalbums-be/internal/spotify"
	"github.com/cgsanchez223/strictylalbums-be/internal/token"
)

// CatalogClient is the external catalog surface the handlers depend on.
type CatalogClient interface {
	SearchAlbums(ctx context.Context, query string, limit, offset int) (json.RawMessage, error)
	GetAlbumDetails(ctx context.Context, albumID string) (json.RawMessage, error)
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *token.Manager
	userRepo       repository.UserRepository
	ratingService  *service.RatingService
	listService    *service.ListService
	userService    *service.UserService
	catalog        CatalogClient
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	catalog := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)

	return NewServerWithDeps(cfg, db, redisClient, catalog), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, catalog CatalogClient) *Server {
	models.SetErrorDetailMode(!cfg.IsProduction())

	userRepo := repository.NewUserRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	listRepo := repository.NewListRepository(db)

	prom := middleware.InitMetrics("strictlyalbums-api")

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		tokens:         token.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour),
		userRepo:       userRepo,
		ratingService:  service.NewRatingService(ratingRepo),
		listService:    service.NewListService(listRepo),
		userService:    service.NewUserService(userRepo),
		catalog:        catalog,
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context middleware to propagate request ID and user ID to the logger
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware, app))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.Response{
				Success: false,
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Get("/verify", s.AuthRequired(), s.VerifySession)

	protected := api.Group("", s.AuthRequired())

	ratings := protected.Group("/ratings")
	ratings.Post("/", s.CreateRating)
	ratings.Get("/album/:albumId", s.GetAlbumRating)
	ratings.Get("/user", s.GetUserRatings)
	ratings.Get("/recent", s.GetRecentRatings)
	ratings.Delete("/:id", s.DeleteRating)

	profile := protected.Group("/profile")
	profile.Get("/", s.GetProfile)
	profile.Put("/", s.UpdateProfile)
	profile.Get("/ratings", s.GetProfileRatings)
	profile.Get("/lists", s.GetProfileLists)

	lists := protected.Group("/lists")
	lists.Post("/", s.CreateList)
	lists.Get("/", s.GetUserLists)
	lists.Get("/:id", s.GetList)
	lists.Put("/:id", s.UpdateList)
	lists.Delete("/:id", s.DeleteList)
	lists.Post("/:listId/albums", s.AddAlbumToList)
	lists.Delete("/:listId/albums/:albumId", s.RemoveAlbumFromList)

	catalog := protected.Group("/spotify")
	catalog.Get("/search", s.SearchAlbums)
	catalog.Get("/albums/:id", s.GetAlbumDetails)
}

// AuthRequired is the sole admission-control gate for protected routes. It
// verifies the bearer token and loads the acting user fresh on every request.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("No token provided"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid authorization header format"))
		}

		claims, err := s.tokens.Verify(parts[1])
		if err != nil {
			return models.RespondWithError(c, err)
		}

		// The account may have been removed after the token was issued. Only
		// a confirmed missing row denies the credential; a store failure is
		// reported as such, not as a bad token.
		user, err := s.userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				return models.RespondWithError(c, models.NewUnauthorizedError("User not found"))
			}
			return models.RespondWithError(c, err)
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)

		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Shutdown releases server-owned resources after the listener has stopped.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Warn("redis close failed", "error", err)
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// currentUser returns the authenticated user loaded by AuthRequired.
func currentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals("user").(*models.User); ok {
		return u
	}
	return nil
}
