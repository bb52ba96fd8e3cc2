package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/validation"
)

// Register handles POST /api/auth/register. A duplicate username or email is a
// conflict and creates no record.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		AvatarURL       string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password, req.ConfirmPassword); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	username := strings.TrimSpace(req.Username)
	email := validation.NormalizeEmail(req.Email)

	// Duplicate check covers both unique columns.
	existingByName, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	existingByEmail, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if existingByName != nil || existingByEmail != nil {
		return models.RespondWithError(c,
			models.NewConflictError("User with this username or email already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		AvatarURL: req.AvatarURL,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	tok, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.RespondMessage(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user":  user,
		"token": tok,
	})
}

// Login handles POST /api/auth/login. An unknown email and a wrong password
// produce the same response, so callers cannot enumerate accounts.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if req.Password == "" {
		return models.RespondWithError(c, models.NewValidationError("Password is required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), validation.NormalizeEmail(req.Email))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, models.NewUnauthorizedError("Invalid email or password"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, models.NewUnauthorizedError("Invalid email or password"))
	}

	tok, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return models.RespondMessage(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user,
		"token": tok,
	})
}

// VerifySession handles GET /api/auth/verify. AuthRequired has already
// validated the token and loaded the user.
func (s *Server) VerifySession(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return models.RespondWithError(c, models.NewUnauthorizedError("User not found"))
	}

	parts := strings.Split(c.Get("Authorization"), " ")
	tok := ""
	if len(parts) == 2 {
		tok = parts[1]
	}

	return models.RespondData(c, fiber.StatusOK, fiber.Map{
		"user":  user,
		"token": tok,
	})
}
