package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cgsanchez223/strictylalbums-be/internal/config"
	"github.com/cgsanchez223/strictylalbums-be/internal/models"
	"github.com/cgsanchez223/strictylalbums-be/internal/token"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithProfile(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UsernameTakenByOther(ctx context.Context, username string, userID uint) (bool, error) {
	args := m.Called(ctx, username, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newAuthTestServer(repo *MockUserRepository) *Server {
	return &Server{
		config:   &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1},
		tokens:   token.NewManager("test-secret", time.Hour),
		userRepo: repo,
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) models.Response {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out models.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username":        "testuser",
				"email":           "test@example.com",
				"password":        "password1",
				"confirmPassword": "password1",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*models.User).ID = 1
				})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"username":        "testuser",
				"email":           "exists@example.com",
				"password":        "password1",
				"confirmPassword": "password1",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
				m.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Duplicate username",
			body: map[string]string{
				"username":        "taken",
				"email":           "new@example.com",
				"password":        "password1",
				"confirmPassword": "password1",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "taken").Return(&models.User{ID: 2}, nil)
				m.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Invalid email",
			body: map[string]string{
				"username":        "testuser",
				"email":           "not-an-email",
				"password":        "password1",
				"confirmPassword": "password1",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Password mismatch",
			body: map[string]string{
				"username":        "testuser",
				"email":           "test@example.com",
				"password":        "password1",
				"confirmPassword": "password2",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Short password",
			body: map[string]string{
				"username":        "testuser",
				"email":           "test@example.com",
				"password":        "12345",
				"confirmPassword": "12345",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := newAuthTestServer(mockRepo)
			app := fiber.New()
			app.Post("/register", s.Register)

			resp := postJSON(t, app, "/register", tt.body)
			out := decodeResponse(t, resp)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusCreated {
				assert.True(t, out.Success)
				data := out.Data.(map[string]any)
				assert.NotEmpty(t, data["token"])
			} else {
				assert.False(t, out.Success)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
	mockRepo.On("GetByEmail", mock.Anything, "upper@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "upper@example.com"
	})).Return(nil)

	s := newAuthTestServer(mockRepo)
	app := fiber.New()
	app.Post("/register", s.Register)

	resp := postJSON(t, app, "/register", map[string]string{
		"username":        "testuser",
		"email":           "  UPPER@Example.COM ",
		"password":        "password1",
		"confirmPassword": "password1",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	account := &models.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: string(hash)}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"email": "alice@example.com", "password": "correct-password"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Unknown email",
			body: map[string]string{"email": "nobody@example.com", "password": "correct-password"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Wrong password",
			body: map[string]string{"email": "alice@example.com", "password": "wrong-password"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing password",
			body:           map[string]string{"email": "alice@example.com"},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := newAuthTestServer(mockRepo)
			app := fiber.New()
			app.Post("/login", s.Login)

			resp := postJSON(t, app, "/login", tt.body)
			out := decodeResponse(t, resp)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusOK {
				data := out.Data.(map[string]any)
				assert.NotEmpty(t, data["token"])
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

// A missing account invalidates the credential, but a failing user store must
// surface as a server error, not as a rejected token.
func TestAuthRequired_UserLoadFailures(t *testing.T) {
	tests := []struct {
		name           string
		loadErr        error
		expectedStatus int
	}{
		{
			name:           "Deleted account",
			loadErr:        models.NewNotFoundError("User"),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Store failure",
			loadErr:        models.NewInternalError(errors.New("connection refused")),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockRepo.On("GetByID", mock.Anything, uint(7)).Return(nil, tt.loadErr)

			s := newAuthTestServer(mockRepo)
			tok, err := s.tokens.Issue(7, "ghost")
			require.NoError(t, err)

			app := fiber.New()
			app.Get("/me", s.AuthRequired(), func(c *fiber.Ctx) error {
				return c.SendStatus(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

// An unknown address and a wrong password must be indistinguishable to the
// caller.
func TestLogin_NoAccountEnumeration(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	account := &models.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: string(hash)}

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	s := newAuthTestServer(mockRepo)
	app := fiber.New()
	app.Post("/login", s.Login)

	unknown := decodeResponse(t, postJSON(t, app, "/login",
		map[string]string{"email": "nobody@example.com", "password": "whatever1"}))
	wrongPass := decodeResponse(t, postJSON(t, app, "/login",
		map[string]string{"email": "alice@example.com", "password": "whatever1"}))

	assert.Equal(t, unknown.Message, wrongPass.Message)
}
