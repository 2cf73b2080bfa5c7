package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"diarium/internal/auth"
	"diarium/internal/middleware"
	"diarium/internal/model"
	"diarium/internal/router"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func guardedEcho(jwtService *auth.JWTService, userRepo *MockUserRepository) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = router.HTTPErrorHandler
	guard := middleware.NewAccessGuard(jwtService, userRepo)
	e.GET("/protected", func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		return c.JSON(http.StatusOK, echo.Map{"username": user.Username})
	}, guard.Authenticate(), guard.ResolveUser)
	return e
}

func expiredToken(t *testing.T, secret string, userID uuid.UUID) string {
	claims := &auth.Claims{
		UserID: userID.String(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func TestAccessGuard_RejectsWithUniformBody(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()

	staleToken, err := jwtService.GenerateToken(userID)
	assert.NoError(t, err)

	tests := []struct {
		name      string
		header    string
		setupMock func(*MockUserRepository)
	}{
		{
			name: "no token presented",
		},
		{
			name:   "malformed token",
			header: "Bearer garbage",
		},
		{
			name:   "token signed with a different secret",
			header: "Bearer " + mustToken(t, auth.NewJWTService("other-secret"), userID),
		},
		{
			name:   "expired token",
			header: "Bearer " + expiredToken(t, "test-secret", userID),
		},
		{
			name:   "valid token for a deleted account",
			header: "Bearer " + staleToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
		},
	}

	// Every failure branch must be indistinguishable from the outside.
	const wantBody = `{"success":false,"message":"Not authorized"}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			if tt.setupMock != nil {
				tt.setupMock(userRepo)
			}
			e := guardedEcho(jwtService, userRepo)

			req := apitest.Handler(e).Get("/protected")
			if tt.header != "" {
				req.Header("Authorization", tt.header)
			}
			req.Expect(t).
				Status(http.StatusUnauthorized).
				Body(wantBody).
				End()

			userRepo.AssertExpectations(t)
		})
	}
}

func TestAccessGuard_ResolvesUser(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@x.com",
	}

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	e := guardedEcho(jwtService, userRepo)
	token := mustToken(t, jwtService, user.ID)

	apitest.Handler(e).
		Get("/protected").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Body(`{"username":"alice"}`).
		End()

	userRepo.AssertExpectations(t)
}

func TestAccessGuard_TokenNeverAuthenticatesAnotherUser(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	alice := &model.User{ID: uuid.New(), Username: "alice"}
	bob := &model.User{ID: uuid.New(), Username: "bob"}

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)
	userRepo.On("FindByID", mock.Anything, bob.ID).Return(bob, nil)

	e := guardedEcho(jwtService, userRepo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, jwtService, alice.ID))
	e.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, jwtService, bob.ID))
	e.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"username":"bob"`)

	userRepo.AssertExpectations(t)
}

func mustToken(t *testing.T, service *auth.JWTService, userID uuid.UUID) string {
	token, err := service.GenerateToken(userID)
	assert.NoError(t, err)
	return token
}
