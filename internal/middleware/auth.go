package middleware

import (
	"fmt"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"diarium/internal/auth"
	"diarium/internal/errors"
	"diarium/internal/model"
	"diarium/internal/repository"
)

const (
	// tokenContextKey is where echo-jwt stores the parsed token result.
	tokenContextKey = "user"
	// userContextKey is where the resolved account is attached.
	userContextKey = "current_user"
)

// AccessGuard gates resource routes behind a resolved identity. A
// missing token, an invalid or expired token, and a valid token whose
// account has since been deleted all produce the same 401; callers
// cannot tell the failure branches apart.
type AccessGuard struct {
	jwtService *auth.JWTService
	userRepo   repository.UserRepository
}

// NewAccessGuard creates a new access guard.
func NewAccessGuard(jwtService *auth.JWTService, userRepo repository.UserRepository) *AccessGuard {
	return &AccessGuard{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// Authenticate verifies the Authorization bearer token and stores the
// embedded user ID in the request context.
func (g *AccessGuard) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: tokenContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return g.jwtService.ValidateToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errors.ErrUnauthenticated
		},
	})
}

// ResolveUser loads the account referenced by the verified token and
// attaches it to the request context. A token for a deleted account is
// rejected the same way as a missing or invalid one.
func (g *AccessGuard) ResolveUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get(tokenContextKey).(uuid.UUID)
		if !ok {
			return errors.ErrUnauthenticated
		}

		user, err := g.userRepo.FindByID(c.Request().Context(), userID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUnauthenticated
			}
			return fmt.Errorf("resolve user: %w", err)
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// CurrentUser returns the account resolved by the access guard, or nil
// when the route is not behind it.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
