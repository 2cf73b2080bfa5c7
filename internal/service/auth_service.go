package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"diarium/internal/auth"
	"diarium/internal/errors"
	"diarium/internal/model"
	"diarium/internal/repository"
)

const passwordMinLen = 6

// AuthService handles registration, login and identity lookups.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password and issues a token.
// Username and email must be globally unique; the plaintext password is
// hashed before the user record ever reaches the repository.
func (s *authService) Register(ctx context.Context, username, email, password string) (string, *model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return "", nil, errors.NewValidationError("All fields are required: username, email, password")
	}
	if len(password) < passwordMinLen {
		return "", nil, errors.NewValidationError(fmt.Sprintf("Password must be at least %d characters", passwordMinLen))
	}

	if err := s.checkIdentityFree(ctx, username, email); err != nil {
		return "", nil, err
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A racing registration can slip past the lookup; the unique
		// indexes surface it here.
		if err == gorm.ErrDuplicatedKey {
			return "", nil, errors.ErrDuplicateIdentity
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user by email and password and issues a token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, errors.ErrWrongPassword
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

func (s *authService) checkIdentityFree(ctx context.Context, username, email string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return errors.ErrDuplicateIdentity
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}

	existing, err = s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return errors.ErrDuplicateIdentity
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check username: %w", err)
	}

	return nil
}
