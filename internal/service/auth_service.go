package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carlisting/internal/auth"
	apperrors "carlisting/internal/errors"
	"carlisting/internal/model"
	"carlisting/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     model.Role
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, username, password string) (accessToken string, err error)
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
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

// Login authenticates by email or username and issues a signed access token.
// Unknown identity, a wrong password and a blocked account are reported
// identically so the response does not reveal which accounts exist.
func (s *authService) Login(ctx context.Context, email, username, password string) (string, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case email != "":
		user, err = s.userRepo.FindByEmail(ctx, email)
	case username != "":
		user, err = s.userRepo.FindByUsername(ctx, username)
	default:
		return "", apperrors.ErrAuthenticationFailed
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrAuthenticationFailed
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if user.IsBlocked {
		return "", apperrors.ErrAuthenticationFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrAuthenticationFailed
	}

	token, err := s.jwtService.GenerateToken(user.Username, user.Role, user.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}

// Register creates a user or dealer account. Admin accounts cannot
// self-register; they are created through the user service by an admin.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Role != model.RoleUser && input.Role != model.RoleDealer {
		return nil, apperrors.ErrAuthorizationFailed
	}
	if input.Password == "" {
		return nil, apperrors.ErrInvalidPassword
	}

	if taken, err := s.userRepo.ExistsByEmail(ctx, input.Email, 0); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, apperrors.ErrEmailTaken
	}
	if taken, err := s.userRepo.ExistsByUsername(ctx, input.Username, 0); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		return nil, apperrors.ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         input.Role,
		IsBlocked:    false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
