package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "carlisting/internal/errors"
	"carlisting/internal/model"
	"carlisting/internal/repository"
)

// UpdateUserInput carries a full replacement of the mutable user fields.
// Password is optional; empty keeps the current hash.
type UpdateUserInput struct {
	Username  string
	Email     string
	Password  string
	Role      model.Role
	IsBlocked bool
}

// CreateUserInput carries the fields for administrative user creation.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     model.Role
}

// UserService exposes user management with role and ownership checks built in,
// so the rules are testable without the HTTP layer.
type UserService interface {
	List(ctx context.Context, requesterEmail string) ([]model.User, error)
	GetByID(ctx context.Context, id uint, requesterEmail string) (*model.User, error)
	GetByEmail(ctx context.Context, email, requesterEmail string) (*model.User, error)
	Create(ctx context.Context, input CreateUserInput, requesterEmail string) (*model.User, error)
	Update(ctx context.Context, input UpdateUserInput, id uint, requesterEmail string) (*model.User, error)
	Delete(ctx context.Context, id uint, requesterEmail string) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// requester resolves the caller's account from the verified email claim.
func (s *userService) requester(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthorizationFailed
		}
		return nil, fmt.Errorf("resolve requester: %w", err)
	}
	return user, nil
}

// List returns all users with their listed cars. Admin only.
func (s *userService) List(ctx context.Context, requesterEmail string) ([]model.User, error) {
	requester, err := s.requester(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}
	if requester.Role != model.RoleAdmin {
		return nil, apperrors.ErrAuthorizationFailed
	}
	return s.userRepo.List(ctx)
}

// GetByID returns a user profile. Admin or the subject themself.
func (s *userService) GetByID(ctx context.Context, id uint, requesterEmail string) (*model.User, error) {
	requester, err := s.requester(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}
	if requester.Role != model.RoleAdmin && requester.ID != id {
		return nil, apperrors.ErrAuthorizationFailed
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// GetByEmail returns a user profile. Admin or the subject themself.
func (s *userService) GetByEmail(ctx context.Context, email, requesterEmail string) (*model.User, error) {
	requester, err := s.requester(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}
	if requester.Role != model.RoleAdmin && requester.Email != email {
		return nil, apperrors.ErrAuthorizationFailed
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Create adds a user. Creating an admin account requires the requester to
// already be an admin; requesterEmail may be empty for non-admin creation.
func (s *userService) Create(ctx context.Context, input CreateUserInput, requesterEmail string) (*model.User, error) {
	if !input.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	if input.Role == model.RoleAdmin {
		if requesterEmail == "" {
			return nil, apperrors.ErrAuthorizationFailed
		}
		requester, err := s.requester(ctx, requesterEmail)
		if err != nil {
			return nil, err
		}
		if requester.Role != model.RoleAdmin {
			return nil, apperrors.ErrAuthorizationFailed
		}
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

// Update replaces the mutable fields of a user. An admin may update anyone;
// anyone else may update only their own record and may not change their own
// role or blocked flag.
func (s *userService) Update(ctx context.Context, input UpdateUserInput, id uint, requesterEmail string) (*model.User, error) {
	requester, err := s.requester(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}
	if requester.Role != model.RoleAdmin {
		if requester.ID != id ||
			requester.Role != input.Role ||
			requester.IsBlocked != input.IsBlocked {
			return nil, apperrors.ErrAuthorizationFailed
		}
	}
	if !input.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if taken, err := s.userRepo.ExistsByEmail(ctx, input.Email, user.ID); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, apperrors.ErrEmailTaken
	}
	if taken, err := s.userRepo.ExistsByUsername(ctx, input.Username, user.ID); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		return nil, apperrors.ErrUsernameTaken
	}

	user.Username = input.Username
	user.Email = input.Email
	user.Role = input.Role
	user.IsBlocked = input.IsBlocked
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes a user and cascades to their cars, those cars' service
// records and every favorite link touching them. Admin or self only.
func (s *userService) Delete(ctx context.Context, id uint, requesterEmail string) error {
	requester, err := s.requester(ctx, requesterEmail)
	if err != nil {
		return err
	}
	if requester.Role != model.RoleAdmin && requester.ID != id {
		return apperrors.ErrAuthorizationFailed
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
