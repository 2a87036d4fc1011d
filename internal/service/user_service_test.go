package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "carlisting/internal/errors"
	"carlisting/internal/model"
)

func TestUserService_GetByID(t *testing.T) {
	admin := &model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
	alice := &model.User{ID: 2, Email: "alice@example.com", Role: model.RoleUser}

	tests := []struct {
		name           string
		targetID       uint
		requesterEmail string
		setupMock      func(*MockUserRepository)
		expectedError  error
	}{
		{
			name:           "self access allowed",
			targetID:       alice.ID,
			requesterEmail: alice.Email,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
				m.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)
			},
		},
		{
			name:           "admin may read anyone",
			targetID:       alice.ID,
			requesterEmail: admin.Email,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
				m.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)
			},
		},
		{
			name:           "non-admin reading another profile is forbidden",
			targetID:       admin.ID,
			requesterEmail: alice.Email,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
			},
			expectedError: apperrors.ErrAuthorizationFailed,
		},
		{
			name:           "unknown subject",
			targetID:       99,
			requesterEmail: admin.Email,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			user, err := svc.GetByID(context.Background(), tt.targetID, tt.requesterEmail)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.targetID, user.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_List(t *testing.T) {
	admin := &model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
	alice := &model.User{ID: 2, Email: "alice@example.com", Role: model.RoleUser}

	t.Run("admin gets all users", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
		mockRepo.On("List", mock.Anything).Return([]model.User{*admin, *alice}, nil)

		svc := NewUserService(mockRepo)
		users, err := svc.List(context.Background(), admin.Email)

		assert.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)

		svc := NewUserService(mockRepo)
		users, err := svc.List(context.Background(), alice.Email)

		assert.ErrorIs(t, err, apperrors.ErrAuthorizationFailed)
		assert.Nil(t, users)
	})
}

func TestUserService_Create(t *testing.T) {
	admin := &model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
	alice := &model.User{ID: 2, Email: "alice@example.com", Role: model.RoleUser}

	t.Run("admin may create an admin", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
		mockRepo.On("ExistsByEmail", mock.Anything, "second@example.com", uint(0)).Return(false, nil)
		mockRepo.On("ExistsByUsername", mock.Anything, "second", uint(0)).Return(false, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.Create(context.Background(), CreateUserInput{
			Username: "second",
			Email:    "second@example.com",
			Password: "password123",
			Role:     model.RoleAdmin,
		}, admin.Email)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-admin may not create an admin", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)

		svc := NewUserService(mockRepo)
		user, err := svc.Create(context.Background(), CreateUserInput{
			Username: "second",
			Email:    "second@example.com",
			Password: "password123",
			Role:     model.RoleAdmin,
		}, alice.Email)

		assert.ErrorIs(t, err, apperrors.ErrAuthorizationFailed)
		assert.Nil(t, user)
	})

	t.Run("anonymous may not create an admin", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository))
		_, err := svc.Create(context.Background(), CreateUserInput{
			Username: "second",
			Email:    "second@example.com",
			Password: "password123",
			Role:     model.RoleAdmin,
		}, "")

		assert.ErrorIs(t, err, apperrors.ErrAuthorizationFailed)
	})
}

func TestUserService_Update(t *testing.T) {
	alice := func() *model.User {
		return &model.User{ID: 2, Username: "alice", Email: "alice@example.com", Role: model.RoleUser}
	}
	admin := &model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}

	t.Run("self update keeps role and blocked flag", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(alice(), nil)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(alice(), nil)
		mockRepo.On("ExistsByEmail", mock.Anything, "alice@new.example.com", uint(2)).Return(false, nil)
		mockRepo.On("ExistsByUsername", mock.Anything, "alice", uint(2)).Return(false, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.Update(context.Background(), UpdateUserInput{
			Username: "alice",
			Email:    "alice@new.example.com",
			Role:     model.RoleUser,
		}, 2, "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "alice@new.example.com", user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("self role escalation is forbidden", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(alice(), nil)

		svc := NewUserService(mockRepo)
		_, err := svc.Update(context.Background(), UpdateUserInput{
			Username: "alice",
			Email:    "alice@example.com",
			Role:     model.RoleAdmin,
		}, 2, "alice@example.com")

		assert.ErrorIs(t, err, apperrors.ErrAuthorizationFailed)
	})

	t.Run("updating another user is forbidden for non-admin", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(alice(), nil)

		svc := NewUserService(mockRepo)
		_, err := svc.Update(context.Background(), UpdateUserInput{
			Username: "x",
			Email:    "x@example.com",
			Role:     model.RoleUser,
		}, 1, "alice@example.com")

		assert.ErrorIs(t, err, apperrors.ErrAuthorizationFailed)
	})

	t.Run("admin may block another user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(alice(), nil)
		mockRepo.On("ExistsByEmail", mock.Anything, "alice@example.com", uint(2)).Return(false, nil)
		mockRepo.On("ExistsByUsername", mock.Anything, "alice", uint(2)).Return(false, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.Update(context.Background(), UpdateUserInput{
			Username:  "alice",
			Email:     "alice@example.com",
			Role:      model.RoleUser,
			IsBlocked: true,
		}, 2, admin.Email)

		assert.NoError(t, err)
		assert.True(t, user.IsBlocked)
	})

	t.Run("duplicate email excluding self is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(alice(), nil)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(alice(), nil)
		mockRepo.On("ExistsByEmail", mock.Anything, "taken@example.com", uint(2)).Return(true, nil)

		svc := NewUserService(mockRepo)
		_, err := svc.Update(context.Background(), UpdateUserInput{
			Username: "alice",
			Email:    "taken@example.com",
			Role:     model.RoleUser,
		}, 2, "alice@example.com")

		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})
}

func TestUserService_Delete(t *testing.T) {
	admin := &model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
	alice := &model.User{ID: 2, Email: "alice@example.com", Role: model.RoleUser}

	tests := []struct {
		name           string
		targetID       uint
		requesterEmail string
		setupMock      func(*MockUserRepository)
		expectedError  error
	}{
		{
			name:           "self delete cascades",
			targetID:       alice.ID,
			requesterEmail: alice.Email,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
				m.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)
				m.On("DeleteCascade", mock.Anything, alice.ID).Return(nil)
			},
		},
		{
			name:           "admin delete cascades",
			targetID:       alice.ID,
			requesterEmail: admin.Email,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
				m.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)
				m.On("DeleteCascade", mock.Anything, alice.ID).Return(nil)
			},
		},
		{
			name:           "non-admin deleting someone else is forbidden",
			targetID:       admin.ID,
			requesterEmail: alice.Email,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
			},
			expectedError: apperrors.ErrAuthorizationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			err := svc.Delete(context.Background(), tt.targetID, tt.requesterEmail)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
