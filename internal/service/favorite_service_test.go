package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "carlisting/internal/errors"
	"carlisting/internal/model"
)

func TestFavoriteService_Add(t *testing.T) {
	alice := &model.User{ID: 2, Email: "alice@example.com"}

	tests := []struct {
		name          string
		carID         uint
		setupMock     func(*MockFavoriteRepository, *MockUserRepository, *MockCarRepository)
		expectedError error
	}{
		{
			name:  "first favorite succeeds",
			carID: 42,
			setupMock: func(favs *MockFavoriteRepository, users *MockUserRepository, cars *MockCarRepository) {
				users.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
				favs.On("Exists", mock.Anything, alice.ID, uint(42)).Return(false, nil)
				cars.On("FindByID", mock.Anything, uint(42)).Return(&model.Car{ID: 42}, nil)
				favs.On("Create", mock.Anything, mock.AnythingOfType("*model.UserFavorite")).Return(nil)
			},
		},
		{
			name:  "second favorite of the same pair fails",
			carID: 42,
			setupMock: func(favs *MockFavoriteRepository, users *MockUserRepository, cars *MockCarRepository) {
				users.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
				favs.On("Exists", mock.Anything, alice.ID, uint(42)).Return(true, nil)
			},
			expectedError: apperrors.ErrAlreadyFavorited,
		},
		{
			name:  "unknown car",
			carID: 404,
			setupMock: func(favs *MockFavoriteRepository, users *MockUserRepository, cars *MockCarRepository) {
				users.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
				favs.On("Exists", mock.Anything, alice.ID, uint(404)).Return(false, nil)
				cars.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCarNotFound,
		},
		{
			name:  "unknown user",
			carID: 42,
			setupMock: func(favs *MockFavoriteRepository, users *MockUserRepository, cars *MockCarRepository) {
				users.On("FindByEmail", mock.Anything, alice.Email).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFavs := new(MockFavoriteRepository)
			mockUsers := new(MockUserRepository)
			mockCars := new(MockCarRepository)
			tt.setupMock(mockFavs, mockUsers, mockCars)

			svc := NewFavoriteService(mockFavs, mockUsers, mockCars)
			err := svc.Add(context.Background(), tt.carID, alice.Email, false)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockFavs.AssertExpectations(t)
		})
	}
}

func TestFavoriteService_Remove(t *testing.T) {
	alice := &model.User{ID: 2, Email: "alice@example.com"}

	t.Run("existing favorite is removed", func(t *testing.T) {
		mockFavs := new(MockFavoriteRepository)
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
		mockFavs.On("Delete", mock.Anything, alice.ID, uint(42)).Return(true, nil)

		svc := NewFavoriteService(mockFavs, mockUsers, new(MockCarRepository))
		assert.NoError(t, svc.Remove(context.Background(), 42, alice.Email))
	})

	t.Run("missing favorite reads as not found", func(t *testing.T) {
		mockFavs := new(MockFavoriteRepository)
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
		mockFavs.On("Delete", mock.Anything, alice.ID, uint(42)).Return(false, nil)

		svc := NewFavoriteService(mockFavs, mockUsers, new(MockCarRepository))
		err := svc.Remove(context.Background(), 42, alice.Email)
		assert.ErrorIs(t, err, apperrors.ErrFavoriteNotFound)
	})
}

func TestFavoriteService_List(t *testing.T) {
	alice := &model.User{ID: 2, Email: "alice@example.com"}
	mileage := 64000

	mockFavs := new(MockFavoriteRepository)
	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByEmail", mock.Anything, alice.Email).Return(alice, nil)
	mockFavs.On("ListCarsByUser", mock.Anything, alice.ID).Return([]model.Car{
		{
			ID:      42,
			Brand:   "Toyota",
			Model:   "Corolla",
			Price:   decimal.NewFromInt(15000),
			Mileage: &mileage,
			Year:    2019,
			Status:  model.CarStatusActive,
			// Fields outside the projection
			SellerID: 3,
		},
	}, nil)

	svc := NewFavoriteService(mockFavs, mockUsers, new(MockCarRepository))
	favorites, err := svc.List(context.Background(), alice.Email)

	assert.NoError(t, err)
	assert.Len(t, favorites, 1)
	assert.Equal(t, FavoriteCar{
		ID:      42,
		Brand:   "Toyota",
		Model:   "Corolla",
		Price:   decimal.NewFromInt(15000),
		Mileage: &mileage,
		Year:    2019,
		Status:  model.CarStatusActive,
	}, favorites[0])
}
