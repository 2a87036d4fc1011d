package repository

import (
	"context"

	"gorm.io/gorm"

	"carlisting/internal/model"
)

// FavoriteRepository defines favorite-link persistence operations.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.UserFavorite) error
	Exists(ctx context.Context, userID, carID uint) (bool, error)
	Delete(ctx context.Context, userID, carID uint) (bool, error)
	ListCarsByUser(ctx context.Context, userID uint) ([]model.Car, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *model.UserFavorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, carID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserFavorite{}).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the favorite pair and reports whether a row existed.
func (r *favoriteRepository) Delete(ctx context.Context, userID, carID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Delete(&model.UserFavorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *favoriteRepository) ListCarsByUser(ctx context.Context, userID uint) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Joins("JOIN user_favorites ON user_favorites.car_id = cars.id").
		Where("user_favorites.user_id = ?", userID).
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}
