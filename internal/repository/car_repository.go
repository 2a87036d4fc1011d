package repository

import (
	"context"

	"gorm.io/gorm"

	"carlisting/internal/model"
)

// CarRepository defines car persistence operations.
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	Update(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id uint) (*model.Car, error)
	List(ctx context.Context) ([]model.Car, error)
	CountActiveBySeller(ctx context.Context, sellerID uint, excludeCarID uint) (int64, error)
	ExistsByVIN(ctx context.Context, vin string, excludeCarID uint) (bool, error)
	DeleteCascade(ctx context.Context, id uint) error
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new car repository.
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *carRepository) Update(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

func (r *carRepository) FindByID(ctx context.Context, id uint) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).Preload("Seller").First(&car, id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) List(ctx context.Context) ([]model.Car, error) {
	var cars []model.Car
	if err := r.db.WithContext(ctx).Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// CountActiveBySeller counts the seller's active listings. excludeCarID is
// skipped so the one-active rule does not trip over the car being edited.
func (r *carRepository) CountActiveBySeller(ctx context.Context, sellerID uint, excludeCarID uint) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("seller_id = ? AND status = ?", sellerID, model.CarStatusActive)
	if excludeCarID != 0 {
		q = q.Where("id <> ?", excludeCarID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *carRepository) ExistsByVIN(ctx context.Context, vin string, excludeCarID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Car{}).Where("vin = ?", vin)
	if excludeCarID != 0 {
		q = q.Where("id <> ?", excludeCarID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteCascade removes the car together with its service records and the
// favorite links pointing at it, in one transaction.
func (r *carRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", id).Delete(&model.ServiceRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("car_id = ?", id).Delete(&model.UserFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Car{}, id).Error
	})
}
