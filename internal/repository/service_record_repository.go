package repository

import (
	"context"

	"gorm.io/gorm"

	"carlisting/internal/model"
)

// ServiceRecordRepository defines service-record persistence operations.
type ServiceRecordRepository interface {
	Create(ctx context.Context, record *model.ServiceRecord) error
	Update(ctx context.Context, record *model.ServiceRecord) error
	FindByCarAndID(ctx context.Context, carID, recordID uint) (*model.ServiceRecord, error)
	ListByCar(ctx context.Context, carID uint) ([]model.ServiceRecord, error)
	Delete(ctx context.Context, record *model.ServiceRecord) error
}

type serviceRecordRepository struct {
	db *gorm.DB
}

// NewServiceRecordRepository creates a new service record repository.
func NewServiceRecordRepository(db *gorm.DB) ServiceRecordRepository {
	return &serviceRecordRepository{db: db}
}

func (r *serviceRecordRepository) Create(ctx context.Context, record *model.ServiceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *serviceRecordRepository) Update(ctx context.Context, record *model.ServiceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// FindByCarAndID scopes the lookup to the car so a record id from another car
// reads as not found.
func (r *serviceRecordRepository) FindByCarAndID(ctx context.Context, carID, recordID uint) (*model.ServiceRecord, error) {
	var record model.ServiceRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND car_id = ?", recordID, carID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *serviceRecordRepository) ListByCar(ctx context.Context, carID uint) ([]model.ServiceRecord, error) {
	var records []model.ServiceRecord
	if err := r.db.WithContext(ctx).Where("car_id = ?", carID).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *serviceRecordRepository) Delete(ctx context.Context, record *model.ServiceRecord) error {
	return r.db.WithContext(ctx).Delete(record).Error
}
