package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "carlisting/internal/errors"
	"carlisting/internal/model"
	"carlisting/internal/repository"
)

// ServiceRecordInput carries a full replacement of the record fields.
type ServiceRecordInput struct {
	MileageAtService int
	ServiceDate      time.Time
	Grade            float64
}

// ServiceRecordService handles maintenance records attached to cars. Reads are
// public; writes are allowed only for the car's seller or an admin.
type ServiceRecordService interface {
	List(ctx context.Context, carID uint) ([]model.ServiceRecord, error)
	GetByID(ctx context.Context, carID, recordID uint) (*model.ServiceRecord, error)
	Create(ctx context.Context, carID uint, input ServiceRecordInput, requesterEmail string, isAdmin bool) (*model.ServiceRecord, error)
	Update(ctx context.Context, carID, recordID uint, input ServiceRecordInput, requesterEmail string, isAdmin bool) (*model.ServiceRecord, error)
	Delete(ctx context.Context, carID, recordID uint, requesterEmail string, isAdmin bool) error
}

type serviceRecordService struct {
	recordRepo repository.ServiceRecordRepository
	carRepo    repository.CarRepository
}

// NewServiceRecordService creates a new service record service.
func NewServiceRecordService(recordRepo repository.ServiceRecordRepository, carRepo repository.CarRepository) ServiceRecordService {
	return &serviceRecordService{
		recordRepo: recordRepo,
		carRepo:    carRepo,
	}
}

// authorizeWrite loads the car and checks the requester may modify its
// records. isAdmin comes pre-resolved from the role claim, saving a lookup.
func (s *serviceRecordService) authorizeWrite(ctx context.Context, carID uint, requesterEmail string, isAdmin bool) (*model.Car, error) {
	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}
	if !isAdmin && car.Seller.Email != requesterEmail {
		return nil, apperrors.ErrAuthorizationFailed
	}
	return car, nil
}

// List returns all records of the car.
func (s *serviceRecordService) List(ctx context.Context, carID uint) ([]model.ServiceRecord, error) {
	if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}
	return s.recordRepo.ListByCar(ctx, carID)
}

// GetByID returns a single record; a record id belonging to another car
// reads as not found.
func (s *serviceRecordService) GetByID(ctx context.Context, carID, recordID uint) (*model.ServiceRecord, error) {
	record, err := s.recordRepo.FindByCarAndID(ctx, carID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return record, nil
}

// Create attaches a record to the car.
func (s *serviceRecordService) Create(ctx context.Context, carID uint, input ServiceRecordInput, requesterEmail string, isAdmin bool) (*model.ServiceRecord, error) {
	if _, err := s.authorizeWrite(ctx, carID, requesterEmail, isAdmin); err != nil {
		return nil, err
	}

	record := &model.ServiceRecord{
		CarID:            carID,
		MileageAtService: input.MileageAtService,
		ServiceDate:      input.ServiceDate,
		Grade:            input.Grade,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return record, nil
}

// Update replaces the record fields.
func (s *serviceRecordService) Update(ctx context.Context, carID, recordID uint, input ServiceRecordInput, requesterEmail string, isAdmin bool) (*model.ServiceRecord, error) {
	record, err := s.recordRepo.FindByCarAndID(ctx, carID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}

	if _, err := s.authorizeWrite(ctx, carID, requesterEmail, isAdmin); err != nil {
		return nil, err
	}

	record.MileageAtService = input.MileageAtService
	record.ServiceDate = input.ServiceDate
	record.Grade = input.Grade

	if err := s.recordRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	return record, nil
}

// Delete removes the record.
func (s *serviceRecordService) Delete(ctx context.Context, carID, recordID uint, requesterEmail string, isAdmin bool) error {
	record, err := s.recordRepo.FindByCarAndID(ctx, carID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRecordNotFound
		}
		return fmt.Errorf("find record: %w", err)
	}

	if _, err := s.authorizeWrite(ctx, carID, requesterEmail, isAdmin); err != nil {
		return err
	}

	if err := s.recordRepo.Delete(ctx, record); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
