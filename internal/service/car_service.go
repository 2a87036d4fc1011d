package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"carlisting/internal/cache"
	apperrors "carlisting/internal/errors"
	"carlisting/internal/model"
	"carlisting/internal/repository"
)

const carCacheTTL = 5 * time.Minute

// CarInput carries a full replacement of the car fields. Status empty means
// active on create; on update the caller's value is taken as-is.
type CarInput struct {
	Price              decimal.Decimal
	Brand              string
	Model              string
	Color              *string
	Year               int
	VIN                *string
	EngineDisplacement *float64
	EnginePower        *float64
	Mileage            *int
	Description        *string
	Status             model.CarStatus
}

// CarService handles car listing operations.
type CarService interface {
	List(ctx context.Context) ([]model.Car, error)
	GetByID(ctx context.Context, id uint) (*model.Car, error)
	Create(ctx context.Context, input CarInput, sellerEmail string) (*model.Car, error)
	Update(ctx context.Context, input CarInput, id uint, requesterEmail string) (*model.Car, error)
	Delete(ctx context.Context, id uint, requesterEmail string, isAdmin bool) error
}

type carService struct {
	carRepo  repository.CarRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewCarService creates a new car service.
func NewCarService(carRepo repository.CarRepository, userRepo repository.UserRepository, cache *cache.Client) CarService {
	return &carService{
		carRepo:  carRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *carService) cacheKey(id uint) string {
	return fmt.Sprintf("car:%d", id)
}

// List returns all listings. Public read.
func (s *carService) List(ctx context.Context) ([]model.Car, error) {
	return s.carRepo.List(ctx)
}

// GetByID returns a single listing. Public read with caching.
func (s *carService) GetByID(ctx context.Context, id uint) (*model.Car, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Car
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}

	if payload, err := json.Marshal(car); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, carCacheTTL)
	}
	return car, nil
}

// Create adds a listing for the seller resolved by email. A regular user is
// capped at one active listing; dealers and admins are not.
func (s *carService) Create(ctx context.Context, input CarInput, sellerEmail string) (*model.Car, error) {
	seller, err := s.userRepo.FindByEmail(ctx, sellerEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find seller: %w", err)
	}

	status := input.Status
	if status == "" {
		status = model.CarStatusActive
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if seller.Role == model.RoleUser && status == model.CarStatusActive {
		active, err := s.carRepo.CountActiveBySeller(ctx, seller.ID, 0)
		if err != nil {
			return nil, fmt.Errorf("count active listings: %w", err)
		}
		if active > 0 {
			return nil, apperrors.ErrSellLimit
		}
	}

	if input.VIN != nil && *input.VIN != "" {
		if taken, err := s.carRepo.ExistsByVIN(ctx, *input.VIN, 0); err != nil {
			return nil, fmt.Errorf("check vin: %w", err)
		} else if taken {
			return nil, apperrors.ErrVINTaken
		}
	}

	car := &model.Car{
		Price:              input.Price,
		Brand:              input.Brand,
		Model:              input.Model,
		Color:              input.Color,
		Year:               input.Year,
		VIN:                input.VIN,
		EngineDisplacement: input.EngineDisplacement,
		EnginePower:        input.EnginePower,
		Mileage:            input.Mileage,
		Description:        input.Description,
		SellerID:           seller.ID,
		Status:             status,
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	return car, nil
}

// Update replaces every field of the listing. Only the seller or an admin may
// update; the one-active rule and VIN uniqueness both exclude the car being
// edited so an unchanged listing always revalidates cleanly.
func (s *carService) Update(ctx context.Context, input CarInput, id uint, requesterEmail string) (*model.Car, error) {
	requester, err := s.userRepo.FindByEmail(ctx, requesterEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthorizationFailed
		}
		return nil, fmt.Errorf("resolve requester: %w", err)
	}

	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}

	if car.SellerID != requester.ID && requester.Role != model.RoleAdmin {
		return nil, apperrors.ErrAuthorizationFailed
	}

	status := input.Status
	if status == "" {
		status = model.CarStatusActive
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	seller := requester
	if car.SellerID != requester.ID {
		// Admin editing someone else's listing: the cap applies to the seller.
		seller, err = s.userRepo.FindByID(ctx, car.SellerID)
		if err != nil {
			return nil, fmt.Errorf("find seller: %w", err)
		}
	}
	if seller.Role == model.RoleUser && status == model.CarStatusActive {
		active, err := s.carRepo.CountActiveBySeller(ctx, seller.ID, car.ID)
		if err != nil {
			return nil, fmt.Errorf("count active listings: %w", err)
		}
		if active > 0 {
			return nil, apperrors.ErrSellLimit
		}
	}

	if input.VIN != nil && *input.VIN != "" {
		if taken, err := s.carRepo.ExistsByVIN(ctx, *input.VIN, car.ID); err != nil {
			return nil, fmt.Errorf("check vin: %w", err)
		} else if taken {
			return nil, apperrors.ErrVINTaken
		}
	}

	car.Price = input.Price
	car.Brand = input.Brand
	car.Model = input.Model
	car.Color = input.Color
	car.Year = input.Year
	car.VIN = input.VIN
	car.EngineDisplacement = input.EngineDisplacement
	car.EnginePower = input.EnginePower
	car.Mileage = input.Mileage
	car.Description = input.Description
	car.Status = status

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("update car: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(car.ID))
	return car, nil
}

// Delete removes a listing and its dependent rows. isAdmin is pre-resolved
// from the caller's verified role claim so the check costs no extra lookup.
func (s *carService) Delete(ctx context.Context, id uint, requesterEmail string, isAdmin bool) error {
	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCarNotFound
		}
		return fmt.Errorf("find car: %w", err)
	}

	if !isAdmin && car.Seller.Email != requesterEmail {
		return apperrors.ErrAuthorizationFailed
	}

	if err := s.carRepo.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
