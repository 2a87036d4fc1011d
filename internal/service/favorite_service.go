package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "carlisting/internal/errors"
	"carlisting/internal/model"
	"carlisting/internal/repository"
)

// FavoriteCar is the reduced listing projection returned for a favorites list.
type FavoriteCar struct {
	ID      uint            `json:"id"`
	Brand   string          `json:"brand"`
	Model   string          `json:"model"`
	Price   decimal.Decimal `json:"price"`
	Mileage *int            `json:"mileage,omitempty"`
	Year    int             `json:"year"`
	Status  model.CarStatus `json:"status"`
}

// FavoriteService handles per-user favorites.
type FavoriteService interface {
	Add(ctx context.Context, carID uint, userEmail string, priceChangeNotify bool) error
	Remove(ctx context.Context, carID uint, userEmail string) error
	List(ctx context.Context, userEmail string) ([]FavoriteCar, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	userRepo     repository.UserRepository
	carRepo      repository.CarRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, userRepo repository.UserRepository, carRepo repository.CarRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
		carRepo:      carRepo,
	}
}

func (s *favoriteService) user(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Add favorites a car for the user. Favoriting the same car twice is an
// error, not a no-op.
func (s *favoriteService) Add(ctx context.Context, carID uint, userEmail string, priceChangeNotify bool) error {
	user, err := s.user(ctx, userEmail)
	if err != nil {
		return err
	}

	if exists, err := s.favoriteRepo.Exists(ctx, user.ID, carID); err != nil {
		return fmt.Errorf("check favorite: %w", err)
	} else if exists {
		return apperrors.ErrAlreadyFavorited
	}

	if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCarNotFound
		}
		return fmt.Errorf("find car: %w", err)
	}

	favorite := &model.UserFavorite{
		UserID:            user.ID,
		CarID:             carID,
		PriceChangeNotify: priceChangeNotify,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return fmt.Errorf("create favorite: %w", err)
	}
	return nil
}

// Remove deletes the favorite pair.
func (s *favoriteService) Remove(ctx context.Context, carID uint, userEmail string) error {
	user, err := s.user(ctx, userEmail)
	if err != nil {
		return err
	}

	removed, err := s.favoriteRepo.Delete(ctx, user.ID, carID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if !removed {
		return apperrors.ErrFavoriteNotFound
	}
	return nil
}

// List returns the caller's favorited cars as a reduced projection.
func (s *favoriteService) List(ctx context.Context, userEmail string) ([]FavoriteCar, error) {
	user, err := s.user(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	cars, err := s.favoriteRepo.ListCarsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	favorites := make([]FavoriteCar, 0, len(cars))
	for _, car := range cars {
		favorites = append(favorites, FavoriteCar{
			ID:      car.ID,
			Brand:   car.Brand,
			Model:   car.Model,
			Price:   car.Price,
			Mileage: car.Mileage,
			Year:    car.Year,
			Status:  car.Status,
		})
	}
	return favorites, nil
}
