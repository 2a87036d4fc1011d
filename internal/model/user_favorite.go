package model

import "time"

// UserFavorite links a user to a car they favorited.
// The (user, car) pair is the primary key; favoriting twice is an error,
// not an idempotent no-op.
type UserFavorite struct {
	UserID            uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CarID             uint      `json:"car_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt         time.Time `json:"created_at"`
	PriceChangeNotify bool      `json:"price_change_notify" gorm:"default:false"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
	Car  Car  `json:"-" gorm:"foreignKey:CarID"`
}
