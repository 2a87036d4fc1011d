package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarStatus represents the lifecycle state of a listing.
type CarStatus string

const (
	CarStatusActive   CarStatus = "active"
	CarStatusSold     CarStatus = "sold"
	CarStatusReserved CarStatus = "reserved"
)

// Valid reports whether s is one of the known statuses.
func (s CarStatus) Valid() bool {
	switch s {
	case CarStatusActive, CarStatusSold, CarStatusReserved:
		return true
	}
	return false
}

// Car represents a car listing owned by a seller.
// VIN is globally unique when present; the column is nullable so
// listings without one do not collide on the index.
type Car struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	Price              decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Brand              string          `json:"brand" gorm:"size:100;not null"`
	Model              string          `json:"model" gorm:"size:100;not null"`
	Color              *string         `json:"color,omitempty" gorm:"size:50"`
	Year               int             `json:"year" gorm:"not null"`
	VIN                *string         `json:"vin,omitempty" gorm:"column:vin;uniqueIndex;size:17"`
	EngineDisplacement *float64        `json:"engine_displacement,omitempty"`
	EnginePower        *float64        `json:"engine_power,omitempty"`
	Mileage            *int            `json:"mileage,omitempty"`
	Description        *string         `json:"description,omitempty" gorm:"type:text"`
	SellerID           uint            `json:"seller_id" gorm:"not null;index"`
	Status             CarStatus       `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// Relations
	Seller         User            `json:"-" gorm:"foreignKey:SellerID"`
	ServiceRecords []ServiceRecord `json:"-" gorm:"foreignKey:CarID"`
	FavoritedBy    []UserFavorite  `json:"-" gorm:"foreignKey:CarID"`
}
