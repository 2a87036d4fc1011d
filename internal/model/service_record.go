package model

import "time"

// ServiceRecord is a maintenance entry attached to a car.
type ServiceRecord struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	CarID            uint      `json:"car_id" gorm:"not null;index"`
	MileageAtService int       `json:"mileage_at_service" gorm:"not null"`
	ServiceDate      time.Time `json:"service_date" gorm:"type:date;not null"`
	Grade            float64   `json:"grade" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	Car Car `json:"-" gorm:"foreignKey:CarID"`
}
