package models

import (
	"time"

	"gorm.io/gorm"
)

type RideStatus string

const (
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

type Ride struct {
	gorm.Model
	DriverID       uint       `json:"driverId" gorm:"not null;index"`
	Driver         User       `json:"driver"`
	Origin         string     `json:"origin" gorm:"not null"`
	Destination    string     `json:"destination" gorm:"not null"`
	Date           time.Time  `json:"date" gorm:"not null"`
	DepartureTime  string     `json:"departureTime" gorm:"not null"`
	PricePerSeat   float64    `json:"pricePerSeat" gorm:"not null"`
	AvailableSeats int        `json:"availableSeats" gorm:"not null"`
	Status         RideStatus `json:"status" gorm:"not null;default:'active'"`
}

// Complete marks an active ride as completed. Confirmed bookings on the ride
// are completed by the caller in the same transaction.
func (r *Ride) Complete() error {
	if r.Status != RideStatusActive {
		return ErrInvalidTransition
	}
	r.Status = RideStatusCompleted
	return nil
}

// Cancel marks an active ride as cancelled. Confirmed bookings on the ride
// are cancelled by the caller in the same transaction.
func (r *Ride) Cancel() error {
	if r.Status != RideStatusActive {
		return ErrInvalidTransition
	}
	r.Status = RideStatusCancelled
	return nil
}
