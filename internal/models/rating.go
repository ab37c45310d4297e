package models

import "gorm.io/gorm"

// Rating is a rider's score for a completed booking. The unique index on
// BookingID keeps it to at most one per booking.
type Rating struct {
	gorm.Model
	BookingID uint    `json:"bookingId" gorm:"not null;uniqueIndex"`
	Booking   Booking `json:"booking"`
	RiderID   uint    `json:"riderId" gorm:"not null"`
	DriverID  uint    `json:"driverId" gorm:"not null;index"`
	Score     int     `json:"score" gorm:"not null"`
	Comment   string  `json:"comment"`
}
