package models

import "gorm.io/gorm"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	gorm.Model
	BookingID uint          `json:"bookingId" gorm:"not null;index"`
	Booking   Booking       `json:"booking"`
	Amount    float64       `json:"amount" gorm:"not null"`
	Method    string        `json:"method" gorm:"not null"`
	Status    PaymentStatus `json:"status" gorm:"not null;default:'completed'"`
}
