package models

import (
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type NegotiationStatus string

const (
	NegotiationNone     NegotiationStatus = ""
	NegotiationPending  NegotiationStatus = "pending"
	NegotiationAccepted NegotiationStatus = "accepted"
	NegotiationDeclined NegotiationStatus = "declined"
)

type Booking struct {
	gorm.Model
	RiderID           uint              `json:"riderId" gorm:"not null;index"`
	Rider             User              `json:"rider"`
	RideID            uint              `json:"rideId" gorm:"not null;index"`
	Ride              Ride              `json:"ride"`
	SeatNumber        int               `json:"seatNumber" gorm:"not null"`
	PickupLocation    string            `json:"pickupLocation" gorm:"not null"`
	PickupTime        string            `json:"pickupTime"`
	Status            BookingStatus     `json:"status" gorm:"not null;default:'confirmed'"`
	AdditionalAmount  *float64          `json:"additionalAmount"`
	NegotiationStatus NegotiationStatus `json:"negotiationStatus" gorm:"default:''"`
}

// Active reports whether the booking still holds its seat.
func (b *Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}

// Cancel transitions a confirmed booking to cancelled, releasing its seat.
func (b *Booking) Cancel() error {
	if b.Status != BookingStatusConfirmed {
		return ErrInvalidTransition
	}
	b.Status = BookingStatusCancelled
	return nil
}

// Complete transitions a confirmed booking to completed. Called when the
// driver completes the ride.
func (b *Booking) Complete() error {
	if b.Status != BookingStatusConfirmed {
		return ErrInvalidTransition
	}
	b.Status = BookingStatusCompleted
	return nil
}

// RequestAdditionalAmount starts the driver-initiated pickup amount
// negotiation. Only one negotiation may ever exist per booking.
func (b *Booking) RequestAdditionalAmount(amount float64) error {
	if b.Status != BookingStatusConfirmed {
		return ErrInvalidTransition
	}
	if b.NegotiationStatus != NegotiationNone {
		return ErrNegotiationExists
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b.AdditionalAmount = &amount
	b.NegotiationStatus = NegotiationPending
	return nil
}

// RespondAdditionalAmount resolves a pending negotiation. Accepting keeps the
// booking confirmed with the amount recorded as owed; declining forces the
// booking to cancelled.
func (b *Booking) RespondAdditionalAmount(accept bool) error {
	if b.NegotiationStatus != NegotiationPending {
		return ErrNegotiationNotFound
	}
	if accept {
		b.NegotiationStatus = NegotiationAccepted
		return nil
	}
	b.NegotiationStatus = NegotiationDeclined
	b.Status = BookingStatusCancelled
	return nil
}
