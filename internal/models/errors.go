package models

import "errors"

// Sentinel errors returned by the ride/booking state machines. Handlers map
// these onto HTTP status codes.
var (
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrRideNotActive       = errors.New("ride is not active")
	ErrRideFull            = errors.New("ride has no remaining seats")
	ErrSeatTaken           = errors.New("seat is already taken")
	ErrSeatOutOfRange      = errors.New("seat number out of range")
	ErrNegotiationExists   = errors.New("a negotiation already exists for this booking")
	ErrNegotiationNotFound = errors.New("no pending negotiation for this booking")
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrAlreadyRated        = errors.New("booking has already been rated")
	ErrInvalidIssueStatus  = errors.New("invalid issue status transition")
	ErrInvalidAmount       = errors.New("amount must be positive")
)
