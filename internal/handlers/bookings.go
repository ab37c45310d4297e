package handlers

import (
	"context"
	"errors"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/AlexYeap93/ridealong-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateBooking reserves a seat on an active ride. The seat and capacity
// checks run inside the insert transaction; the partial unique index on
// (ride_id, seat_number) is the final arbiter between two racing riders.
func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeRider) {
			c.JSON(403, gin.H{"error": "Only riders can create bookings"})
			return
		}

		var input struct {
			RideID         uint   `json:"rideId" binding:"required"`
			SeatNumber     int    `json:"seatNumber" binding:"required,min=1"`
			PickupLocation string `json:"pickupLocation" binding:"required"`
			PickupTime     string `json:"pickupTime"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		err := db.Transaction(func(tx *gorm.DB) error {
			var ride models.Ride
			if err := tx.First(&ride, input.RideID).Error; err != nil {
				return err
			}

			if ride.Status != models.RideStatusActive {
				return models.ErrRideNotActive
			}
			if input.SeatNumber > ride.AvailableSeats {
				return models.ErrSeatOutOfRange
			}

			var taken int64
			if err := tx.Model(&models.Booking{}).
				Where("ride_id = ? AND seat_number = ? AND status != ?",
					ride.ID, input.SeatNumber, models.BookingStatusCancelled).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return models.ErrSeatTaken
			}

			var booked int64
			if err := tx.Model(&models.Booking{}).
				Where("ride_id = ? AND status != ?", ride.ID, models.BookingStatusCancelled).
				Count(&booked).Error; err != nil {
				return err
			}
			if int(booked) >= ride.AvailableSeats {
				return models.ErrRideFull
			}

			booking = models.Booking{
				RiderID:        userId,
				RideID:         ride.ID,
				SeatNumber:     input.SeatNumber,
				PickupLocation: input.PickupLocation,
				PickupTime:     input.PickupTime,
				Status:         models.BookingStatusConfirmed,
			}
			return tx.Create(&booking).Error
		})

		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		case errors.Is(err, models.ErrRideNotActive):
			c.JSON(400, gin.H{"error": "Ride is not active"})
			return
		case errors.Is(err, models.ErrSeatOutOfRange):
			c.JSON(400, gin.H{"error": "Seat number out of range"})
			return
		case errors.Is(err, models.ErrSeatTaken), errors.Is(err, gorm.ErrDuplicatedKey):
			// A racer that slipped past the count check loses on the unique index
			c.JSON(409, gin.H{"error": "Seat is already taken"})
			return
		case errors.Is(err, models.ErrRideFull):
			c.JSON(409, gin.H{"error": "Ride has no remaining seats"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		var ride models.Ride
		if err := db.First(&ride, booking.RideID).Error; err == nil {
			hub.SendBookingEvent(ride.DriverID, "booking_created", services.BookingEvent{
				BookingID: booking.ID,
				RideID:    booking.RideID,
				Status:    string(booking.Status),
				Message:   "A rider booked a seat on your ride",
			})
		}

		services.PublishBookingUpdate(context.Background(), booking.ID, string(booking.Status), nil)

		c.JSON(201, gin.H{"status": "success", "data": booking})
	}
}

// GetRiderBookings retrieves all bookings made by the authenticated rider
func GetRiderBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Where("rider_id = ?", userId).
			Preload("Ride").
			Preload("Ride.Driver").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": bookings})
	}
}

// GetDriverBookings retrieves all bookings on the authenticated driver's rides
func GetDriverBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Joins("JOIN rides ON rides.id = bookings.ride_id").
			Where("rides.driver_id = ?", userId).
			Preload("Rider").
			Preload("Ride").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": bookings})
	}
}

// GetBookingStatus retrieves detailed booking information. Riders poll this
// endpoint for negotiation updates when not connected via WebSocket.
func GetBookingStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.Preload("Ride").
			Preload("Ride.Driver").
			Preload("Rider").
			First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.RiderID != userId && booking.Ride.DriverID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		c.JSON(200, gin.H{
			"status": "success",
			"data": gin.H{
				"id":                booking.ID,
				"bookingStatus":     booking.Status,
				"negotiationStatus": booking.NegotiationStatus,
				"additionalAmount":  booking.AdditionalAmount,
				"seatNumber":        booking.SeatNumber,
				"pickupLocation":    booking.PickupLocation,
				"pickupTime":        booking.PickupTime,
				"riderName":         booking.Rider.Username,
				"driverName":        booking.Ride.Driver.Username,
				"destination":       booking.Ride.Destination,
				"date":              booking.Ride.Date,
				"departureTime":     booking.Ride.DepartureTime,
				"pricePerSeat":      booking.Ride.PricePerSeat,
			},
		})
	}
}

// CancelBooking transitions a confirmed booking to cancelled, releasing its
// seat. Either the rider or the ride's driver may cancel.
func CancelBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.Preload("Ride").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.RiderID != userId && booking.Ride.DriverID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to cancel this booking"})
			return
		}

		if err := booking.Cancel(); err != nil {
			c.JSON(400, gin.H{"error": "Only confirmed bookings can be cancelled"})
			return
		}

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel booking"})
			return
		}

		// Tell the other party
		notify := booking.RiderID
		if userId == booking.RiderID {
			notify = booking.Ride.DriverID
		}
		hub.SendBookingEvent(notify, "booking_cancelled", services.BookingEvent{
			BookingID: booking.ID,
			RideID:    booking.RideID,
			Status:    string(booking.Status),
			Message:   "Booking was cancelled",
		})

		services.PublishBookingUpdate(context.Background(), booking.ID, string(booking.Status), nil)

		c.JSON(200, gin.H{"status": "success", "data": booking})
	}
}

// RequestAdditionalAmount lets the driver open a pickup amount negotiation on
// a confirmed booking.
func RequestAdditionalAmount(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			Amount float64 `json:"amount" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.Preload("Ride").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.Ride.DriverID != userId {
			c.JSON(403, gin.H{"error": "Only the ride's driver can request an additional amount"})
			return
		}

		if err := booking.RequestAdditionalAmount(input.Amount); err != nil {
			switch {
			case errors.Is(err, models.ErrNegotiationExists):
				c.JSON(400, gin.H{"error": "A negotiation already exists for this booking"})
			case errors.Is(err, models.ErrInvalidAmount):
				c.JSON(400, gin.H{"error": "Amount must be positive"})
			default:
				c.JSON(400, gin.H{"error": "Booking must be confirmed to negotiate"})
			}
			return
		}

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		hub.SendBookingEvent(booking.RiderID, "negotiation_requested", services.BookingEvent{
			BookingID:         booking.ID,
			RideID:            booking.RideID,
			Status:            string(booking.Status),
			NegotiationStatus: string(booking.NegotiationStatus),
			AdditionalAmount:  booking.AdditionalAmount,
			Message:           "The driver requested an additional pickup amount",
		})

		services.PublishBookingUpdate(context.Background(), booking.ID, string(booking.Status), map[string]interface{}{
			"negotiationStatus": booking.NegotiationStatus,
		})

		c.JSON(200, gin.H{"status": "success", "data": booking})
	}
}

// RespondAdditionalAmount lets the rider accept or decline a pending
// negotiation. Declining cancels the booking; any refund is handled outside
// this system.
func RespondAdditionalAmount(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			Accept *bool `json:"accept" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.Preload("Ride").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.RiderID != userId {
			c.JSON(403, gin.H{"error": "Only the booking's rider can respond"})
			return
		}

		if err := booking.RespondAdditionalAmount(*input.Accept); err != nil {
			c.JSON(400, gin.H{"error": "No pending negotiation for this booking"})
			return
		}

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		message := "The rider accepted the additional amount"
		if !*input.Accept {
			message = "The rider declined the additional amount; booking cancelled"
		}
		hub.SendBookingEvent(booking.Ride.DriverID, "negotiation_resolved", services.BookingEvent{
			BookingID:         booking.ID,
			RideID:            booking.RideID,
			Status:            string(booking.Status),
			NegotiationStatus: string(booking.NegotiationStatus),
			AdditionalAmount:  booking.AdditionalAmount,
			Message:           message,
		})

		services.PublishBookingUpdate(context.Background(), booking.ID, string(booking.Status), map[string]interface{}{
			"negotiationStatus": booking.NegotiationStatus,
		})

		c.JSON(200, gin.H{"status": "success", "data": booking})
	}
}
