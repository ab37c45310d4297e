package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/AlexYeap93/ridealong-backend/internal/services"
	"github.com/AlexYeap93/ridealong-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// departureWindowMinutes is the symmetric match window for time filtering.
const departureWindowMinutes = 30

// CreateRide handles the creation of a new ride by an approved driver
func CreateRide(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can create rides"})
			return
		}

		var profile models.DriverProfile
		if err := db.Where("user_id = ?", userId).First(&profile).Error; err != nil {
			c.JSON(403, gin.H{"error": "Driver application required before creating rides"})
			return
		}
		if !profile.Approved {
			c.JSON(403, gin.H{"error": "Driver application is pending approval"})
			return
		}

		var input struct {
			Origin         string    `json:"origin" binding:"required"`
			Destination    string    `json:"destination" binding:"required"`
			Date           time.Time `json:"date" binding:"required"`
			DepartureTime  string    `json:"departureTime" binding:"required"`
			PricePerSeat   float64   `json:"pricePerSeat" binding:"required"`
			AvailableSeats int       `json:"availableSeats" binding:"required,min=1"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if _, err := utils.ParseClockMinutes(input.DepartureTime); err != nil {
			c.JSON(400, gin.H{"error": "Invalid departure time format"})
			return
		}

		if input.Date.Before(time.Now().Truncate(24 * time.Hour)) {
			c.JSON(400, gin.H{"error": "Ride date must be in the future"})
			return
		}

		if input.AvailableSeats > profile.SeatCapacity {
			c.JSON(400, gin.H{"error": "Available seats exceed vehicle capacity"})
			return
		}

		ride := models.Ride{
			DriverID:       userId,
			Origin:         input.Origin,
			Destination:    input.Destination,
			Date:           input.Date,
			DepartureTime:  input.DepartureTime,
			PricePerSeat:   input.PricePerSeat,
			AvailableSeats: input.AvailableSeats,
			Status:         models.RideStatusActive,
		}

		if err := db.Create(&ride).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create ride"})
			return
		}

		c.JSON(201, ride)
	}
}

// GetAvailableRides lists active rides matching destination, date and an
// optional departure-time window, annotated with the driver's name, rating
// and the derived remaining-seat count.
func GetAvailableRides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		destination := c.Query("destination")
		dateStr := c.Query("date")
		timeStr := c.Query("time")

		var rides []models.Ride
		query := db.Preload("Driver").Where("status = ?", models.RideStatusActive)

		if destination != "" {
			query = query.Where("LOWER(destination) LIKE LOWER(?)", "%"+strings.ToLower(destination)+"%")
		}
		if dateStr != "" {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
				return
			}
			query = query.Where("date >= ? AND date < ?", date, date.Add(24*time.Hour))
		}

		if err := query.Order("date ASC").Find(&rides).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch rides"})
			return
		}

		results := make([]gin.H, 0, len(rides))
		for _, ride := range rides {
			if timeStr != "" && !utils.WithinWindow(timeStr, ride.DepartureTime, departureWindowMinutes) {
				continue
			}

			var booked int64
			if err := db.Model(&models.Booking{}).
				Where("ride_id = ? AND status != ?", ride.ID, models.BookingStatusCancelled).
				Count(&booked).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to count bookings"})
				return
			}

			remaining := ride.AvailableSeats - int(booked)
			if remaining <= 0 {
				continue
			}

			var profile models.DriverProfile
			rating := 0.0
			if err := db.Where("user_id = ?", ride.DriverID).First(&profile).Error; err == nil {
				rating = profile.AverageRating()
			}

			results = append(results, gin.H{
				"id":             ride.ID,
				"origin":         ride.Origin,
				"destination":    ride.Destination,
				"date":           ride.Date,
				"departureTime":  ride.DepartureTime,
				"pricePerSeat":   ride.PricePerSeat,
				"availableSeats": ride.AvailableSeats,
				"remainingSeats": remaining,
				"driverName":     ride.Driver.Username,
				"driverRating":   rating,
			})
		}

		c.JSON(200, gin.H{"status": "success", "data": results})
	}
}

// GetDriverRides retrieves all rides created by the authenticated driver
func GetDriverRides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var rides []models.Ride
		if err := db.Where("driver_id = ?", userId).
			Order("date DESC").
			Find(&rides).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch driver rides"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": rides})
	}
}

// CompleteRide transitions an active ride to completed. The ride state, the
// confirmed bookings and the earnings credit are all read and written inside
// one transaction so a booking cancelled mid-flight is never overwritten.
func CompleteRide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideId := c.Param("rideId")
		userId := c.GetUint("userId")

		var ride models.Ride
		if err := db.First(&ride, rideId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		if ride.DriverID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to complete this ride"})
			return
		}

		var bookings []models.Booking
		earnings := 0.0
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&ride, ride.ID).Error; err != nil {
				return err
			}
			if err := ride.Complete(); err != nil {
				return err
			}

			if err := tx.Where("ride_id = ? AND status = ?", ride.ID, models.BookingStatusConfirmed).
				Find(&bookings).Error; err != nil {
				return err
			}

			for i := range bookings {
				if err := bookings[i].Complete(); err != nil {
					return err
				}
				earnings += ride.PricePerSeat
				if bookings[i].NegotiationStatus == models.NegotiationAccepted && bookings[i].AdditionalAmount != nil {
					earnings += *bookings[i].AdditionalAmount
				}
				if err := tx.Save(&bookings[i]).Error; err != nil {
					return err
				}
			}

			if err := tx.Save(&ride).Error; err != nil {
				return err
			}

			if earnings > 0 {
				return tx.Model(&models.DriverProfile{}).
					Where("user_id = ?", ride.DriverID).
					Update("total_earnings", gorm.Expr("total_earnings + ?", earnings)).Error
			}
			return nil
		})

		switch {
		case err == nil:
		case errors.Is(err, models.ErrInvalidTransition):
			c.JSON(400, gin.H{"error": "Ride must be active to complete"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to complete ride"})
			return
		}

		for i := range bookings {
			hub.SendBookingEvent(bookings[i].RiderID, "booking_completed", services.BookingEvent{
				BookingID: bookings[i].ID,
				RideID:    ride.ID,
				Status:    string(bookings[i].Status),
				Message:   "Your ride has been completed",
			})
		}

		c.JSON(200, gin.H{
			"status": "success",
			"data": gin.H{
				"rideId":            ride.ID,
				"rideStatus":        ride.Status,
				"completedBookings": len(bookings),
				"earnings":          earnings,
			},
		})
	}
}

// CancelRide transitions an active ride to cancelled and cascades the
// cancellation to all confirmed bookings, reading and writing both inside
// one transaction.
func CancelRide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideId := c.Param("rideId")
		userId := c.GetUint("userId")

		var ride models.Ride
		if err := db.First(&ride, rideId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Ride not found"})
			return
		}

		if ride.DriverID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to cancel this ride"})
			return
		}

		var bookings []models.Booking
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&ride, ride.ID).Error; err != nil {
				return err
			}
			if err := ride.Cancel(); err != nil {
				return err
			}

			if err := tx.Where("ride_id = ? AND status = ?", ride.ID, models.BookingStatusConfirmed).
				Find(&bookings).Error; err != nil {
				return err
			}

			for i := range bookings {
				if err := bookings[i].Cancel(); err != nil {
					return err
				}
				if err := tx.Save(&bookings[i]).Error; err != nil {
					return err
				}
			}

			return tx.Save(&ride).Error
		})

		switch {
		case err == nil:
		case errors.Is(err, models.ErrInvalidTransition):
			c.JSON(400, gin.H{"error": "Ride must be active to cancel"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to cancel ride"})
			return
		}

		for i := range bookings {
			hub.SendBookingEvent(bookings[i].RiderID, "booking_cancelled", services.BookingEvent{
				BookingID: bookings[i].ID,
				RideID:    ride.ID,
				Status:    string(bookings[i].Status),
				Message:   "The driver cancelled the ride",
			})
		}

		c.JSON(200, gin.H{
			"status": "success",
			"data": gin.H{
				"rideId":            ride.ID,
				"rideStatus":        ride.Status,
				"cancelledBookings": len(bookings),
			},
		})
	}
}
