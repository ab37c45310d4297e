package handlers

import (
	"context"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/AlexYeap93/ridealong-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePayment records a payment against a booking. There is no gateway;
// the amount and status are stored directly. A short-lived Redis claim on the
// (booking, amount) pair absorbs double submits from the client.
func CreatePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			BookingID uint    `json:"bookingId" binding:"required"`
			Amount    float64 `json:"amount" binding:"required,gt=0"`
			Method    string  `json:"method" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.Preload("Ride").First(&booking, input.BookingID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.RiderID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to pay for this booking"})
			return
		}

		claimed, err := services.ClaimPaymentSubmission(context.Background(), input.BookingID, input.Amount)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to verify payment submission"})
			return
		}
		if !claimed {
			c.JSON(409, gin.H{"error": "Payment already submitted for this booking"})
			return
		}

		payment := models.Payment{
			BookingID: input.BookingID,
			Amount:    input.Amount,
			Method:    input.Method,
			Status:    models.PaymentStatusCompleted,
		}

		if err := db.Create(&payment).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to record payment"})
			return
		}

		c.JSON(201, gin.H{"status": "success", "data": payment})
	}
}

// GetBookingPayments lists payments recorded against a booking
func GetBookingPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("bookingId")
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.Preload("Ride").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.RiderID != userId && booking.Ride.DriverID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		var payments []models.Payment
		if err := db.Where("booking_id = ?", booking.ID).Find(&payments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payments"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": payments})
	}
}
