package handlers

import (
	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateRating records a rider's rating of a completed booking and folds it
// into the driver's aggregate. One rating per booking, enforced both here and
// by the unique index on ratings.booking_id.
func CreateRating(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			BookingID uint   `json:"bookingId" binding:"required"`
			Score     int    `json:"score" binding:"required,min=1,max=5"`
			Comment   string `json:"comment"`
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
			c.JSON(403, gin.H{"error": "Only the booking's rider can rate it"})
			return
		}

		if booking.Status != models.BookingStatusCompleted {
			c.JSON(400, gin.H{"error": "Only completed bookings can be rated"})
			return
		}

		var existing models.Rating
		if err := db.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
			c.JSON(409, gin.H{"error": "Booking has already been rated"})
			return
		}

		rating := models.Rating{
			BookingID: booking.ID,
			RiderID:   userId,
			DriverID:  booking.Ride.DriverID,
			Score:     input.Score,
			Comment:   input.Comment,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}

			var profile models.DriverProfile
			if err := tx.Where("user_id = ?", booking.Ride.DriverID).First(&profile).Error; err != nil {
				// Driver without a profile still gets the rating row
				return nil
			}
			profile.AddRating(input.Score)
			return tx.Save(&profile).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to save rating"})
			return
		}

		c.JSON(201, gin.H{"status": "success", "data": rating})
	}
}

// GetDriverRatings lists ratings received by a driver
func GetDriverRatings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.Param("driverId")

		var ratings []models.Rating
		if err := db.Where("driver_id = ?", driverId).
			Order("created_at DESC").
			Find(&ratings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch ratings"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": ratings})
	}
}
