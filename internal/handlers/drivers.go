package handlers

import (
	"context"
	"strconv"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/AlexYeap93/ridealong-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplyDriver submits a driver application with license and insurance
// documents (multipart form). Applications start unapproved.
func ApplyDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only driver accounts can apply"})
			return
		}

		var existing models.DriverProfile
		if err := db.Where("user_id = ?", userId).First(&existing).Error; err == nil {
			c.JSON(409, gin.H{"error": "Driver application already exists"})
			return
		}

		licenseNumber := c.PostForm("licenseNumber")
		insuranceProvider := c.PostForm("insuranceProvider")
		vehicleMake := c.PostForm("vehicleMake")
		vehiclePlate := c.PostForm("vehiclePlate")
		seatCapacityStr := c.PostForm("seatCapacity")

		if licenseNumber == "" || seatCapacityStr == "" {
			c.JSON(400, gin.H{"error": "licenseNumber and seatCapacity are required"})
			return
		}

		seatCapacity, err := strconv.Atoi(seatCapacityStr)
		if err != nil || seatCapacity < 1 {
			c.JSON(400, gin.H{"error": "seatCapacity must be a positive integer"})
			return
		}

		profile := models.DriverProfile{
			UserID:            userId,
			LicenseNumber:     licenseNumber,
			InsuranceProvider: insuranceProvider,
			VehicleMake:       vehicleMake,
			VehiclePlate:      vehiclePlate,
			SeatCapacity:      seatCapacity,
		}

		if file, err := c.FormFile("licenseDoc"); err == nil {
			url, err := services.UploadDocument(file, "documents/licenses")
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to upload license document"})
				return
			}
			profile.LicenseDocURL = url
		}

		if file, err := c.FormFile("insuranceDoc"); err == nil {
			url, err := services.UploadDocument(file, "documents/insurance")
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to upload insurance document"})
				return
			}
			profile.InsuranceDocURL = url
		}

		if err := db.Create(&profile).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create driver application"})
			return
		}

		c.JSON(201, gin.H{"status": "success", "data": profile})
	}
}

// GetDriverStatus reports the driver's approval status. Clients poll this
// every few seconds, so the answer is cached in Redis for the poll interval.
func GetDriverStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		ctx := context.Background()

		if approved, ok := services.GetDriverApproval(ctx, userId); ok {
			c.JSON(200, gin.H{"status": "success", "data": gin.H{"approved": approved}})
			return
		}

		var profile models.DriverProfile
		if err := db.Where("user_id = ?", userId).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver application not found"})
			return
		}

		services.SetDriverApproval(ctx, userId, profile.Approved)

		c.JSON(200, gin.H{"status": "success", "data": gin.H{"approved": profile.Approved}})
	}
}

// GetDriverEarnings reports the driver's aggregate earnings and rating
func GetDriverEarnings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var profile models.DriverProfile
		if err := db.Where("user_id = ?", userId).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver profile not found"})
			return
		}

		c.JSON(200, gin.H{
			"status": "success",
			"data": gin.H{
				"totalEarnings": profile.TotalEarnings,
				"rating":        profile.AverageRating(),
				"ratingCount":   profile.RatingCount,
			},
		})
	}
}
