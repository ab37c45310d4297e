package handlers

import (
	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateIssue files an issue report, optionally against a booking
func CreateIssue(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			BookingID   *uint  `json:"bookingId"`
			Type        string `json:"type" binding:"required"`
			Description string `json:"description" binding:"required"`
			Priority    string `json:"priority" binding:"omitempty,oneof=low normal high"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.BookingID != nil {
			var booking models.Booking
			if err := db.First(&booking, *input.BookingID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Booking not found"})
				return
			}
		}

		priority := input.Priority
		if priority == "" {
			priority = "normal"
		}

		issue := models.Issue{
			ReporterID:  userId,
			BookingID:   input.BookingID,
			Type:        input.Type,
			Description: input.Description,
			Priority:    priority,
			Status:      models.IssueStatusOpen,
		}

		if err := db.Create(&issue).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create issue"})
			return
		}

		c.JSON(201, gin.H{"status": "success", "data": issue})
	}
}

// GetMyIssues lists issues filed by the authenticated user
func GetMyIssues(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var issues []models.Issue
		if err := db.Where("reporter_id = ?", userId).
			Order("created_at DESC").
			Find(&issues).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch issues"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": issues})
	}
}
