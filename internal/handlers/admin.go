package handlers

import (
	"context"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/AlexYeap93/ridealong-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func requireAdmin(c *gin.Context) bool {
	if c.GetString("userType") != string(models.UserTypeAdmin) {
		c.JSON(403, gin.H{"error": "Admin access required"})
		return false
	}
	return true
}

// ListUsers returns all user accounts
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}

		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": users})
	}
}

func setSuspended(db *gorm.DB, suspended bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}

		userId := c.Param("id")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if user.UserType == string(models.UserTypeAdmin) {
			c.JSON(400, gin.H{"error": "Admin accounts cannot be suspended"})
			return
		}

		user.Suspended = suspended
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update user"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": user})
	}
}

// SuspendUser blocks a user account
func SuspendUser(db *gorm.DB) gin.HandlerFunc {
	return setSuspended(db, true)
}

// UnsuspendUser restores a suspended account
func UnsuspendUser(db *gorm.DB) gin.HandlerFunc {
	return setSuspended(db, false)
}

// ListPendingDrivers returns driver applications awaiting approval
func ListPendingDrivers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}

		var profiles []models.DriverProfile
		if err := db.Preload("User").
			Where("approved = ?", false).
			Order("created_at ASC").
			Find(&profiles).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch driver applications"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": profiles})
	}
}

// ApproveDriver approves a pending driver application and drops the cached
// approval status so the applicant's next poll sees the decision.
func ApproveDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}

		profileId := c.Param("id")

		var profile models.DriverProfile
		if err := db.First(&profile, profileId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver application not found"})
			return
		}

		if profile.Approved {
			c.JSON(400, gin.H{"error": "Driver is already approved"})
			return
		}

		profile.Approved = true
		if err := db.Save(&profile).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to approve driver"})
			return
		}

		services.InvalidateDriverApproval(context.Background(), profile.UserID)

		c.JSON(200, gin.H{"status": "success", "data": profile})
	}
}

// ListIssues returns all reported issues
func ListIssues(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}

		status := c.Query("status")

		var issues []models.Issue
		query := db.Preload("Reporter").Order("created_at DESC")
		if status != "" {
			query = query.Where("status = ?", status)
		}
		if err := query.Find(&issues).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch issues"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": issues})
	}
}

// UpdateIssueStatus moves an issue through the moderation flow
func UpdateIssueStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}

		issueId := c.Param("id")

		var input struct {
			Status string `json:"status" binding:"required,oneof=open under_review resolved closed"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var issue models.Issue
		if err := db.First(&issue, issueId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Issue not found"})
			return
		}

		if err := issue.Transition(models.IssueStatus(input.Status)); err != nil {
			c.JSON(400, gin.H{"error": "Invalid issue status transition"})
			return
		}

		if err := db.Save(&issue).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update issue"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": issue})
	}
}
