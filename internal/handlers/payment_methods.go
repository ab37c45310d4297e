package handlers

import (
	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePaymentMethod stores a payment method descriptor for the user
func CreatePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Kind      string `json:"kind" binding:"required,oneof=card mobile_money cash"`
			Label     string `json:"label" binding:"required"`
			LastFour  string `json:"lastFour"`
			IsDefault bool   `json:"isDefault"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		method := models.PaymentMethod{
			UserID:    userId,
			Kind:      input.Kind,
			Label:     input.Label,
			LastFour:  input.LastFour,
			IsDefault: input.IsDefault,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault {
				if err := tx.Model(&models.PaymentMethod{}).
					Where("user_id = ?", userId).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&method).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to save payment method"})
			return
		}

		c.JSON(201, gin.H{"status": "success", "data": method})
	}
}

// GetPaymentMethods lists the user's stored payment methods
func GetPaymentMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var methods []models.PaymentMethod
		if err := db.Where("user_id = ?", userId).Find(&methods).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payment methods"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": methods})
	}
}

// DeletePaymentMethod removes a stored payment method
func DeletePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		methodId := c.Param("id")
		userId := c.GetUint("userId")

		var method models.PaymentMethod
		if err := db.First(&method, methodId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Payment method not found"})
			return
		}

		if method.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		if err := db.Delete(&method).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete payment method"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "message": "Payment method deleted"})
	}
}

// SetDefaultPaymentMethod marks one method as the default
func SetDefaultPaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		methodId := c.Param("id")
		userId := c.GetUint("userId")

		var method models.PaymentMethod
		if err := db.First(&method, methodId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Payment method not found"})
			return
		}

		if method.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.PaymentMethod{}).
				Where("user_id = ?", userId).
				Update("is_default", false).Error; err != nil {
				return err
			}
			return tx.Model(&method).Update("is_default", true).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update payment method"})
			return
		}

		c.JSON(200, gin.H{"status": "success", "data": method})
	}
}
