package handlers

import (
	"github.com/AlexYeap93/ridealong-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler upgrades the connection and registers the client with the
// hub so booking and negotiation events reach them without polling
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		services.ServeWS(hub, c.Writer, c.Request, userId, userType)
	}
}
