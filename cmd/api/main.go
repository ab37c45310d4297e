package main

import (
	"log"
	"os"
	"time"

	"github.com/AlexYeap93/ridealong-backend/internal/database"
	"github.com/AlexYeap93/ridealong-backend/internal/handlers"
	"github.com/AlexYeap93/ridealong-backend/internal/middleware"
	"github.com/AlexYeap93/ridealong-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis is optional; without it the approval cache and the payment
	// double-submit guard degrade to direct DB reads
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored driver documents
	r.Static("/uploads", "./uploads")

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(db), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(db))
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
			}

			// Driver onboarding routes
			drivers := protected.Group("/drivers")
			{
				drivers.POST("/apply", handlers.ApplyDriver(db))
				drivers.GET("/status", handlers.GetDriverStatus(db))
				drivers.GET("/earnings", handlers.GetDriverEarnings(db))
			}

			// Rides routes
			rides := protected.Group("/rides")
			{
				rides.POST("", handlers.CreateRide(db))
				rides.GET("/available", handlers.GetAvailableRides(db))
				rides.GET("/driver", handlers.GetDriverRides(db))
				rides.POST("/:rideId/complete", handlers.CompleteRide(db, hub))
				rides.POST("/:rideId/cancel", handlers.CancelRide(db, hub))
			}

			// Bookings routes
			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db, hub))
				bookings.GET("/rider", handlers.GetRiderBookings(db))
				bookings.GET("/driver", handlers.GetDriverBookings(db))
				bookings.GET("/:id/status", handlers.GetBookingStatus(db))
				bookings.POST("/:id/cancel", handlers.CancelBooking(db, hub))
				bookings.POST("/:id/request-additional-amount", handlers.RequestAdditionalAmount(db, hub))
				bookings.POST("/:id/respond-additional-amount", handlers.RespondAdditionalAmount(db, hub))
			}

			// Payments routes
			payments := protected.Group("/payments")
			{
				payments.POST("", handlers.CreatePayment(db))
				payments.GET("/booking/:bookingId", handlers.GetBookingPayments(db))
			}

			// Payment methods routes
			paymentMethods := protected.Group("/payment-methods")
			{
				paymentMethods.POST("", handlers.CreatePaymentMethod(db))
				paymentMethods.GET("", handlers.GetPaymentMethods(db))
				paymentMethods.DELETE("/:id", handlers.DeletePaymentMethod(db))
				paymentMethods.PATCH("/:id/default", handlers.SetDefaultPaymentMethod(db))
			}

			// Ratings routes
			ratings := protected.Group("/ratings")
			{
				ratings.POST("", handlers.CreateRating(db))
				ratings.GET("/driver/:driverId", handlers.GetDriverRatings(db))
			}

			// Issues routes
			issues := protected.Group("/issues")
			{
				issues.POST("", handlers.CreateIssue(db))
				issues.GET("/mine", handlers.GetMyIssues(db))
			}

			// Admin moderation routes
			admin := protected.Group("/admin")
			{
				admin.GET("/users", handlers.ListUsers(db))
				admin.POST("/users/:id/suspend", handlers.SuspendUser(db))
				admin.POST("/users/:id/unsuspend", handlers.UnsuspendUser(db))
				admin.GET("/drivers/pending", handlers.ListPendingDrivers(db))
				admin.POST("/drivers/:id/approve", handlers.ApproveDriver(db))
				admin.GET("/issues", handlers.ListIssues(db))
				admin.PATCH("/issues/:id/status", handlers.UpdateIssueStatus(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
