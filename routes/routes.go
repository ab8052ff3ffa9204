package routes

import (
	"donation-management-api/controllers"
	"donation-management-api/middleware"
	"donation-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)
			public.POST("/refresh", controllers.RefreshToken)

			// Approved donations are shown on the public landing page.
			public.GET("/donations/approved", controllers.GetApprovedDonations)
			public.GET("/monetary-donations/approved", controllers.GetApprovedMonetaryDonations)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Donation Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Status sets and transition history
			protected.GET("/statuses", controllers.GetStatuses)
			protected.GET("/submissions/:type/:id/history",
				middleware.RequireRole(models.RoleAdmin), controllers.GetStatusHistory)

			// Material donations
			donations := protected.Group("/donations")
			{
				donations.POST("", controllers.CreateMaterialDonation)
				donations.GET("/pending", middleware.RequireRole(models.RoleAdmin), controllers.GetPendingDonations)
				donations.GET("/:id", controllers.GetMaterialDonation)

				// Only admin can move donations through the workflow
				donations.PATCH("/:id/status", middleware.RequireRole(models.RoleAdmin), controllers.UpdateDonationStatus)
			}

			// Monetary donations
			monetary := protected.Group("/monetary-donations")
			{
				monetary.POST("", controllers.CreateMonetaryDonation)
				monetary.GET("/pending", middleware.RequireRole(models.RoleAdmin), controllers.GetPendingMonetaryDonations)
				monetary.GET("/:id", controllers.GetMonetaryDonation)
				monetary.PATCH("/:id/status", middleware.RequireRole(models.RoleAdmin), controllers.UpdateMonetaryDonationStatus)
			}

			// Volunteers
			volunteers := protected.Group("/volunteers")
			{
				volunteers.POST("", controllers.RegisterVolunteer)
				volunteers.GET("", middleware.RequireRole(models.RoleAdmin), controllers.GetVolunteers)
				volunteers.GET("/:id", controllers.GetVolunteer)
				volunteers.GET("/user/:userId", controllers.GetVolunteerByUser)
				volunteers.PUT("/:id", controllers.UpdateVolunteerProfile)

				// Admin-only workflow and management actions
				volunteers.PATCH("/:id/status", middleware.RequireRole(models.RoleAdmin), controllers.UpdateVolunteerStatus)
				volunteers.POST("/:id/tasks", middleware.RequireRole(models.RoleAdmin), controllers.AddVolunteerTask)
				volunteers.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteVolunteer)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}
		}
	}
}
