package routes

import (
	"journal-review-api/controllers"
	"journal-review-api/middleware"
	"journal-review-api/models"

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
			public.POST("/auth/register", controllers.Register)
			public.POST("/auth/login", controllers.Login)
			public.POST("/auth/refresh", controllers.RefreshToken)

			// Published content is readable without an account
			public.GET("/volumes", controllers.GetVolumes)
			public.GET("/volumes/:id/issues", controllers.GetVolumeIssues)
			public.GET("/issues/:id/articles", controllers.GetIssueArticles)
			public.GET("/articles/:id", controllers.GetArticle)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Journal Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/auth/logout", controllers.Logout)
			protected.GET("/auth/profile", controllers.GetProfile)
			protected.PUT("/auth/change-password", controllers.ChangePassword)

			// Submissions
			submissions := protected.Group("/submissions")
			{
				// Authors submit and manage their own manuscripts
				submissions.POST("", middleware.RequireRole(models.RoleAuthor, models.RoleAdmin), controllers.CreateSubmission)
				submissions.GET("/my", middleware.RequireRole(models.RoleAuthor, models.RoleAdmin), controllers.GetMySubmissions)
				submissions.PUT("/:id", middleware.RequireRole(models.RoleAuthor, models.RoleAdmin), controllers.UpdateSubmission)
				submissions.POST("/:id/resubmit", middleware.RequireRole(models.RoleAuthor, models.RoleAdmin), controllers.ResubmitManuscript)
				submissions.DELETE("/:id", middleware.RequireRole(models.RoleAuthor, models.RoleAdmin), controllers.DeleteSubmission)

				// Ownership checks inside the service cover mixed-audience reads
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.GET("/:id/manuscript", controllers.DownloadManuscript)

				// Editorial listing and decisions
				submissions.GET("", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetAllSubmissions)
				submissions.PUT("/:id/status", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.UpdateSubmissionStatus)
			}

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.POST("", middleware.RequireRole(models.RoleReviewer), controllers.CreateReview)
				reviews.GET("/dashboard", middleware.RequireRole(models.RoleReviewer), controllers.GetReviewerDashboard)

				reviews.POST("/assign", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.AssignReviewer)
				reviews.GET("/submission/:id", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetSubmissionReviews)
				reviews.GET("/submission/:id/summary", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetSubmissionReviewSummary)
			}

			// User management
			users := protected.Group("/users")
			{
				users.GET("/reviewers", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetReviewers)

				users.GET("", middleware.RequireRole(models.RoleAdmin), controllers.GetUsers)
				users.GET("/:id", middleware.RequireRole(models.RoleAdmin), controllers.GetUser)
				users.PUT("/:id/role", middleware.RequireRole(models.RoleAdmin), controllers.UpdateUserRole)
				users.PUT("/:id/deactivate", middleware.RequireRole(models.RoleAdmin), controllers.DeactivateUser)
				users.PUT("/:id/activate", middleware.RequireRole(models.RoleAdmin), controllers.ActivateUser)
			}

			// Publication hierarchy (writes only; reads are public)
			protected.POST("/volumes", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.CreateVolume)
			protected.POST("/volumes/:id/issues", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.CreateIssue)
			protected.POST("/issues/:id/articles", middleware.RequireRole(models.RoleAdmin), controllers.PublishArticle)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}
		}
	}
}
