package routes

import (
	"collab-platform-api/controllers"
	"collab-platform-api/middleware"
	"collab-platform-api/models"

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
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Collab Platform API is running",
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

			// Projects
			projects := protected.Group("/projects")
			{
				projects.GET("", controllers.GetProjects)
				projects.GET("/:id", controllers.GetProject)

				// Companies submit and edit their own projects
				projects.POST("", middleware.RequireRole(models.RoleCompany), controllers.CreateProject)
				projects.PUT("/:id", middleware.RequireRole(models.RoleCompany), controllers.UpdateProject)
				projects.POST("/:id/complete", middleware.RequireRole(models.RoleCompany), controllers.CompleteProject)

				// Lab admins run the validation gate and status overrides
				projects.PUT("/:id/status", middleware.RequireRole(models.RoleLabAdmin), controllers.UpdateProjectStatus)
				projects.POST("/:id/validate", middleware.RequireRole(models.RoleLabAdmin), controllers.ValidateProject)

				// Mentor workspace
				projects.POST("/:id/request-complete", middleware.RequireRole(models.RoleMentor), controllers.RequestComplete)
				projects.GET("/:id/tasks", controllers.GetProjectTasks)
				projects.POST("/:id/tasks", middleware.RequireRole(models.RoleMentor), controllers.CreateTask)

				// Workflow reads scoped to a project
				projects.GET("/:id/change-requests", controllers.GetProjectChangeRequests)
				projects.GET("/:id/payments", controllers.GetProjectPayments)
				projects.GET("/:id/fund-allocations", controllers.GetProjectAllocations)
			}

			// Tasks
			protected.PUT("/tasks/:id/status",
				middleware.RequireRole(models.RoleMentor, models.RoleTalent),
				controllers.UpdateTaskStatus)

			// Change requests
			requests := protected.Group("/change-requests")
			{
				requests.POST("", middleware.RequireRole(models.RoleCompany, models.RoleMentor), controllers.CreateChangeRequest)
				requests.GET("/:id", controllers.GetChangeRequest)

				// Lab admins decide and apply
				requests.POST("/:id/approve", middleware.RequireRole(models.RoleLabAdmin), controllers.ApproveChangeRequest)
				requests.POST("/:id/reject", middleware.RequireRole(models.RoleLabAdmin), controllers.RejectChangeRequest)
				requests.POST("/:id/apply", middleware.RequireRole(models.RoleLabAdmin, models.RoleMentor), controllers.ApplyChangeRequest)

				// Requesters withdraw their own pending requests
				requests.POST("/:id/cancel", controllers.CancelChangeRequest)
				requests.DELETE("/:id", controllers.DeleteChangeRequest)
			}

			// Payments
			payments := protected.Group("/payments")
			{
				payments.GET("", controllers.GetPayments)
				payments.POST("/:id/confirm", middleware.RequireRole(models.RoleLabAdmin), controllers.ConfirmPayment)
			}

			// Fund allocations
			allocations := protected.Group("/fund-allocations")
			{
				allocations.POST("", middleware.RequireRole(models.RoleLabAdmin), controllers.CreateFundAllocation)
				allocations.GET("/payment/:payment_id", controllers.GetAllocationByPayment)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
				dashboard.GET("/allocation-summary", middleware.RequireRole(models.RoleLabAdmin), controllers.GetAllocationSummary)
			}
		}
	}
}
