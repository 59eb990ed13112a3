package routes

import (
	"net/http"

	"paper-review-api/config"
	"paper-review-api/controllers"
	"paper-review-api/middleware"
	"paper-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// Stored PDFs are referenced as uploads/<name>
	router.Static("/uploads", config.App.UploadPath)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"message": "Paper Review API is running",
			})
		})

		users := api.Group("/users")
		{
			// Public
			users.POST("/login", controllers.Login)

			// Admin only
			admin := users.Group("", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
			admin.GET("", controllers.GetUsers)
			admin.GET("/reviewers", controllers.GetReviewers)
			admin.POST("/register", controllers.Register)
		}

		papers := api.Group("/papers")
		{
			// Public submission
			papers.POST("", controllers.SubmitPaper)

			protected := papers.Group("", middleware.AuthMiddleware())
			{
				adminOnly := middleware.RequireRole(models.RoleAdmin)
				reviewerOnly := middleware.RequireRole(models.RoleReviewer)

				protected.GET("/stats", adminOnly, controllers.GetPaperStats)
				protected.GET("/export", adminOnly, controllers.ExportPapers)
				protected.GET("/activity", adminOnly, controllers.PaperActivity)

				protected.GET("", controllers.GetPapers)
				protected.GET("/:id", controllers.GetPaper)
				protected.POST("/:id/review", reviewerOnly, controllers.SubmitReview)
				protected.PATCH("/:id/assign", adminOnly, controllers.AssignReviewer)
				protected.PATCH("/:id", adminOnly, controllers.UpdatePaperStatus)
				protected.DELETE("/:id", adminOnly, controllers.DeletePaper)
			}
		}
	}

	router.NoRoute(middleware.NotFound)
}

// NewRouter builds the engine with the shared middleware stack and all routes.
func NewRouter() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = config.App.MaxUploadSize

	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())

	SetupRoutes(router)
	return router
}
