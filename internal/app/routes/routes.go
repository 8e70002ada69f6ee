package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/deniz/courseloop/internal/app/controllers"
	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	reviewController *controllers.ReviewController,
	transcriptController *controllers.TranscriptController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public catalog and review reads ---
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)
	}

	reviews := v1.Group("/reviews")
	{
		reviews.GET("/tags", reviewController.GetReviewTags)
		reviews.GET("/course/:courseId", reviewController.GetCourseReviews)
		reviews.GET("/:id", reviewController.GetReviewByID)
	}

	v1.GET("/gpa/schemes", transcriptController.GetGPASchemes)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		coursesProtected := authenticated.Group("/courses")
		{
			coursesProtected.POST("", courseController.CreateCourse)
			coursesProtected.PUT("/:id", courseController.UpdateCourse)
		}

		reviewsProtected := authenticated.Group("/reviews")
		{
			reviewsProtected.POST("", reviewController.CreateReview)
			reviewsProtected.PUT("/:id", reviewController.UpdateReview)
			reviewsProtected.DELETE("/:id", reviewController.DeleteReview)

			// Manual recalculation trigger is restricted to administrators
			reviewsAdminProtected := reviewsProtected.Group("")
			reviewsAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				reviewsAdminProtected.POST("/refresh-aggregates/:courseId", reviewController.RefreshAggregates)
			}
		}

		me := authenticated.Group("/users/me")
		{
			me.GET("/academic-records", transcriptController.GetAcademicRecords)
			me.POST("/academic-records", transcriptController.AddAcademicRecord)
			me.GET("/gpa", transcriptController.GetGPA)
		}
	}
}
