package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/app/services"
	"github.com/deniz/courseloop/internal/middleware"
	"github.com/deniz/courseloop/internal/pkg/helpers"
)

// ReviewController handles review lifecycle operations
type ReviewController struct {
	reviewService services.ReviewService
	courseService services.CourseService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService services.ReviewService, courseService services.CourseService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
		courseService: courseService,
	}
}

// CreateReview handles review submission
// @Summary Submit a review
// @Description Creates a review for a course offering. The caller must belong to the course's institution, hold a matching transcript entry with a reviewable grade, and must not have an active review for the same offering.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review content"
// @Success 201 {object} dto.APIResponse{data=dto.ReviewResponse} "Review created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Not eligible to review this offering"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed this offering"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	userID, isAdmin, ok := middleware.CallerIdentity(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	review, err := c.reviewService.CreateReview(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewReviewResponse(review, userID, isAdmin),
		Timestamp: time.Now(),
	})
}

// GetCourseReviews lists reviews for a course
// @Summary List course reviews
// @Description Retrieves active reviews for a course, newest first, with optional term and year filters
// @Tags reviews
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param term query string false "Filter by term"
// @Param year query int false "Filter by year"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewListResponse} "Reviews retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/course/{courseId} [get]
func (c *ReviewController) GetCourseReviews(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID").
			WithDetails("Course ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var term *models.Term
	if raw := ctx.Query("term"); raw != "" {
		t := models.Term(raw)
		term = &t
	}

	var year *int
	if raw := ctx.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year").
				WithDetails("Year must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		year = &y
	}

	page, size := helpers.ParsePaginationParams(ctx)

	// Anonymous author hiding applies to everyone on the public listing;
	// authenticated callers still see their own authorship.
	viewerID, viewerIsAdmin, _ := middleware.CallerIdentity(ctx)

	reviews, course, totalItems, err := c.reviewService.ListCourseReviews(ctx, courseID, term, year, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.NewReviewResponse(&reviews[i], viewerID, viewerIsAdmin))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ReviewListResponse{
			Reviews: responses,
			Course: &dto.CourseListContext{
				ID:         course.ID,
				CourseCode: course.Code(),
				Title:      course.Title,
			},
			PaginationInfo: helpers.NewPaginationInfo(totalItems, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GetReviewByID retrieves a single review
// @Summary Get a review
// @Description Retrieves a single active review by ID. Soft-deleted reviews are not returned.
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResponse} "Review retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid review ID"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/{id} [get]
func (c *ReviewController) GetReviewByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review ID").
			WithDetails("Review ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	viewerID, viewerIsAdmin, _ := middleware.CallerIdentity(ctx)

	review, err := c.reviewService.GetReview(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewReviewResponse(review, viewerID, viewerIsAdmin),
		Timestamp: time.Now(),
	})
}

// GetReviewTags lists the controlled tag vocabulary
// @Summary List review tags
// @Description Retrieves the controlled vocabulary of tags a review may carry
// @Tags reviews
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Tag} "Tags retrieved successfully"
// @Router /reviews/tags [get]
func (c *ReviewController) GetReviewTags(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      models.ReviewTags,
		Timestamp: time.Now(),
	})
}

// UpdateReview updates a review
// @Summary Update a review
// @Description Updates the mutable fields of a review. Only the author or an administrator may edit; course, term and year cannot be changed.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body dto.UpdateReviewRequest true "Review changes"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResponse} "Review updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Not the author of this review"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/{id} [put]
func (c *ReviewController) UpdateReview(ctx *gin.Context) {
	userID, isAdmin, ok := middleware.CallerIdentity(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review ID").
			WithDetails("Review ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	review, err := c.reviewService.UpdateReview(ctx, id, userID, isAdmin, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewReviewResponse(review, userID, isAdmin),
		Timestamp: time.Now(),
	})
}

// DeleteReview soft deletes a review
// @Summary Delete a review
// @Description Soft deletes a review. The row is retained but stops counting toward course aggregates. Only the author or an administrator may delete.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} dto.APIResponse "Review deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid review ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Not the author of this review"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/{id} [delete]
func (c *ReviewController) DeleteReview(ctx *gin.Context) {
	userID, isAdmin, ok := middleware.CallerIdentity(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review ID").
			WithDetails("Review ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.reviewService.DeleteReview(ctx, id, userID, isAdmin); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Review deleted successfully"},
		Timestamp: time.Now(),
	})
}

// RefreshAggregates forces an aggregate recalculation for a course
// @Summary Refresh course aggregates
// @Description Recalculates and persists the aggregate block for a course. With filterBySyllabus=true the filtered block is returned without being persisted. Administrators only.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param filterBySyllabus query bool false "Restrict to reviews after the syllabus revision date"
// @Success 200 {object} dto.APIResponse{data=models.AggregateBlock} "Aggregates recalculated"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Administrators only"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/refresh-aggregates/{courseId} [post]
func (c *ReviewController) RefreshAggregates(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID").
			WithDetails("Course ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	filterBySyllabus := ctx.Query("filterBySyllabus") == "true"

	block, err := c.courseService.RefreshAggregates(ctx, courseID, filterBySyllabus)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      block,
		Timestamp: time.Now(),
	})
}

func respondUnauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
		WithDetails("User information not found")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
