package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/app/services"
	"github.com/deniz/courseloop/internal/middleware"
	"github.com/deniz/courseloop/internal/pkg/helpers"
)

// CourseController handles catalog operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles catalog entry creation
// @Summary Create a new course
// @Description Creates a catalog entry. The (institution, subject, number) key is unique; duplicates are rejected.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewCourseResponse(course),
		Timestamp: time.Now(),
	})
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Description Retrieves a course with its aggregate block. With filterBySyllabus=true the aggregates are recomputed at read time over reviews written since the syllabus revision date.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param filterBySyllabus query bool false "Restrict aggregates to reviews after the syllabus revision date"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID").
			WithDetails("Course ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	filterBySyllabus := ctx.Query("filterBySyllabus") == "true"

	course, filtered, err := c.courseService.GetCourse(ctx, id, filterBySyllabus)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewCourseResponse(course)
	resp.FilteredBySyllabus = filtered

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetAllCourses lists courses
// @Summary List courses
// @Description Retrieves courses with optional institution, subject and title filters
// @Tags courses
// @Accept json
// @Produce json
// @Param institution query string false "Filter by institution"
// @Param subject query string false "Filter by subject code"
// @Param search query string false "Search in course title"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	courses, totalItems, err := c.courseService.ListCourses(ctx,
		ctx.Query("institution"), ctx.Query("subject"), ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, *dto.NewCourseResponse(&courses[i]))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.CourseListResponse{
			Courses:        responses,
			PaginationInfo: helpers.NewPaginationInfo(totalItems, page, size),
		},
		Timestamp: time.Now(),
	})
}

// UpdateCourse updates course metadata
// @Summary Update course metadata
// @Description Updates title, description, credits, syllabus date and requisites. Aggregate fields cannot be changed through this endpoint.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course metadata"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID").
			WithDetails("Course ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewCourseResponse(course),
		Timestamp: time.Now(),
	})
}
