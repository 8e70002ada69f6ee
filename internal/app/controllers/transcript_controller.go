package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deniz/courseloop/internal/app/gpa"
	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/app/services"
	"github.com/deniz/courseloop/internal/middleware"
)

// TranscriptController handles academic records and GPA queries
type TranscriptController struct {
	transcriptService services.TranscriptService
}

// NewTranscriptController creates a new TranscriptController
func NewTranscriptController(transcriptService services.TranscriptService) *TranscriptController {
	return &TranscriptController{transcriptService: transcriptService}
}

// AddAcademicRecord records a transcript entry
// @Summary Add an academic record
// @Description Records a transcript entry for the caller. Entries are immutable once recorded.
// @Tags transcript
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddAcademicRecordRequest true "Transcript entry"
// @Success 201 {object} dto.APIResponse{data=dto.AcademicRecordResponse} "Record added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid record data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/academic-records [post]
func (c *TranscriptController) AddAcademicRecord(ctx *gin.Context) {
	userID, _, ok := middleware.CallerIdentity(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.AddAcademicRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid record data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record, err := c.transcriptService.AddRecord(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewAcademicRecordResponse(record),
		Timestamp: time.Now(),
	})
}

// GetAcademicRecords lists the caller's transcript entries
// @Summary List academic records
// @Description Retrieves the caller's transcript entries in chronological order
// @Tags transcript
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AcademicRecordResponse} "Records retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/academic-records [get]
func (c *TranscriptController) GetAcademicRecords(ctx *gin.Context) {
	userID, _, ok := middleware.CallerIdentity(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	records, err := c.transcriptService.ListRecords(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AcademicRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, dto.NewAcademicRecordResponse(&records[i]))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetGPA computes the caller's GPA
// @Summary Get GPA
// @Description Computes the caller's GPA under the requested grading scheme. With detailed=true a full breakdown is returned; with term and year set the GPA is scoped to that term; with byTerm=true a per-term breakdown list is returned.
// @Tags transcript
// @Produce json
// @Security BearerAuth
// @Param scheme query string false "Grading scheme key (unknown names fall back to the default)"
// @Param detailed query bool false "Return a full breakdown"
// @Param byTerm query bool false "Return one breakdown per (term, year) on the transcript"
// @Param term query string false "Term for a term-scoped GPA (requires year)"
// @Param year query int false "Year for a term-scoped GPA (requires term)"
// @Success 200 {object} dto.APIResponse{data=dto.GPAResponse} "GPA computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/gpa [get]
func (c *TranscriptController) GetGPA(ctx *gin.Context) {
	userID, _, ok := middleware.CallerIdentity(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	scheme := ctx.Query("scheme")
	termStr := ctx.Query("term")
	yearStr := ctx.Query("year")

	if termStr != "" || yearStr != "" {
		if termStr == "" || yearStr == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Term-scoped GPA requires both term and year")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year").
				WithDetails("Year must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		term := models.Term(termStr)
		if !term.IsValid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid term").
				WithField("term")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}

		breakdown, err := c.transcriptService.GPAForTerm(ctx, userID, term, year, scheme)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: breakdown, Timestamp: time.Now()})
		return
	}

	if ctx.Query("byTerm") == "true" {
		breakdowns, err := c.transcriptService.GPAByTerm(ctx, userID, scheme)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: breakdowns, Timestamp: time.Now()})
		return
	}

	if ctx.Query("detailed") == "true" {
		breakdown, err := c.transcriptService.GPADetailed(ctx, userID, scheme)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.APIResponse{Data: breakdown, Timestamp: time.Now()})
		return
	}

	value, resolved, err := c.transcriptService.GPA(ctx, userID, scheme)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.GPAResponse{GPA: value, Scheme: resolved},
		Timestamp: time.Now(),
	})
}

// GetGPASchemes lists the registered grading schemes
// @Summary List grading schemes
// @Description Retrieves the registered grading schemes, default scheme first
// @Tags transcript
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]gpa.SchemeInfo} "Schemes retrieved successfully"
// @Router /gpa/schemes [get]
func (c *TranscriptController) GetGPASchemes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gpa.AvailableSchemes(),
		Timestamp: time.Now(),
	})
}
