package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/courseloop/internal/app/models/dto"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
	"github.com/deniz/courseloop/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Eligibility failures
// carry their own codes so clients can distinguish which check rejected them.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "Course not found"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "User not found"))
	case errors.Is(err, apperrors.ErrReviewNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "Review not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "Resource not found"))

	case errors.Is(err, apperrors.ErrInstitutionMismatch):
		respond(c, http.StatusForbidden, dto.ErrorCodeInstitutionMismatch, messageOr(err, apperrors.ErrInstitutionMismatch.Error()))
	case errors.Is(err, apperrors.ErrNoTranscriptEntry):
		respond(c, http.StatusForbidden, dto.ErrorCodeNoTranscriptEntry, messageOr(err, apperrors.ErrNoTranscriptEntry.Error()))
	case errors.Is(err, apperrors.ErrGradeNotReviewable):
		respond(c, http.StatusForbidden, dto.ErrorCodeGradeNotReviewable, messageOr(err, apperrors.ErrGradeNotReviewable.Error()))
	case errors.Is(err, apperrors.ErrAlreadyReviewed):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyReviewed, messageOr(err, apperrors.ErrAlreadyReviewed.Error()))

	case errors.Is(err, apperrors.ErrCourseAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOr(err, apperrors.ErrCourseAlreadyExists.Error()))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, messageOr(err, "Conflict"))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOr(err, "Permission denied"))

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOr prefers the wrapped CustomError message when one is attached.
func messageOr(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
