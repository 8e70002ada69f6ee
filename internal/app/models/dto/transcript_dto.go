package dto

import (
	"time"

	"github.com/deniz/courseloop/internal/app/models"
)

// AddAcademicRecordRequest is the payload for recording a transcript entry.
// Entries are immutable once recorded.
type AddAcademicRecordRequest struct {
	Subject      string       `json:"subject" binding:"required" example:"COMP"`
	CourseNumber string       `json:"courseNumber" binding:"required" example:"246"`
	Grade        models.Grade `json:"grade" binding:"required" example:"A-"`
	CreditHours  float64      `json:"creditHours" example:"3"`
	Term         models.Term  `json:"term" binding:"required" example:"Fall"`
	Year         int          `json:"year" binding:"required" example:"2025"`
}

// AcademicRecordResponse is the API shape of a transcript entry.
type AcademicRecordResponse struct {
	ID           int64        `json:"id"`
	Subject      string       `json:"subject"`
	CourseNumber string       `json:"courseNumber"`
	Grade        models.Grade `json:"grade"`
	CreditHours  float64      `json:"creditHours"`
	Term         models.Term  `json:"term"`
	Year         int          `json:"year"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// NewAcademicRecordResponse maps a transcript entry to its API shape.
func NewAcademicRecordResponse(record *models.AcademicRecord) AcademicRecordResponse {
	return AcademicRecordResponse{
		ID:           record.ID,
		Subject:      record.Subject,
		CourseNumber: record.CourseNumber,
		Grade:        record.Grade,
		CreditHours:  record.CreditHours,
		Term:         record.Term,
		Year:         record.Year,
		CreatedAt:    record.CreatedAt,
	}
}

// GPAResponse carries a plain GPA value for a history.
type GPAResponse struct {
	GPA    *float64 `json:"gpa"`
	Scheme string   `json:"scheme"`
}
