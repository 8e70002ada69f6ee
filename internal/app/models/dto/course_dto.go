package dto

import (
	"time"

	"github.com/deniz/courseloop/internal/app/models"
)

// CourseRefRequest references another course by subject and number.
type CourseRefRequest struct {
	Subject string `json:"subject" binding:"required" example:"COMP"`
	Number  string `json:"number" binding:"required" example:"120"`
}

// CreateCourseRequest is the payload for creating a catalog entry.
// The compound key (institution, subject, number) must be unique; the first
// writer wins and duplicates are rejected.
type CreateCourseRequest struct {
	Institution          string             `json:"institution" binding:"required" example:"Centennial College"`
	Subject              string             `json:"subject" binding:"required" example:"COMP"`
	Number               string             `json:"number" binding:"required" example:"246"`
	Title                string             `json:"title" binding:"required" example:"Web Interface Design"`
	Description          string             `json:"description"`
	Credits              float64            `json:"credits" binding:"omitempty,min=0,max=12" example:"4"`
	SyllabusRevisionDate *time.Time         `json:"syllabusRevisionDate"`
	Prerequisites        []CourseRefRequest `json:"prerequisites"`
	Corequisites         []CourseRefRequest `json:"corequisites"`
}

// UpdateCourseRequest is the payload for editing course metadata. Aggregate
// fields are not part of this request and cannot be set through it.
type UpdateCourseRequest struct {
	Title                *string            `json:"title"`
	Description          *string            `json:"description"`
	Credits              *float64           `json:"credits" binding:"omitempty,min=0,max=12"`
	SyllabusRevisionDate *time.Time         `json:"syllabusRevisionDate"`
	Prerequisites        []CourseRefRequest `json:"prerequisites"`
	Corequisites         []CourseRefRequest `json:"corequisites"`
}

// CourseResponse is the API shape of a catalog entry including its derived
// aggregate block.
type CourseResponse struct {
	ID                   int64                 `json:"id"`
	Institution          string                `json:"institution"`
	Subject              string                `json:"subject"`
	Number               string                `json:"number"`
	CourseCode           string                `json:"courseCode" example:"COMP 246"`
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	Credits              float64               `json:"credits"`
	SyllabusRevisionDate *time.Time            `json:"syllabusRevisionDate,omitempty"`
	Prerequisites        []models.CourseRef    `json:"prerequisites"`
	Corequisites         []models.CourseRef    `json:"corequisites"`
	Aggregates           models.AggregateBlock `json:"aggregates"`
	FilteredBySyllabus   bool                  `json:"filteredBySyllabus,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// NewCourseResponse maps a course model to its API shape.
func NewCourseResponse(course *models.Course) *CourseResponse {
	return &CourseResponse{
		ID:                   course.ID,
		Institution:          course.Institution,
		Subject:              course.Subject,
		Number:               course.Number,
		CourseCode:           course.Code(),
		Title:                course.Title,
		Description:          course.Description,
		Credits:              course.Credits,
		SyllabusRevisionDate: course.SyllabusRevisionDate,
		Prerequisites:        course.Prerequisites,
		Corequisites:         course.Corequisites,
		Aggregates:           course.Aggregates,
		CreatedAt:            course.CreatedAt,
		UpdatedAt:            course.UpdatedAt,
	}
}

// CourseListResponse is a paginated list of courses.
type CourseListResponse struct {
	Courses        []CourseResponse `json:"courses"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}
