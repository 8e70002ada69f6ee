package dto

import (
	"time"

	"github.com/deniz/courseloop/internal/app/models"
)

// CreateReviewRequest is the payload for submitting a review. The caller must
// hold a transcript entry matching the course and (term, year) offering.
type CreateReviewRequest struct {
	CourseID        int64        `json:"courseId" binding:"required" example:"42"`
	Term            models.Term  `json:"term" binding:"required" example:"Fall"`
	Year            int          `json:"year" binding:"required,min=2000,max=2100" example:"2025"`
	Difficulty      int          `json:"difficulty" binding:"required,min=1,max=5" example:"3"`
	Usefulness      int          `json:"usefulness" binding:"required,min=1,max=5" example:"4"`
	Workload        int          `json:"workload" binding:"required,min=1,max=5" example:"4"`
	GradingFairness int          `json:"gradingFairness" binding:"required,min=1,max=5" example:"5"`
	Tags            []models.Tag `json:"tags"`
	Comment         string       `json:"comment" binding:"max=2000"`
	IsAnonymous     bool         `json:"isAnonymous"`
}

// UpdateReviewRequest carries the mutable review fields. Nil fields are left
// unchanged; identity fields (course, term, year) cannot be changed.
type UpdateReviewRequest struct {
	Difficulty      *int          `json:"difficulty" binding:"omitempty,min=1,max=5"`
	Usefulness      *int          `json:"usefulness" binding:"omitempty,min=1,max=5"`
	Workload        *int          `json:"workload" binding:"omitempty,min=1,max=5"`
	GradingFairness *int          `json:"gradingFairness" binding:"omitempty,min=1,max=5"`
	Tags            *[]models.Tag `json:"tags"`
	Comment         *string       `json:"comment" binding:"omitempty,max=2000"`
	IsAnonymous     *bool         `json:"isAnonymous"`
}

// ReviewResponse is the API shape of a review. AuthorID is omitted for
// anonymous reviews unless the viewer is the author or an administrator.
type ReviewResponse struct {
	ID              int64        `json:"id"`
	CourseID        int64        `json:"courseId"`
	AuthorID        int64        `json:"authorId,omitempty"`
	Term            models.Term  `json:"term"`
	Year            int          `json:"year"`
	Difficulty      int          `json:"difficulty"`
	Usefulness      int          `json:"usefulness"`
	Workload        int          `json:"workload"`
	GradingFairness int          `json:"gradingFairness"`
	Tags            []models.Tag `json:"tags"`
	Comment         string       `json:"comment"`
	IsAnonymous     bool         `json:"isAnonymous"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// NewReviewResponse maps a review to its API shape, hiding the author of an
// anonymous review unless the viewer may see it.
func NewReviewResponse(review *models.Review, viewerID int64, viewerIsAdmin bool) *ReviewResponse {
	resp := &ReviewResponse{
		ID:              review.ID,
		CourseID:        review.CourseID,
		AuthorID:        review.AuthorID,
		Term:            review.Term,
		Year:            review.Year,
		Difficulty:      review.Difficulty,
		Usefulness:      review.Usefulness,
		Workload:        review.Workload,
		GradingFairness: review.GradingFairness,
		Tags:            review.Tags,
		Comment:         review.Comment,
		IsAnonymous:     review.IsAnonymous,
		CreatedAt:       review.CreatedAt,
		UpdatedAt:       review.UpdatedAt,
	}
	if review.IsAnonymous && review.AuthorID != viewerID && !viewerIsAdmin {
		resp.AuthorID = 0
	}
	return resp
}

// ReviewListResponse is a paginated list of reviews with course context.
type ReviewListResponse struct {
	Reviews        []ReviewResponse   `json:"reviews"`
	Course         *CourseListContext `json:"course,omitempty"`
	PaginationInfo PaginationInfo     `json:"pagination"`
}

// CourseListContext is the course summary attached to review listings.
type CourseListContext struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"courseCode"`
	Title      string `json:"title"`
}
