package models

import "time"

// ReviewStatus is the lifecycle state of a review.
type ReviewStatus string

const (
	ReviewStatusActive  ReviewStatus = "active"
	ReviewStatusDeleted ReviewStatus = "deleted"
)

// Metric bounds for all four review ratings.
const (
	MetricMin = 1
	MetricMax = 5
)

// MaxCommentLength bounds the free-text comment.
const MaxCommentLength = 2000

// Review is a student review of one course offering. At most one active
// review may exist per (course, author, term, year); a partial unique index
// enforces this in storage, so a soft-deleted review does not block a new one
// under the same key.
type Review struct {
	ID       int64 `json:"id" db:"id"`
	CourseID int64 `json:"courseId" db:"course_id"`
	AuthorID int64 `json:"authorId,omitempty" db:"author_id"`
	Term     Term  `json:"term" db:"term"`
	Year     int   `json:"year" db:"year"`

	// Metrics, each on a 1-5 scale
	Difficulty      int `json:"difficulty" db:"difficulty"`
	Usefulness      int `json:"usefulness" db:"usefulness"`
	Workload        int `json:"workload" db:"workload"`
	GradingFairness int `json:"gradingFairness" db:"grading_fairness"`

	Tags        []Tag  `json:"tags"`
	Comment     string `json:"comment" db:"comment"`
	IsAnonymous bool   `json:"isAnonymous" db:"is_anonymous"`

	Status ReviewStatus `json:"status" db:"status"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsActive reports whether the review participates in aggregates.
func (r *Review) IsActive() bool {
	return r.Status == ReviewStatusActive
}
