package models

import "time"

// CourseRef points at another course by subject and number, used for
// prerequisite and corequisite lists.
type CourseRef struct {
	Subject string `json:"subject"`
	Number  string `json:"number"`
}

// Course is a catalog entry, unique per (institution, subject, number).
// The aggregate fields are derived from the course's active reviews and are
// written only by the aggregate recalculation; they are never edited directly.
type Course struct {
	ID          int64  `json:"id" db:"id"`
	Institution string `json:"institution" db:"institution"`
	Subject     string `json:"subject" db:"subject"`
	Number      string `json:"number" db:"number"`

	Title                string      `json:"title" db:"title"`
	Description          string      `json:"description" db:"description"`
	Credits              float64     `json:"credits" db:"credits"`
	SyllabusRevisionDate *time.Time  `json:"syllabusRevisionDate,omitempty" db:"syllabus_revision_date"`
	Prerequisites        []CourseRef `json:"prerequisites"`
	Corequisites         []CourseRef `json:"corequisites"`

	Aggregates AggregateBlock `json:"aggregates"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Code returns the display course code, e.g. "COMP 246".
func (c *Course) Code() string {
	return c.Subject + " " + c.Number
}

// AggregateBlock holds the derived review statistics for a course. Averages
// are nil until the course has at least the minimum number of active reviews.
type AggregateBlock struct {
	AvgDifficulty      *float64   `json:"avgDifficulty"`
	AvgUsefulness      *float64   `json:"avgUsefulness"`
	AvgWorkload        *float64   `json:"avgWorkload"`
	AvgGradingFairness *float64   `json:"avgGradingFairness"`
	NumReviews         int        `json:"numReviews"`
	TopTags            []Tag      `json:"topTags"`
	LastReviewAt       *time.Time `json:"lastReviewAt"`
}
