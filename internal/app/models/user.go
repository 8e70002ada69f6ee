package models

import "time"

// User represents a platform account. Students carry an institution and an
// academic transcript; reviews are gated on both.
type User struct {
	ID           int64    `json:"id" db:"id"`
	Email        string   `json:"email" db:"email"`
	PasswordHash string   `json:"-" db:"password_hash"`
	FirstName    string   `json:"firstName" db:"first_name"`
	LastName     string   `json:"lastName" db:"last_name"`
	Role         RoleType `json:"role" db:"role"`
	Institution  string   `json:"institution" db:"institution"`
	Program      string   `json:"program,omitempty" db:"program"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	AcademicRecords []AcademicRecord `json:"academicRecords,omitempty"`
}

// AcademicRecord is a transcript entry: one course taken in one term with a
// resulting grade and credit weight. Immutable once recorded; no uniqueness
// constraint applies.
type AcademicRecord struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"-" db:"user_id"`
	Subject      string    `json:"subject" db:"subject"`
	CourseNumber string    `json:"courseNumber" db:"course_number"`
	Grade        Grade     `json:"grade" db:"grade"`
	CreditHours  float64   `json:"creditHours" db:"credit_hours"`
	Term         Term      `json:"term" db:"term"`
	Year         int       `json:"year" db:"year"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
