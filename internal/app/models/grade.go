package models

// Grade is a letter grade or administrative grade on a transcript entry.
type Grade string

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeDPlus  Grade = "D+"
	GradeD      Grade = "D"
	GradeF      Grade = "F"

	// Administrative grades, never mapped to points by any GPA scheme.
	GradePass       Grade = "P"
	GradeIncomplete Grade = "I"
	GradeWithdrawn  Grade = "W"
	GradeInProgress Grade = "In Progress"
)

// LetterGrades lists the grades that carry point values in GPA schemes.
var LetterGrades = []Grade{
	GradeAPlus, GradeA, GradeAMinus,
	GradeBPlus, GradeB, GradeBMinus,
	GradeCPlus, GradeC, GradeCMinus,
	GradeDPlus, GradeD,
	GradeF,
}

// AllGrades lists every valid grade value.
var AllGrades = append(append([]Grade{}, LetterGrades...),
	GradePass, GradeIncomplete, GradeWithdrawn, GradeInProgress)

// IsValid reports whether g is a member of the grade enumeration.
func (g Grade) IsValid() bool {
	for _, grade := range AllGrades {
		if g == grade {
			return true
		}
	}
	return false
}

// IsExcludedFromGPA reports whether g never contributes to a GPA, under any
// scheme.
func (g Grade) IsExcludedFromGPA() bool {
	switch g {
	case GradePass, GradeIncomplete, GradeWithdrawn, GradeInProgress:
		return true
	}
	return false
}

// IsReviewable reports whether a transcript entry with this grade permits
// reviewing the course. Completed and withdrawn courses qualify; incomplete
// and in-progress ones do not.
func (g Grade) IsReviewable() bool {
	switch g {
	case GradeIncomplete, GradeInProgress:
		return false
	}
	return g.IsValid()
}
