package gpa

import (
	"fmt"
	"math"
	"strings"

	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/pkg/apperrors"
	"github.com/deniz/courseloop/internal/pkg/validation"
)

// Calculate computes the credit-hour-weighted GPA of the given transcript
// entries under the named scheme.
//
// Formula: GPA = Σ(points × creditHours) / Σ(creditHours), over entries whose
// grade is neither administratively excluded (P, I, W, In Progress) nor
// unmapped in the scheme. Excluded and unmapped entries contribute to neither
// numerator nor denominator. Returns nil when no entry counts, which
// distinguishes "no data" from a failing GPA of zero. The result is rounded
// half-up to 3 decimal places.
func Calculate(entries []models.AcademicRecord, scheme string) *float64 {
	if len(entries) == 0 {
		return nil
	}

	points := SchemeFor(scheme).Points

	var totalGradePoints, totalCreditHours float64
	for _, entry := range entries {
		if entry.Grade.IsExcludedFromGPA() {
			continue
		}
		gradePoints, ok := points[entry.Grade]
		if !ok {
			continue
		}
		totalGradePoints += gradePoints * entry.CreditHours
		totalCreditHours += entry.CreditHours
	}

	if totalCreditHours == 0 {
		return nil
	}

	gpa := roundHalfUp(totalGradePoints/totalCreditHours, 3)
	return &gpa
}

// Breakdown reports a GPA together with how it was computed.
type Breakdown struct {
	GPA                *float64             `json:"gpa"`
	Scheme             string               `json:"scheme"`
	Scale              float64              `json:"scale"`
	TotalCreditHours   float64              `json:"totalCreditHours"`
	CreditHoursCounted float64              `json:"creditHoursCounted"`
	RecordsIncluded    int                  `json:"recordsIncluded"`
	RecordsExcluded    int                  `json:"recordsExcluded"`
	GradeBreakdown     map[models.Grade]int `json:"gradeBreakdown"`
}

// CalculateDetailed computes the cumulative GPA plus calculation details:
// credit hours attempted across all entries, credit hours actually counted,
// included/excluded record counts, and a per-grade frequency map.
func CalculateDetailed(entries []models.AcademicRecord, scheme string) Breakdown {
	schemeConfig := SchemeFor(scheme)

	breakdown := Breakdown{
		Scheme:         schemeConfig.DisplayName,
		Scale:          schemeConfig.ScaleMax,
		GradeBreakdown: map[models.Grade]int{},
	}

	var totalGradePoints float64
	for _, entry := range entries {
		breakdown.GradeBreakdown[entry.Grade]++
		breakdown.TotalCreditHours += entry.CreditHours

		if entry.Grade.IsExcludedFromGPA() {
			breakdown.RecordsExcluded++
			continue
		}
		gradePoints, ok := schemeConfig.Points[entry.Grade]
		if !ok {
			breakdown.RecordsExcluded++
			continue
		}
		totalGradePoints += gradePoints * entry.CreditHours
		breakdown.CreditHoursCounted += entry.CreditHours
		breakdown.RecordsIncluded++
	}

	if breakdown.CreditHoursCounted > 0 {
		gpa := roundHalfUp(totalGradePoints/breakdown.CreditHoursCounted, 3)
		breakdown.GPA = &gpa
	}

	return breakdown
}

// TermBreakdown is a Breakdown restricted to a single (term, year) pair.
type TermBreakdown struct {
	GPA                *float64    `json:"gpa"`
	Term               models.Term `json:"term"`
	Year               int         `json:"year"`
	Scheme             string      `json:"scheme"`
	TotalCreditHours   float64     `json:"totalCreditHours"`
	CreditHoursCounted float64     `json:"creditHoursCounted"`
	RecordsIncluded    int         `json:"recordsIncluded"`
	RecordsExcluded    int         `json:"recordsExcluded"`
}

// CalculateTerm restricts the entries to those matching (term, year) and runs
// the same weighted calculation. When nothing matches, the GPA is nil and all
// counts are zero.
func CalculateTerm(entries []models.AcademicRecord, term models.Term, year int, scheme string) TermBreakdown {
	schemeConfig := SchemeFor(scheme)

	result := TermBreakdown{
		Term:   term,
		Year:   year,
		Scheme: schemeConfig.DisplayName,
	}

	var totalGradePoints float64
	for _, entry := range entries {
		if entry.Term != term || entry.Year != year {
			continue
		}

		result.TotalCreditHours += entry.CreditHours

		if entry.Grade.IsExcludedFromGPA() {
			result.RecordsExcluded++
			continue
		}
		gradePoints, ok := schemeConfig.Points[entry.Grade]
		if !ok {
			result.RecordsExcluded++
			continue
		}
		totalGradePoints += gradePoints * entry.CreditHours
		result.CreditHoursCounted += entry.CreditHours
		result.RecordsIncluded++
	}

	if result.CreditHoursCounted > 0 {
		gpa := roundHalfUp(totalGradePoints/result.CreditHoursCounted, 3)
		result.GPA = &gpa
	}

	return result
}

// ByTerm groups the entries by (term, year) and computes a term breakdown for
// each group, keyed as "Term-Year" (e.g. "Fall-2025").
func ByTerm(entries []models.AcademicRecord, scheme string) map[string]TermBreakdown {
	type termKey struct {
		term models.Term
		year int
	}

	seen := map[termKey]struct{}{}
	results := make(map[string]TermBreakdown)
	for _, entry := range entries {
		key := termKey{entry.Term, entry.Year}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		results[fmt.Sprintf("%s-%d", entry.Term, entry.Year)] = CalculateTerm(entries, entry.Term, entry.Year, scheme)
	}
	return results
}

// ValidateRecord checks the structural validity of a transcript entry before
// it is recorded: subject and course number formats, grade and term
// membership, non-negative credit hours and a sane year. The calculator
// itself never fails on malformed data; this is the explicit validation the
// write path runs first.
func ValidateRecord(record models.AcademicRecord) error {
	var problems []string

	if !validation.IsValidSubject(record.Subject) {
		problems = append(problems, "subject must be 2-5 uppercase letters")
	}
	if !validation.IsValidCourseNumber(record.CourseNumber) {
		problems = append(problems, "course number must contain 2-4 digits with optional letters")
	}
	if !record.Grade.IsValid() {
		problems = append(problems, fmt.Sprintf("grade %q is not a recognized grade", record.Grade))
	}
	if record.CreditHours < 0 || math.IsNaN(record.CreditHours) {
		problems = append(problems, "credit hours must be a non-negative number")
	}
	if !record.Term.IsValid() {
		problems = append(problems, fmt.Sprintf("term %q is not a recognized term", record.Term))
	}
	if !validation.IsValidYear(record.Year) {
		problems = append(problems, fmt.Sprintf("year must be between %d and %d", validation.YearMin, validation.YearMax))
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}

// roundHalfUp rounds to the given number of decimal places with ties going
// away from zero, matching how the persisted statistics are presented.
func roundHalfUp(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
