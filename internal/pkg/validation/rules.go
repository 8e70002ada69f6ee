package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Subject code pattern - 2-5 uppercase letters (e.g. "COMP")
	SubjectPattern = `^[A-Z]{2,5}$`

	// Course number pattern - 2-4 digits with optional letter affix (e.g. "246", "101A")
	CourseNumberPattern = `^[A-Z]*\d{2,4}[A-Z]*$`

	// Catalog course number pattern - digits only, as stored on catalog entries
	CatalogNumberPattern = `^\d{2,4}$`

	// Password min length
	PasswordMinLength = 8

	// Year bounds for academic records
	YearMin = 1900
	YearMax = 2100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	Subject       *regexp.Regexp
	CourseNumber  *regexp.Regexp
	CatalogNumber *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	Subject:       regexp.MustCompile(SubjectPattern),
	CourseNumber:  regexp.MustCompile(CourseNumberPattern),
	CatalogNumber: regexp.MustCompile(CatalogNumberPattern),
}

// IsValidSubject reports whether s is a well-formed subject code.
func IsValidSubject(s string) bool {
	return CompiledPatterns.Subject.MatchString(s)
}

// IsValidCourseNumber reports whether s is a well-formed course number as it
// appears on a transcript entry.
func IsValidCourseNumber(s string) bool {
	return CompiledPatterns.CourseNumber.MatchString(s)
}

// IsValidCatalogNumber reports whether s is a well-formed catalog course number.
func IsValidCatalogNumber(s string) bool {
	return CompiledPatterns.CatalogNumber.MatchString(s)
}

// IsValidYear reports whether y falls in the accepted academic year range.
func IsValidYear(y int) bool {
	return y >= YearMin && y <= YearMax
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(s)
}
