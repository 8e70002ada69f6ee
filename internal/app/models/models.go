package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAdmin   RoleType = "ADMIN"
)

// Term represents an academic term
type Term string

// Term constants
const (
	TermFall     Term = "Fall"
	TermWinter   Term = "Winter"
	TermSpring   Term = "Spring"
	TermSummer   Term = "Summer"
	TermQuarter1 Term = "Quarter1"
	TermQuarter2 Term = "Quarter2"
	TermQuarter3 Term = "Quarter3"
	TermQuarter4 Term = "Quarter4"
)

// AllTerms lists every valid term value.
var AllTerms = []Term{
	TermFall, TermWinter, TermSpring, TermSummer,
	TermQuarter1, TermQuarter2, TermQuarter3, TermQuarter4,
}

// IsValid reports whether t is a member of the term enumeration.
func (t Term) IsValid() bool {
	switch t {
	case TermFall, TermWinter, TermSpring, TermSummer,
		TermQuarter1, TermQuarter2, TermQuarter3, TermQuarter4:
		return true
	}
	return false
}
